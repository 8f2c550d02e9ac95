package introspect

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/angelscript-go/asc/internal/bytecode"
)

// DumpBytecode renders a compiled bytecode.Module as one JSON document: a
// disassembly listing and basic size stats per function, plus the
// synthetic global-initializer chunk if one was emitted.
func DumpBytecode(mod *bytecode.Module) string {
	doc := "{}"
	doc, _ = sjson.Set(doc, "functions", []any{})

	i := 0
	for fn, chunk := range mod.Functions {
		name := chunk.Name
		if name == "" && fn != nil {
			name = fn.Name
		}
		path := fmt.Sprintf("functions.%d", i)
		doc, _ = sjson.Set(doc, path+".name", name)
		doc, _ = sjson.Set(doc, path+".code_bytes", len(chunk.Code))
		doc, _ = sjson.Set(doc, path+".locals", chunk.LocalCount)
		doc, _ = sjson.Set(doc, path+".disassembly", bytecode.Disassemble(chunk))
		i++
	}

	if mod.Init != nil {
		doc, _ = sjson.Set(doc, "init.code_bytes", len(mod.Init.Code))
		doc, _ = sjson.Set(doc, "init.disassembly", bytecode.Disassemble(mod.Init))
	}

	return string(pretty.Pretty([]byte(doc)))
}

// FunctionNames returns the "name" field of every entry under
// "functions" in a DumpBytecode document, reading the JSON back out with
// gjson rather than re-walking mod — useful for golden-file comparisons
// that only care which functions got emitted, not their exact bytecode.
func FunctionNames(dump string) []string {
	result := gjson.Get(dump, "functions.#.name")
	names := make([]string, 0, len(result.Array()))
	for _, v := range result.Array() {
		names = append(names, v.String())
	}
	return names
}
