// Command asc is the AngelScript front-end toolchain CLI: lex, parse,
// compile, and disassemble AngelScript source without a runtime attached.
package main

import (
	"fmt"
	"os"

	"github.com/angelscript-go/asc/cmd/asc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
