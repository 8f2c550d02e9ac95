package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelscript-go/asc/internal/bytecode"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/introspect"
	"github.com/angelscript-go/asc/pkg/angelscript"
)

var (
	disasmEval   string
	disasmJSON   bool
	disasmFunc   string
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Compile AngelScript source and print its disassembly",
	Long: `disasm compiles an AngelScript source file or inline expression and
prints the disassembled bytecode for every emitted function, or for one
named function with --func.

Examples:
  asc disasm script.as
  asc disasm -e "int f() { return 1 + 2; }"
  asc disasm script.as --func main
  asc disasm script.as --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)

	disasmCmd.Flags().StringVarP(&disasmEval, "eval", "e", "", "disassemble inline code instead of reading from file")
	disasmCmd.Flags().BoolVar(&disasmJSON, "json", false, "emit a structured JSON dump of every function instead of plain text (--func does not filter it)")
	disasmCmd.Flags().StringVar(&disasmFunc, "func", "", "only disassemble the named function")
}

func runDisasm(cmd *cobra.Command, args []string) error {
	input, label, err := readInput(disasmEval, args)
	if err != nil {
		return err
	}

	result, err := angelscript.Compile(input, angelscript.WithPath(label))
	if result != nil && result.Diagnostics != nil && result.Diagnostics.Len() > 0 {
		fmt.Print(diag.RenderAll(result.Diagnostics, input, label))
	}
	if err != nil {
		return err
	}

	if disasmJSON {
		fmt.Println(introspect.DumpBytecode(result.Bytecode))
		return nil
	}

	for _, chunk := range result.Bytecode.Functions {
		if disasmFunc != "" && chunk.Name != disasmFunc {
			continue
		}
		fmt.Printf("== %s ==\n", chunk.Name)
		fmt.Println(strings.TrimRight(bytecode.Disassemble(chunk), "\n"))
	}
	return nil
}
