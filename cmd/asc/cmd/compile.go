package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/introspect"
	"github.com/angelscript-go/asc/internal/project"
	"github.com/angelscript-go/asc/pkg/angelscript"
)

var (
	compileEval    string
	compileStrict  bool
	compileDisasm  bool
	compileProject string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile AngelScript source to bytecode",
	Long: `Compile parses, type-checks, and emits bytecode for an AngelScript
source file or inline expression, reporting every diagnostic collected
along the way.

Examples:
  # Compile a script file
  asc compile script.as

  # Compile an inline snippet and show its disassembly
  asc compile -e "int f() { return 1; }" --disassemble`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "compile in strict mode")
	compileCmd.Flags().BoolVar(&compileDisasm, "disassemble", false, "print disassembled bytecode after compilation")
	compileCmd.Flags().StringVar(&compileProject, "project", "", "compile the source files listed in this asc.yaml manifest instead of -e or a file argument")
}

func compileScript(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	if compileProject != "" {
		return compileProjectManifest(compileProject, verbose)
	}

	input, label, err := readInput(compileEval, args)
	if err != nil {
		return err
	}
	return compileOne(input, label, verbose)
}

// compileProjectManifest compiles every source file an asc.yaml manifest
// lists, each as its own independent compilation unit, reporting every
// file's outcome before returning the first failure (if any).
func compileProjectManifest(manifestPath string, verbose bool) error {
	m, err := project.Load(manifestPath)
	if err != nil {
		return err
	}

	var firstErr error
	for _, path := range m.SourcePaths() {
		content, err := os.ReadFile(path)
		if err != nil {
			firstErr = fmt.Errorf("failed to read %s: %w", path, err)
			fmt.Println(firstErr)
			continue
		}
		if err := compileOne(string(content), path, verbose); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func compileOne(input, label string, verbose bool) error {
	compileFn := angelscript.Compile
	if compileStrict {
		compileFn = angelscript.CompileStrict
	}

	result, err := compileFn(input, angelscript.WithPath(label))
	if result != nil && result.Diagnostics != nil && result.Diagnostics.Len() > 0 {
		fmt.Print(diag.RenderAll(result.Diagnostics, input, label))
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Compiled %s: %d function(s)\n", label, len(result.Bytecode.Functions))
	}

	if compileDisasm {
		fmt.Println(introspect.DumpBytecode(result.Bytecode))
	} else {
		fmt.Printf("Compiled %s successfully\n", label)
	}
	return nil
}
