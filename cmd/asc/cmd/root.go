// Package cmd is the cobra command tree for asc: lex, parse, compile, and
// disasm subcommands hung off a root command carrying version info and a
// --verbose persistent flag.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "asc",
	Short: "AngelScript front-end toolchain",
	Long: `asc lexes, parses, type-checks, and compiles AngelScript source to
bytecode without a runtime attached: it is a front-end toolchain, not an
interpreter.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readInput returns the source text named by evalExpr (if non-empty) or by
// reading the file at args[0]; when both are provided, evalExpr is used and
// args is ignored. Shared by every subcommand that accepts "file-or--e".
func readInput(evalExpr string, args []string) (input, label string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
