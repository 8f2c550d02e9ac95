package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelscript-go/asc/internal/lexer"
)

var (
	lexEval       string
	lexShowPos    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an AngelScript file or expression",
	Long: `Tokenize (lex) AngelScript source and print the resulting tokens.

Examples:
  # Tokenize a script file
  asc lex script.as

  # Tokenize an inline expression
  asc lex -e "int x = 42;"

  # Show token positions
  asc lex --show-pos script.as

  # Show only illegal tokens
  asc lex --only-errors script.as`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, label, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", label)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount, errorCount := 0, 0

	for {
		tok := l.NextToken()
		if lexOnlyErrors && tok.Kind != lexer.ILLEGAL {
			if tok.Kind == lexer.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Kind == lexer.ILLEGAL {
			errorCount++
		}
		printToken(tok)

		if tok.Kind == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if lexOnlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	output = fmt.Sprintf("[%-12s]", tok.Kind)

	switch {
	case tok.Kind == lexer.EOF:
		output += " EOF"
	case tok.Kind == lexer.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	case tok.Literal == "":
		output += fmt.Sprintf(" %s", tok.Kind)
	default:
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if lexShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Span.Line, tok.Span.Column)
	}
	fmt.Println(output)
}
