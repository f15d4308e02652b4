package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorp-lang/glorp/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a glorp file or expression and print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "-"
		if len(args) == 1 {
			file = args[0]
		}
		src, err := readSource(file)
		if err != nil {
			exitCode = 1
			return fmt.Errorf("cannot read %s: %w", file, err)
		}
		printTokens(src)
		return nil
	},
}

// printTokens prints one line per token, in the same `Kind("literal") @line:col`
// shape as a token's own String() plus position, until EOF.
func printTokens(src string) {
	l := lexer.New(src)
	for {
		tok := l.NextToken()
		fmt.Printf("%-24s @%d:%d\n", tok.String(), tok.Pos.Line, tok.Pos.Column)
		if tok.Kind == lexer.EOF {
			break
		}
	}
}
