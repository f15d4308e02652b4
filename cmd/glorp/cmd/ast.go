package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a glorp file or expression and print its expression tree",
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

		arena := ast.NewArena()
		l := lexer.New(src)
		p := parser.New(l, arena, file, src)
		prog := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			printErrors(errs)
			exitCode = 1
			return nil
		}
		fmt.Println(ast.Dump(prog))
		return nil
	},
}
