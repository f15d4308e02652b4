package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glorp-lang/glorp/cmd/glorp/internal/repl"
	"github.com/glorp-lang/glorp/internal/ast"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive glorp session",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runREPL(args)
	},
}

// runREPL starts the interactive session described in spec.md §6, sharing
// one arena, evaluator, and global environment for the session's lifetime.
func runREPL(progArgs []string) {
	arena := ast.NewArena()
	global, ev := newSession("<repl>", arena, os.Stdout, progArgs)
	session := repl.New(arena, ev, global, os.Stdout)
	if err := session.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}
}
