// Package cmd implements glorp's command-line surface: a cobra root command
// carrying the literal flag contract spec.md §6 mandates (positional file,
// -l/-a/-r/-V), plus thin lex/ast/repl/version subcommands mirroring the
// teacher's layout. A program file is run by the root command itself
// (`glorp file.glorp`); there is no `run` subcommand.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/parser"
)

var (
	// Version is the glorp CLI's version string.
	Version = "0.1.0-dev"

	lexOnly   bool
	astOnly   bool
	forceRepl bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "glorp [file] [args...]",
	Short: "glorp — a small, expression-oriented scripting language",
	Long: `glorp is a tree-walking interpreter for a small dynamically-typed,
expression-oriented scripting language: every construct is an expression,
functions are first-class values, lists support pattern-matching
destructuring, and operators compose and pipe functions together.

Given a file, glorp runs it; use "-" to read the program from standard
input. Anything after the file becomes the program's "args" variable, a
list of character lists. With no file, glorp starts an interactive REPL.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().BoolVarP(&lexOnly, "lex", "l", false, "print the token stream then exit")
	rootCmd.Flags().BoolVarP(&astOnly, "ast", "a", false, "print the parsed expression tree then exit")
	rootCmd.Flags().BoolVarP(&forceRepl, "repl", "r", false, "start the REPL, even when a file is given")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "dump debug info after running")

	rootCmd.AddCommand(lexCmd, astCmd, replCmd, versionCmd)
}

// Execute runs the CLI and reports the process exit code: 0 on success, 1
// on a CLI usage error or any reported parse/runtime error (spec.md §6).
func Execute() int {
	exitCode = 0
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

func runRoot(cmd *cobra.Command, args []string) error {
	var file string
	var progArgs []string
	if len(args) > 0 {
		file, progArgs = args[0], args[1:]
	}

	if forceRepl || file == "" {
		runREPL(progArgs)
		return nil
	}
	return runFile(file, progArgs)
}

func runFile(filename string, progArgs []string) error {
	src, err := readSource(filename)
	if err != nil {
		exitCode = 1
		return fmt.Errorf("cannot read %s: %w", filename, err)
	}

	if lexOnly {
		printTokens(src)
		return nil
	}

	arena := ast.NewArena()
	l := lexer.New(src)
	p := parser.New(l, arena, filename, src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		printErrors(errs)
		exitCode = 1
		return nil
	}

	if astOnly {
		fmt.Println(ast.Dump(prog))
		return nil
	}

	e, ev := newSession(filename, arena, os.Stdout, progArgs)
	if _, evalErr := ev.Eval(prog, e); evalErr != nil {
		printErrors([]*errors.Error{evalErr})
		exitCode = 1
		return nil
	}

	if verbose {
		dumpVerbose(arena, e)
	}
	return nil
}
