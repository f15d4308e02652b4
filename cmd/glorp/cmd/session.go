package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/builtins"
	"github.com/glorp-lang/glorp/internal/env"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/eval"
	"github.com/glorp-lang/glorp/internal/loader"
	"github.com/glorp-lang/glorp/internal/value"
)

// exitCode carries the process result across a cobra RunE, which only
// distinguishes "framework error" (bad flags, unknown command) from nil.
// A reported parse/runtime error (spec.md §6: exit 1) is printed by us and
// recorded here instead of being returned as a cobra error, so cobra
// doesn't also print its own "Error: ..." line underneath ours.
var exitCode int

// readSource reads program text from path, or from standard input when
// path is "-" (spec.md §6's CLI surface).
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// argsList converts the CLI's trailing positional arguments into glorp's
// `args` variable: a list of character lists (spec.md §6).
func argsList(args []string) *value.List {
	elems := make([]value.Value, len(args))
	for i, a := range args {
		elems[i] = value.NewStringList(a)
	}
	list := value.NewList(elems)
	value.Retain(list)
	return list
}

// newSession builds one evaluation session: a global environment seeded
// with the builtin pack (internal/builtins, registered the same way a
// `.so` pack registers its own exports) and the `args` binding, plus an
// Evaluator wired to a loader that resolves `+ "path"` imports relative to
// the running file's directory.
func newSession(filename string, arena *ast.Arena, out io.Writer, progArgs []string) (value.Env, *eval.Evaluator) {
	baseDir := "."
	if filename != "" && filename != "-" {
		baseDir = filepath.Dir(filename)
	}

	ld := loader.New(baseDir)
	ev := eval.New(arena, filename, "", ld)

	global := env.NewGlobal()
	builtins.Register(global, ev, out)
	global.Define("args", argsList(progArgs), false)
	return global, ev
}

// printErrors reports errs the way the teacher's run/lex commands report
// compiler errors: each formatted in full (header, source line, underline),
// colored unless output isn't a terminal or NO_COLOR is set (fatih/color's
// own auto-detection, shared with the REPL's color scheme).
func printErrors(errs []*errors.Error) {
	fmt.Fprint(os.Stderr, errors.FormatAll(errs, !color.NoColor))
}

// dumpVerbose prints the `--verbose`/`-V` debug trailer (spec.md §6):
// arena node count and the top-level scope id, the same sort of
// instrumentation the teacher's `--verbose` flag surfaces in `run.go`.
func dumpVerbose(arena *ast.Arena, e value.Env) {
	fmt.Fprintln(os.Stderr, "-- verbose --")
	fmt.Fprintf(os.Stderr, "arena nodes: %d\n", arena.Len())
	if ee, ok := e.(*env.Env); ok {
		fmt.Fprintf(os.Stderr, "top scope id: %d\n", ee.ID())
	}
}
