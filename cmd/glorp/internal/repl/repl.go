// Package repl implements glorp's interactive Read-Eval-Print Loop
// (spec.md §6's REPL contract), in the structural style of
// go-mix's repl.Repl: a small struct wrapping chzyer/readline for line
// editing and fatih/color for colored feedback, driving one persistent
// internal/eval.Evaluator and global environment across the whole
// session so closures and `+`-imports defined on one line stay valid on
// the next.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/eval"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/parser"
	"github.com/glorp-lang/glorp/internal/value"
)

var (
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
)

// Prompt and ContinuationPrompt are the normal and "need more input"
// prompts (spec.md §6: continuation prompts with `.. `).
const (
	Prompt             = "glorp> "
	ContinuationPrompt = ".. "
)

// Repl drives one interactive session. Arena, Eval, and Global are shared
// across every chunk of input read during the session, since expression
// nodes and environment bindings from one line must stay reachable from
// the next (spec.md §3: "REPL keeps them alive across the session").
type Repl struct {
	Arena  *ast.Arena
	Eval   *eval.Evaluator
	Global value.Env
	Out    io.Writer
}

// New returns a Repl sharing arena, ev, and global across the session. ev
// should already have its Loader and builtin-pack bindings wired (see
// cmd/glorp/cmd's session setup), and ev.Arena must be the same arena
// passed here.
func New(arena *ast.Arena, ev *eval.Evaluator, global value.Env, out io.Writer) *Repl {
	return &Repl{Arena: arena, Eval: ev, Global: global, Out: out}
}

// Run starts the loop. It returns once standard input is closed (Ctrl-D)
// or readline itself fails to initialize.
func (r *Repl) Run() error {
	rl, err := readline.New(Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	cyanColor.Fprintln(r.Out, "glorp REPL — Ctrl-D to exit")

	var buf string
	for {
		if buf == "" {
			rl.SetPrompt(Prompt)
		} else {
			rl.SetPrompt(ContinuationPrompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = ""
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(r.Out, "bye")
			return nil
		}
		if err != nil {
			return err
		}

		if buf == "" && strings.TrimSpace(line) == "" {
			continue
		}
		rl.SaveHistory(line)

		if buf == "" {
			buf = line
		} else {
			buf = buf + "\n" + line
		}

		if lexer.NeedsMoreInput(buf) {
			continue
		}

		if r.tryEval(buf) {
			buf = ""
		}
		// tryEval returning false means "need more input" (Unexpected(EOF)
		// with a non-empty buffer); keep the buffer and prompt with `.. `.
	}
}

// tryEval attempts to parse and evaluate buf as one chunk, reporting
// whether the chunk was consumed (true) or needs more input (false).
func (r *Repl) tryEval(buf string) bool {
	l := lexer.New(buf)
	p := parser.New(l, r.Arena, "<repl>", buf)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		if len(errs) == 1 && errs[0].NeedsMoreInput(true) {
			return false
		}
		for _, e := range errs {
			redColor.Fprint(r.Out, e.Format(true))
		}
		return true
	}

	r.Eval.Source = buf
	result, evalErr := r.Eval.Eval(prog, r.Global)
	if evalErr != nil {
		redColor.Fprint(r.Out, evalErr.Format(true))
		return true
	}

	if _, isUnit := result.(value.Unit); !isUnit {
		yellowColor.Fprintln(r.Out, result.String())
	}
	return true
}
