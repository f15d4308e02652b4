// Package units resolves glorp's `+ "path.glorp"` source-file import: read
// the file, parse it, and evaluate it into the importing environment, so
// its top-level bindings become visible to the importer. This mirrors the
// teacher's internal/units package shape (a UnitRegistry keyed by resolved
// path, consulted before re-reading a file from disk) adapted to glorp's
// "interpret directly into the current scope" semantics rather than
// DWScript's unit initialization/interface-implementation split.
package units

import (
	"os"
	"path/filepath"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/eval"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/parser"
	"github.com/glorp-lang/glorp/internal/value"
)

// Registry resolves and caches glorp source-file imports relative to a base
// directory (the importing file's directory, or the working directory for
// the top-level program).
type Registry struct {
	BaseDir string
}

// NewRegistry returns a Registry resolving relative import paths against
// baseDir.
func NewRegistry(baseDir string) *Registry {
	return &Registry{BaseDir: baseDir}
}

// Load reads, parses, and evaluates the glorp source file at path (resolved
// relative to r.BaseDir) into e. Re-importing a path already marked on ev is
// a no-op: it neither re-reads the file nor re-runs its bindings, which
// both caches repeated imports and breaks import cycles.
func (r *Registry) Load(path string, e value.Env, ev *eval.Evaluator) *errors.Error {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(r.BaseDir, path)
	}

	if !ev.MarkImported(resolved) {
		return nil
	}

	src, err := os.ReadFile(resolved)
	if err != nil {
		return errors.New(errors.EvalImport, errors.Span{}, "cannot import %q: %s", path, err).
			WithSource(ev.File, ev.Source)
	}
	text := string(src)

	l := lexer.New(text)
	arena := ast.NewArena()
	p := parser.New(l, arena, resolved, text)
	prog := p.ParseProgram()
	if perrs := p.Errors(); len(perrs) > 0 {
		return perrs[0]
	}

	childLoader := &Registry{BaseDir: filepath.Dir(resolved)}
	unitEval := ev.NewChildEvaluator(arena, resolved, text, childLoader)

	if _, evalErr := unitEval.Eval(prog, e); evalErr != nil {
		return evalErr
	}
	return nil
}
