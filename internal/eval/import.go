package eval

import (
	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/value"
)

// evalImport implements `+ "path"` (spec.md §6): resolve path via the
// configured Loader, which binds whatever it exports directly into e, and
// yields Unit. Import is a statement, not an expression that produces a
// usable value — its effect is the bindings it leaves behind.
func (ev *Evaluator) evalImport(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	if ev.Loader == nil {
		return nil, ev.errf(n, errors.EvalImport, "cannot import %q: no loader configured", n.Text)
	}
	if err := ev.Loader.Load(n.Text, e, ev); err != nil {
		return nil, err
	}
	return value.Unit{}, nil
}
