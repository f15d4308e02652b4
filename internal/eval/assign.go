package eval

import (
	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/value"
)

// assign implements the assignment protocol (spec.md §4.3): the left-hand
// side is a pattern (identifier, list-literal, index expression, `a:b`
// prepend, or `a,b,c` tuple spine), recursively destructured against rhs.
// isConst marks every identifier the pattern binds as a fresh const
// binding (the `::` operator); plain `=` reassigns an identifier already
// visible in an enclosing scope or, if none exists, defines it fresh in the
// current one.
func (ev *Evaluator) assign(pattern *ast.Node, rhs value.Value, isConst bool, e value.Env) (value.Value, *errors.Error) {
	switch pattern.Kind {
	case ast.Identifier:
		return ev.assignIdentifier(pattern, rhs, isConst, e)
	case ast.Index:
		return ev.assignIndex(pattern, rhs, e)
	case ast.Call:
		return ev.assignCallResult(pattern, rhs, e)
	case ast.ListLiteral:
		return ev.assignListPattern(pattern, rhs, isConst, e)
	case ast.Infix:
		switch pattern.Op.Kind {
		case lexer.COLON:
			return ev.assignCons(pattern, rhs, isConst, e)
		case lexer.COMMA:
			return ev.assignTuple(pattern, rhs, isConst, e)
		}
	}
	return nil, ev.errf(pattern, errors.EvalDestructure, "invalid assignment target")
}

func (ev *Evaluator) assignIdentifier(pattern *ast.Node, rhs value.Value, isConst bool, e value.Env) (value.Value, *errors.Error) {
	name := pattern.Text
	if isConst {
		if _, found, _ := e.Lookup(name); found {
			return nil, ev.errf(pattern, errors.EvalConst, "%q is already defined", name)
		}
		e.Define(name, rhs, true)
		return rhs, nil
	}

	if _, found, existingConst := e.Lookup(name); found {
		if existingConst {
			return nil, ev.errf(pattern, errors.EvalConst, "cannot assign to const %q", name)
		}
		e.Assign(name, rhs)
		return rhs, nil
	}
	e.Define(name, rhs, false)
	return rhs, nil
}

func (ev *Evaluator) assignIndex(pattern *ast.Node, rhs value.Value, e value.Env) (value.Value, *errors.Error) {
	ref, err := ev.Eval(pattern, e)
	if err != nil {
		return nil, err
	}
	lv, ok := ref.(value.LValue)
	if !ok {
		return nil, ev.errf(pattern, errors.EvalDestructure, "invalid index assignment target")
	}
	if lv.Const {
		return nil, ev.errf(pattern, errors.EvalConst, "cannot assign into an index of a const list")
	}
	if !lv.Store(rhs) {
		return nil, ev.errf(pattern, errors.EvalConst, "cannot assign through this index")
	}
	return rhs, nil
}

// assignCallResult supports assigning through a call expression whose
// callee returns an L-value rather than a plain value — notably
// `head(list) = x` (spec.md §6: `__builtin_head` yields an L-value of the
// first element). pattern is re-evaluated (not Strict-evaluated) so an
// LValue result survives instead of being dereferenced away.
func (ev *Evaluator) assignCallResult(pattern *ast.Node, rhs value.Value, e value.Env) (value.Value, *errors.Error) {
	ref, err := ev.Eval(pattern, e)
	if err != nil {
		return nil, err
	}
	lv, ok := ref.(value.LValue)
	if !ok {
		return nil, ev.errf(pattern, errors.EvalDestructure, "call result is not assignable")
	}
	if lv.Const {
		return nil, ev.errf(pattern, errors.EvalConst, "cannot assign through this call result")
	}
	if !lv.Store(rhs) {
		return nil, ev.errf(pattern, errors.EvalConst, "cannot assign through this call result")
	}
	return rhs, nil
}

// assignCons destructures rhs (a non-empty list) as head:tail, binding
// pattern.Left to the head and pattern.Right to the remainder list.
func (ev *Evaluator) assignCons(pattern *ast.Node, rhs value.Value, isConst bool, e value.Env) (value.Value, *errors.Error) {
	list, ok := rhs.(*value.List)
	if !ok || list == nil {
		return nil, ev.errf(pattern, errors.EvalDestructure, "cannot destructure a %s as head:tail", rhsKind(rhs))
	}
	if _, err := ev.assign(pattern.Left, list.Head, isConst, e); err != nil {
		return nil, err
	}
	if _, err := ev.assign(pattern.Right, list.Tail, isConst, e); err != nil {
		return nil, err
	}
	return rhs, nil
}

// assignTuple destructures rhs (a list, standing in for a tuple) against a
// right-leaning comma spine pattern, one element per pattern slot.
func (ev *Evaluator) assignTuple(pattern *ast.Node, rhs value.Value, isConst bool, e value.Env) (value.Value, *errors.Error) {
	list, ok := rhs.(*value.List)
	if !ok {
		return nil, ev.errf(pattern, errors.EvalDestructure, "cannot destructure a %s as a tuple", rhsKind(rhs))
	}
	slots := flattenParamSpine(pattern)
	elems := list.Slice()
	if len(slots) != len(elems) {
		return nil, ev.errf(pattern, errors.EvalDestructure, "tuple pattern expects %d element(s), got %d", len(slots), len(elems))
	}
	for i, slot := range slots {
		if _, err := ev.assign(slot, elems[i], isConst, e); err != nil {
			return nil, err
		}
	}
	return rhs, nil
}

// assignListPattern destructures rhs against a `[a, b, c]` list-literal
// pattern, elementwise, requiring an exact length match.
func (ev *Evaluator) assignListPattern(pattern *ast.Node, rhs value.Value, isConst bool, e value.Env) (value.Value, *errors.Error) {
	list, ok := rhs.(*value.List)
	if !ok {
		return nil, ev.errf(pattern, errors.EvalDestructure, "cannot destructure a %s as a list", rhsKind(rhs))
	}
	slots := pattern.List.Slice()
	elems := list.Slice()
	if len(slots) != len(elems) {
		return nil, ev.errf(pattern, errors.EvalDestructure, "list pattern expects %d element(s), got %d", len(slots), len(elems))
	}
	for i, slot := range slots {
		if _, err := ev.assign(slot, elems[i], isConst, e); err != nil {
			return nil, err
		}
	}
	return rhs, nil
}

func rhsKind(v value.Value) string {
	if v == nil {
		return "null"
	}
	return v.Kind().String()
}
