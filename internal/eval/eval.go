// Package eval tree-walks an *ast.Node and produces glorp runtime values.
// Dispatch is a plain switch over ast.Kind (spec.md §5), mirroring the
// shape of CWBudde-go-dws's internal/interp evaluator but built around
// glorp's refcounted value heap and scope-id environment chain instead of
// DWScript's typed expression nodes.
package eval

import (
	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/value"
)

// Loader resolves a glorp `+ "path"` import: either a `.so` builtin pack or
// a glorp source file. internal/loader provides the concrete implementation;
// it is an interface here so the evaluator doesn't need to import plugin
// machinery directly and tests can stub it out.
type Loader interface {
	// Load resolves path (relative to whatever base directory the loader
	// was configured with) and binds whatever it exports into e: builtin
	// pack functions, or a source file's top-level bindings.
	Load(path string, e value.Env, ev *Evaluator) *errors.Error
}

// Evaluator carries everything needed to walk a tree rooted at a single
// Arena: the arena itself, file/source text for error spans, and a
// pluggable import Loader.
type Evaluator struct {
	Arena  *ast.Arena
	File   string
	Source string
	Loader Loader

	imported map[string]bool
}

// New returns an Evaluator. loader may be nil if the program being
// evaluated is known not to use `+ "..."` import.
func New(arena *ast.Arena, file, source string, loader Loader) *Evaluator {
	return &Evaluator{Arena: arena, File: file, Source: source, Loader: loader, imported: map[string]bool{}}
}

// MarkImported records path as having been imported by this Evaluator (or
// one that shares its import set), reporting whether it was new. Loader
// implementations use this to guard against import cycles between glorp
// source files.
func (ev *Evaluator) MarkImported(path string) (firstTime bool) {
	if ev.imported[path] {
		return false
	}
	ev.imported[path] = true
	return true
}

// NewChildEvaluator returns an Evaluator for a newly parsed tree (typically
// a source file pulled in by an `+ "path.glorp"` import) that shares ev's
// import set, so a cycle anywhere in the import graph is caught regardless
// of which file re-imports which.
func (ev *Evaluator) NewChildEvaluator(arena *ast.Arena, file, source string, loader Loader) *Evaluator {
	return &Evaluator{Arena: arena, File: file, Source: source, Loader: loader, imported: ev.imported}
}

func (ev *Evaluator) span(n *ast.Node) errors.Span {
	if n == nil {
		return errors.Span{}
	}
	return errors.Span{Start: n.Start.Pos, End: n.End.Pos}
}

func (ev *Evaluator) errf(n *ast.Node, kind errors.Kind, format string, args ...any) *errors.Error {
	return errors.New(kind, ev.span(n), format, args...).WithSource(ev.File, ev.Source)
}

// Strict evaluates n and, if the result is an LValue, dereferences it —
// glorp's `eval_strict`. Most operators want a plain value; only
// assignment targets and `++`/`--` operands want the reference itself.
func (ev *Evaluator) Strict(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	v, err := ev.Eval(n, e)
	if err != nil {
		return nil, err
	}
	if lv, ok := v.(value.LValue); ok {
		val, found := lv.Deref()
		if !found {
			return nil, ev.errf(n, errors.EvalUndefinedVariable, "undefined variable %q", lv.Name)
		}
		return val, nil
	}
	return v, nil
}

// Eval walks n and returns its value, possibly an LValue (identifiers and
// index expressions always evaluate to one; callers that want a plain
// value should call Strict instead).
func (ev *Evaluator) Eval(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	switch n.Kind {
	case ast.Program, ast.Block:
		return ev.evalSequence(n, e)
	case ast.ListLiteral:
		return ev.evalListLiteral(n, e)
	case ast.Unit:
		return value.Unit{}, nil
	case ast.Identifier:
		return value.NewEnvLValue(e, n.Text), nil
	case ast.StringLiteral:
		return value.NewStringList(n.Text), nil
	case ast.CharLiteral:
		return value.Char(n.Char), nil
	case ast.IntLiteral:
		return value.Int(n.Int), nil
	case ast.FloatLiteral:
		return value.Float(n.Float), nil
	case ast.Import:
		return ev.evalImport(n, e)
	case ast.Prefix:
		return ev.evalPrefix(n, e)
	case ast.Infix:
		return ev.evalInfix(n, e)
	case ast.Ternary:
		return ev.evalTernary(n, e)
	case ast.Call:
		return ev.evalCall(n, e)
	case ast.Index:
		return ev.evalIndex(n, e)
	case ast.Case:
		return ev.evalCase(n, e)
	default:
		return nil, ev.errf(n, errors.EvalType, "cannot evaluate %s", n.Kind)
	}
}

// evalSequence implements both Program and Block: evaluate every element in
// order (a Block's elements in a fresh child scope, a Program's in the
// scope it's given, so top-level REPL chunks keep accumulating into the
// same global frame), yielding the last element's value or Null if empty.
func (ev *Evaluator) evalSequence(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	scope := e
	if n.Kind == ast.Block {
		scope = e.Child()
		defer scope.Release()
	}

	var result value.Value = value.Null{}
	for _, expr := range n.List.Slice() {
		v, err := ev.Eval(expr, scope)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return ev.derefResult(result, n)
}

func (ev *Evaluator) derefResult(v value.Value, n *ast.Node) (value.Value, *errors.Error) {
	if lv, ok := v.(value.LValue); ok {
		val, found := lv.Deref()
		if !found {
			return nil, ev.errf(n, errors.EvalUndefinedVariable, "undefined variable %q", lv.Name)
		}
		return val, nil
	}
	return v, nil
}

func (ev *Evaluator) evalListLiteral(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	elems := make([]value.Value, 0, n.List.Size)
	for _, expr := range n.List.Slice() {
		v, err := ev.Strict(expr, e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	list := value.NewList(elems)
	value.Retain(list)
	return list, nil
}

func (ev *Evaluator) evalTernary(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	cond, err := ev.Strict(n.Cond, e)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return ev.Eval(n.Cons, e)
	}
	return ev.Eval(n.Alt, e)
}

func (ev *Evaluator) evalCase(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	conds := n.Conditions.Slice()
	results := n.Results.Slice()
	for i, cond := range conds {
		v, err := ev.Strict(cond, e)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return ev.Eval(results[i], e)
		}
	}
	return value.Null{}, nil
}

func (ev *Evaluator) evalIndex(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	collRef, err := ev.Eval(n.Coll, e)
	if err != nil {
		return nil, err
	}
	constColl := false
	if lv, ok := collRef.(value.LValue); ok {
		constColl = lv.Const
	}
	coll := value.Flatten(collRef)
	list, ok := coll.(*value.List)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "cannot index a %s", coll.Kind())
	}
	idxVal, err := ev.Strict(n.Idx, e)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(value.Int)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "index must be an int, got %s", idxVal.Kind())
	}
	node, ok := list.NodeAt(int(idx))
	if !ok {
		return nil, ev.errf(n, errors.EvalBounds, "index %d out of bounds for a list of length %d", int64(idx), list.Len())
	}
	return value.NewIndexLValue(node, constColl), nil
}

func (ev *Evaluator) evalPrefix(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	switch n.Op.Kind {
	case lexer.INC, lexer.DEC:
		return ev.evalIncDec(n, e)
	case lexer.DCOLON:
		return nil, ev.errf(n, errors.EvalType, "'::' is only valid in a function parameter pattern")
	}

	right, err := ev.Strict(n.Right, e)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case lexer.MINUS:
		switch x := right.(type) {
		case value.Int:
			return -x, nil
		case value.Float:
			return -x, nil
		}
		return nil, ev.errf(n, errors.EvalType, "unary '-' requires a number, got %s", right.Kind())
	case lexer.BANG:
		return boolValue(!value.Truthy(right)), nil
	case lexer.TILDE:
		i, ok := right.(value.Int)
		if !ok {
			return nil, ev.errf(n, errors.EvalType, "'~' requires an int, got %s", right.Kind())
		}
		return value.Int(^int64(i)), nil
	}
	return nil, ev.errf(n, errors.EvalType, "unsupported prefix operator %s", n.Op)
}

func boolValue(b bool) value.Int {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

func (ev *Evaluator) evalIncDec(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	ref, err := ev.Eval(n.Right, e)
	if err != nil {
		return nil, err
	}
	lv, ok := ref.(value.LValue)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "%s requires an assignable operand", n.Op)
	}
	cur, found := lv.Deref()
	if !found {
		return nil, ev.errf(n, errors.EvalUndefinedVariable, "undefined variable %q", lv.Name)
	}

	var next value.Value
	switch x := cur.(type) {
	case value.Int:
		if n.Op.Kind == lexer.INC {
			next = x + 1
		} else {
			next = x - 1
		}
	case value.Float:
		if n.Op.Kind == lexer.INC {
			next = x + 1
		} else {
			next = x - 1
		}
	default:
		return nil, ev.errf(n, errors.EvalType, "%s requires a numeric operand, got %s", n.Op, cur.Kind())
	}

	if !lv.Store(next) {
		return nil, ev.errf(n, errors.EvalConst, "cannot modify a const binding")
	}
	return next, nil
}
