package eval

import (
	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/value"
)

// evalFunctionLiteral builds a closure from `params -> body`, capturing the
// defining environment by strong reference.
func (ev *Evaluator) evalFunctionLiteral(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	e.Retain()
	fn := &value.Function{Params: n.Left, Body: n.Right, Env: e}
	value.Retain(fn)
	return fn, nil
}

// evalCompose builds a new function value for `f <<< g` / `f >>> g`.
// spec.md §4.3: the outer function must have arity 1; the inner function
// "may have any arity", and the result's parameter list equals the inner
// function's own parameters — so both operands are evaluated to their
// actual Function values up front (rather than re-evaluating `f`/`g`'s
// expressions on every call of the composed function) to read off the
// inner function's real arity before the composed function is built.
// leftOuter selects `f <<< g` (left evaluates outermost: f(g(x))) vs
// `f >>> g` (right evaluates outermost: g(f(x))).
func (ev *Evaluator) evalCompose(n *ast.Node, e value.Env, leftOuter bool) (value.Value, *errors.Error) {
	outerNode, innerNode := n.Right, n.Left
	if leftOuter {
		outerNode, innerNode = n.Left, n.Right
	}

	outerVal, err := ev.Strict(outerNode, e)
	if err != nil {
		return nil, err
	}
	outerFn, ok := outerVal.(*value.Function)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "composition requires functions, got %s", outerVal.Kind())
	}
	if a := outerFn.DisplayArity(); a != 1 {
		return nil, ev.errf(n, errors.EvalArity, "outer function of a composition must have arity 1, got %d", a)
	}

	innerVal, err := ev.Strict(innerNode, e)
	if err != nil {
		return nil, err
	}
	innerFn, ok := innerVal.(*value.Function)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "composition requires functions, got %s", innerVal.Kind())
	}

	value.Retain(outerFn)
	value.Retain(innerFn)

	composed := &value.Function{
		Arity: innerFn.DisplayArity(),
		Native: func(args []value.Value) (value.Value, error) {
			innerResult, applyErr := ev.apply(n, innerFn, args)
			if applyErr != nil {
				return nil, applyErr
			}
			outerResult, applyErr := ev.apply(n, outerFn, []value.Value{innerResult})
			if applyErr != nil {
				return nil, applyErr
			}
			return outerResult, nil
		},
	}
	value.Retain(composed)
	return composed, nil
}

// evalPipe implements `<|`, `|>`, and `.` (spec.md §4.3): these *construct*
// a new function value partially applying the first argument of fn to arg,
// rather than invoking fn — a subsequent Call is what actually runs it.
// fn must have arity >= 1. The synthesized function's native body closes
// over the already-evaluated arg and fn; it is invoked exactly like any
// other Function value by evalCall/apply.
func (ev *Evaluator) evalPipe(calleeNode, argNode *ast.Node, e value.Env, site *ast.Node) (value.Value, *errors.Error) {
	calleeVal, err := ev.Strict(calleeNode, e)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*value.Function)
	if !ok {
		return nil, ev.errf(site, errors.EvalType, "the function operand of a pipe must be a function, got %s", calleeVal.Kind())
	}
	arity := fn.DisplayArity()
	if arity == 0 {
		return nil, ev.errf(site, errors.EvalType, "piped function must accept at least one argument")
	}
	remaining := arity - 1 // arity < 0 (unknown/variadic) stays variadic
	if arity < 0 {
		remaining = -1
	}
	arg, err := ev.Strict(argNode, e)
	if err != nil {
		return nil, err
	}
	value.Retain(fn)
	value.Retain(arg)

	partial := &value.Function{
		Arity: remaining,
		Native: func(rest []value.Value) (value.Value, error) {
			full := append([]value.Value{arg}, rest...)
			result, applyErr := ev.apply(site, fn, full)
			if applyErr != nil {
				return nil, applyErr
			}
			return result, nil
		},
	}
	value.Retain(partial)
	return partial, nil
}

func (ev *Evaluator) evalCall(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	calleeVal, err := ev.Strict(n.Callee, e)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*value.Function)
	if !ok {
		return nil, ev.errf(n, errors.EvalType, "cannot call a %s", calleeVal.Kind())
	}

	args := make([]value.Value, 0, n.Params.Size)
	for _, p := range n.Params.Slice() {
		v, err := ev.Strict(p, e)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return ev.apply(n, fn, args)
}

// Call invokes fn with already-evaluated args, for callers outside this
// package (internal/builtins' `foreach`) that need to apply a user function
// or closure value without an enclosing call-expression AST node. Errors
// come back as a plain error, since builtins communicate failure through
// the glorpffi-style (Value, error) signature rather than *errors.Error.
func (ev *Evaluator) Call(fn *value.Function, args []value.Value) (value.Value, error) {
	result, err := ev.apply(nil, fn, args)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// apply invokes fn with the already-evaluated args.
func (ev *Evaluator) apply(site *ast.Node, fn *value.Function, args []value.Value) (value.Value, *errors.Error) {
	if fn.IsBuiltin() {
		result, err := fn.Native(args)
		if err != nil {
			return nil, ev.errf(site, errors.EvalType, "%s", err)
		}
		return result, nil
	}

	params := flattenParamSpine(fn.Params)
	if len(params) != len(args) {
		return nil, ev.errf(site, errors.EvalArity, "function expects %d argument(s), got %d", len(params), len(args))
	}

	callEnv := fn.Env.Child()
	for i, p := range params {
		if err := bindParam(callEnv, p, args[i]); err != nil {
			callEnv.Release()
			return nil, ev.errf(site, errors.EvalType, "%s", err)
		}
	}

	result, evalErr := ev.Eval(fn.Body, callEnv)
	callEnv.Release()
	if evalErr != nil {
		return nil, evalErr
	}
	return ev.derefResult(result, site)
}

// flattenParamSpine walks a (possibly comma-spined) parameter pattern into
// its individual per-argument pattern nodes. A nil or Unit pattern (a
// 0-arity function, e.g. `() -> 1`) yields no parameters.
func flattenParamSpine(p *ast.Node) []*ast.Node {
	if p == nil || p.Kind == ast.Unit {
		return nil
	}
	if p.Kind == ast.Infix && p.Op.Kind == lexer.COMMA {
		return append(flattenParamSpine(p.Left), flattenParamSpine(p.Right)...)
	}
	return []*ast.Node{p}
}

// bindParam binds one call argument into callEnv according to its
// parameter pattern: a bare identifier, or `::ident` to bind it const.
func bindParam(callEnv value.Env, pattern *ast.Node, arg value.Value) error {
	switch {
	case pattern.Kind == ast.Identifier:
		callEnv.Define(pattern.Text, arg, false)
		return nil
	case pattern.Kind == ast.Prefix && pattern.Op.Kind == lexer.DCOLON:
		if pattern.Right.Kind != ast.Identifier {
			return errInvalidParamPattern
		}
		callEnv.Define(pattern.Right.Text, arg, true)
		return nil
	}
	return errInvalidParamPattern
}

type paramPatternError string

func (e paramPatternError) Error() string { return string(e) }

var errInvalidParamPattern = paramPatternError("invalid function parameter pattern")
