package eval

import (
	"math"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
	"github.com/glorp-lang/glorp/internal/value"
)

// evalInfix dispatches every binary operator kind, all parsed through the
// same generic Infix node (spec.md §4.2/§4.3): assignment, function
// literals, composition, piping, arithmetic, comparison, logical, bitwise,
// shift, cons, and tuple-building.
func (ev *Evaluator) evalInfix(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	switch n.Op.Kind {
	case lexer.ASSIGN:
		rhs, err := ev.Strict(n.Right, e)
		if err != nil {
			return nil, err
		}
		return ev.assign(n.Left, rhs, false, e)
	case lexer.DCOLON:
		rhs, err := ev.Strict(n.Right, e)
		if err != nil {
			return nil, err
		}
		return ev.assign(n.Left, rhs, true, e)
	case lexer.ARROW:
		return ev.evalFunctionLiteral(n, e)
	case lexer.LCOMPOSE:
		return ev.evalCompose(n, e, true)
	case lexer.RCOMPOSE:
		return ev.evalCompose(n, e, false)
	case lexer.LPIPE:
		return ev.evalPipe(n.Left, n.Right, e, n)
	case lexer.RPIPE, lexer.DOT:
		return ev.evalPipe(n.Right, n.Left, e, n)
	case lexer.COMMA:
		return ev.evalTupleSpine(n, e)
	case lexer.COLON:
		return ev.evalCons(n, e)
	}

	// LAND/LOR short-circuit: the right operand is only evaluated when the
	// left one didn't already decide the result.
	switch n.Op.Kind {
	case lexer.LAND:
		left, err := ev.Strict(n.Left, e)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(left) {
			return boolValue(false), nil
		}
		right, err := ev.Strict(n.Right, e)
		if err != nil {
			return nil, err
		}
		return boolValue(value.Truthy(right)), nil
	case lexer.LOR:
		left, err := ev.Strict(n.Left, e)
		if err != nil {
			return nil, err
		}
		if value.Truthy(left) {
			return boolValue(true), nil
		}
		right, err := ev.Strict(n.Right, e)
		if err != nil {
			return nil, err
		}
		return boolValue(value.Truthy(right)), nil
	}

	left, err := ev.Strict(n.Left, e)
	if err != nil {
		return nil, err
	}
	right, err := ev.Strict(n.Right, e)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case lexer.PLUS:
		return ev.evalPlus(n, left, right)
	case lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT:
		return ev.evalArith(n, left, right)
	case lexer.EQ:
		return boolValue(valuesEqual(left, right)), nil
	case lexer.NEQ:
		return boolValue(!valuesEqual(left, right)), nil
	case lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return ev.evalCompare(n, left, right)
	case lexer.BAND, lexer.BOR, lexer.CARET, lexer.SHL, lexer.SHR:
		return ev.evalBitwise(n, left, right)
	}
	return nil, ev.errf(n, errors.EvalType, "unsupported operator %s", n.Op)
}

// evalPlus implements `+` on numbers (with int/float promotion) and lists
// (concatenation), per spec.md §4.3.
func (ev *Evaluator) evalPlus(n *ast.Node, left, right value.Value) (value.Value, *errors.Error) {
	if l, ok := left.(*value.List); ok {
		r, ok := right.(*value.List)
		if !ok {
			return nil, ev.errf(n, errors.EvalType, "cannot concatenate a list with a %s", right.Kind())
		}
		out := value.Append(l, r)
		value.Retain(out)
		return out, nil
	}
	return ev.evalArith(n, left, right)
}

func (ev *Evaluator) evalArith(n *ast.Node, left, right value.Value) (value.Value, *errors.Error) {
	lf, lIsFloat, lOK := numeric(left)
	rf, rIsFloat, rOK := numeric(right)
	if !lOK || !rOK {
		return nil, ev.errf(n, errors.EvalType, "operator %s requires numbers, got %s and %s", n.Op, left.Kind(), right.Kind())
	}

	if !lIsFloat && !rIsFloat {
		li, ri := int64(left.(value.Int)), int64(right.(value.Int))
		switch n.Op.Kind {
		case lexer.PLUS:
			return value.Int(li + ri), nil
		case lexer.MINUS:
			return value.Int(li - ri), nil
		case lexer.ASTERISK:
			return value.Int(li * ri), nil
		case lexer.SLASH:
			if ri == 0 {
				return nil, ev.errf(n, errors.EvalType, "division by zero")
			}
			return value.Int(li / ri), nil
		case lexer.PERCENT:
			if ri == 0 {
				return nil, ev.errf(n, errors.EvalType, "division by zero")
			}
			return value.Int(euclideanModInt(li, ri)), nil
		}
	}

	switch n.Op.Kind {
	case lexer.PLUS:
		return value.Float(lf + rf), nil
	case lexer.MINUS:
		return value.Float(lf - rf), nil
	case lexer.ASTERISK:
		return value.Float(lf * rf), nil
	case lexer.SLASH:
		if rf == 0 {
			return nil, ev.errf(n, errors.EvalType, "division by zero")
		}
		return value.Float(lf / rf), nil
	case lexer.PERCENT:
		if rf == 0 {
			return nil, ev.errf(n, errors.EvalType, "division by zero")
		}
		return value.Float(euclideanModFloat(lf, rf)), nil
	}
	return nil, ev.errf(n, errors.EvalType, "unsupported arithmetic operator %s", n.Op)
}

// euclideanModInt implements spec.md §4.3's Euclidean modulo literally:
// `((l % r) + r) % r`, applied with Go's truncated `%`. A single
// add-b-back-when-negative clamp is only correct for a positive divisor;
// this two-step form also handles a negative divisor correctly.
func euclideanModInt(a, b int64) int64 {
	m := a % b
	return (m + b) % b
}

func euclideanModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	return math.Mod(m+b, b)
}

func numeric(v value.Value) (f float64, isFloat bool, ok bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), false, true
	case value.Float:
		return float64(x), true, true
	}
	return 0, false, false
}

func (ev *Evaluator) evalCompare(n *ast.Node, left, right value.Value) (value.Value, *errors.Error) {
	lf, lOK := orderable(left)
	rf, rOK := orderable(right)
	if !lOK || !rOK {
		return nil, ev.errf(n, errors.EvalType, "operator %s requires comparable scalars, got %s and %s", n.Op, left.Kind(), right.Kind())
	}
	switch n.Op.Kind {
	case lexer.LT:
		return boolValue(lf < rf), nil
	case lexer.GT:
		return boolValue(lf > rf), nil
	case lexer.LTE:
		return boolValue(lf <= rf), nil
	case lexer.GTE:
		return boolValue(lf >= rf), nil
	}
	return nil, ev.errf(n, errors.EvalType, "unsupported comparison operator %s", n.Op)
}

func orderable(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Float:
		return float64(x), true
	case value.Char:
		return float64(x), true
	}
	return 0, false
}

func valuesEqual(a, b value.Value) bool {
	if af, aok := orderable(a); aok {
		if bf, bok := orderable(b); bok {
			return af == bf
		}
		return false
	}
	al, aIsList := a.(*value.List)
	bl, bIsList := b.(*value.List)
	if aIsList && bIsList {
		return listsEqual(al, bl)
	}
	if af, aok := a.(*value.Function); aok {
		if bf, bok := b.(*value.Function); bok {
			return af == bf
		}
		return false
	}
	switch a.(type) {
	case value.Null:
		_, ok := b.(value.Null)
		return ok
	case value.Unit:
		_, ok := b.(value.Unit)
		return ok
	}
	return false
}

func listsEqual(a, b *value.List) bool {
	for {
		if a == nil || b == nil {
			return a == b
		}
		if !valuesEqual(a.Head, b.Head) {
			return false
		}
		a, b = a.Tail, b.Tail
	}
}

func (ev *Evaluator) evalBitwise(n *ast.Node, left, right value.Value) (value.Value, *errors.Error) {
	li, lok := left.(value.Int)
	ri, rok := right.(value.Int)
	if !lok || !rok {
		return nil, ev.errf(n, errors.EvalType, "operator %s requires ints, got %s and %s", n.Op, left.Kind(), right.Kind())
	}
	switch n.Op.Kind {
	case lexer.BAND:
		return li & ri, nil
	case lexer.BOR:
		return li | ri, nil
	case lexer.CARET:
		return li ^ ri, nil
	case lexer.SHL:
		return li << uint64(ri), nil
	case lexer.SHR:
		return li >> uint64(ri), nil
	}
	return nil, ev.errf(n, errors.EvalType, "unsupported bitwise operator %s", n.Op)
}

func (ev *Evaluator) evalCons(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	head, err := ev.Strict(n.Left, e)
	if err != nil {
		return nil, err
	}
	tailVal, err := ev.Strict(n.Right, e)
	if err != nil {
		return nil, err
	}
	tail, ok := tailVal.(*value.List)
	if !ok {
		if _, isNull := tailVal.(value.Null); !isNull {
			return nil, ev.errf(n, errors.EvalType, "':' requires a list on the right, got %s", tailVal.Kind())
		}
	}
	out := value.Cons(head, tail)
	value.Retain(out)
	return out, nil
}

// evalTupleSpine evaluates a bare `a, b, c` expression (outside of a call's
// argument list or a list literal, where `,` already has a dedicated
// meaning) into the list of its elements — glorp represents a runtime
// tuple as a plain list, distinguishing it from a ListLiteral only at parse
// time (spec.md §4.2's "tuple: right-leaning spine" note).
func (ev *Evaluator) evalTupleSpine(n *ast.Node, e value.Env) (value.Value, *errors.Error) {
	elems, err := ev.collectSpine(n, e)
	if err != nil {
		return nil, err
	}
	out := value.NewList(elems)
	value.Retain(out)
	return out, nil
}

func (ev *Evaluator) collectSpine(n *ast.Node, e value.Env) ([]value.Value, *errors.Error) {
	if n.Kind == ast.Infix && n.Op.Kind == lexer.COMMA {
		left, err := ev.Strict(n.Left, e)
		if err != nil {
			return nil, err
		}
		rest, err := ev.collectSpine(n.Right, e)
		if err != nil {
			return nil, err
		}
		return append([]value.Value{left}, rest...), nil
	}
	v, err := ev.Strict(n, e)
	if err != nil {
		return nil, err
	}
	return []value.Value{v}, nil
}
