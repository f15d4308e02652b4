// Package value implements glorp's runtime values: a small tagged-value
// heap with manual reference counting, mirroring the `object` union of the
// original interpreter (original_source/include/glorp.h) in Go's idiom —
// one concrete type per variant behind a shared interface, the way
// CWBudde-go-dws's internal/interp represents its own Value variants,
// rather than a literal C union.
//
// Char, Int, and Float are copied by value on assignment, matching the
// originals' scalar fields. List, Function, and Environment are shared by
// reference and carry an explicit refcount: Retain/Release bookkeeping is
// kept even though Go's garbage collector would reclaim these values on its
// own, because glorp's evaluator treats refcounting as part of its
// observable memory model (see DESIGN.md).
package value

import "fmt"

// Kind discriminates which concrete type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindUnit
	KindChar
	KindInt
	KindFloat
	KindList
	KindFunction
	KindLValue
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindUnit:
		return "unit"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindLValue:
		return "lvalue"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value variant.
type Value interface {
	Kind() Kind
	String() string
}

// Null is glorp's explicit absence-of-value, distinct from Unit (the empty
// group `()`'s value) — e.g. a case expression with no matching arm.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "null" }

// Unit is the value of `()`.
type Unit struct{}

func (Unit) Kind() Kind     { return KindUnit }
func (Unit) String() string { return "()" }

// Char is a single scalar character, copied by value.
type Char rune

func (c Char) Kind() Kind { return KindChar }

// String renders c in expression form: a quoted char literal with the
// lexer's recognized backslash escapes (spec.md §4.1, §6). Top-level
// println/REPL output instead uses PrintForm's bare rendering.
func (c Char) String() string { return quoteChar(rune(c)) }

func quoteChar(r rune) string {
	switch r {
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	case '\b':
		return `'\b'`
	case '\f':
		return `'\f'`
	case '\v':
		return `'\v'`
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	}
	return "'" + string(r) + "'"
}

// Int is a scalar 64-bit integer, copied by value.
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }

// Float is a scalar 64-bit float, copied by value.
type Float float64

func (f Float) Kind() Kind     { return KindFloat }
func (f Float) String() string { return formatFloat(float64(f)) }

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// PrintForm renders v the way `__builtin_println` and the REPL's top-level
// result echo do (spec.md §6): a bare Char with no quoting, and a List of
// all Char as the plain string it spells out, unquoted. Every other value —
// including a Char or Char-list nested inside a larger List — keeps its
// ordinary String() (expression form), since only the top-level value
// printed gets the print-form treatment.
func PrintForm(v Value) string {
	v = Flatten(v)
	switch x := v.(type) {
	case Char:
		return string(rune(x))
	case *List:
		if x.IsString() {
			return x.bareString()
		}
	}
	return v.String()
}

// Truthy implements glorp's truthiness rule, used by `if`-free control
// (ternary condition, case arm selection, `&&`/`||`): Null, Unit, a zero
// Int, a zero Float, and the empty list are false; everything else
// (including any non-empty list, any Char, and any Function) is true.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case Unit:
		return false
	case Int:
		return x != 0
	case Float:
		return x != 0
	case Char:
		return true
	case *List:
		return x.Len() > 0
	default:
		return true
	}
}
