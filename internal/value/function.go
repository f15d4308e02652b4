package value

import (
	"fmt"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/lexer"
)

// Env is the closure-capture surface a Function needs from an environment
// frame. It is declared here (rather than importing internal/env directly)
// so this package has no dependency on the environment package, which in
// turn depends on this one for the values it stores — internal/env.Env
// implements this interface.
type Env interface {
	Define(name string, v Value, isConst bool) bool
	Lookup(name string) (Value, bool, bool)
	Assign(name string, v Value) bool
	Child() Env
	Retain()
	Release()
}

// BuiltinFunc is the Go signature of a native function body. The in-tree
// builtins use it directly; internal/loader wraps each `.so` pack export (a
// glorpffi.Fn) into one.
type BuiltinFunc func(args []Value) (Value, error)

// Function is glorp's function value: either a user-defined closure (Params
// is the parameter pattern node, Body the expression to evaluate, Env the
// captured defining environment) or a native function (Native set,
// Params/Body/Env unused): an in-tree builtin, a function loaded from a
// `.so` pack, or a function built by composition or pipe.
type Function struct {
	refcount int

	Name   string // display name, empty for anonymous literals
	Params *ast.Node
	Body   *ast.Node
	Env    Env

	Native BuiltinFunc
	Arity  int // parameter count for Native; -1 means variadic
}

func (f *Function) Kind() Kind { return KindFunction }

// String renders a Function per spec.md §6's value repr: `function(<arity>)`.
// A builtin whose arity wasn't declared (an externally loaded `.so` pack
// function; see internal/loader) shows as `function(?)`.
func (f *Function) String() string {
	arity := f.DisplayArity()
	if arity < 0 {
		return "function(?)"
	}
	return fmt.Sprintf("function(%d)", arity)
}

// DisplayArity reports f's parameter count: the declared Arity for a
// builtin, or the flattened length of the parameter pattern spine for a
// user-defined closure. -1 means unknown/variadic.
func (f *Function) DisplayArity() int {
	if f.Native != nil {
		return f.Arity
	}
	return paramArity(f.Params)
}

func paramArity(p *ast.Node) int {
	if p == nil || p.Kind == ast.Unit {
		return 0
	}
	if p.Kind == ast.Infix && p.Op.Kind == lexer.COMMA {
		return paramArity(p.Left) + paramArity(p.Right)
	}
	return 1
}

// IsBuiltin reports whether f is a native function (Native set) rather
// than one defined by a glorp function literal.
func (f *Function) IsBuiltin() bool { return f.Native != nil }

func (f *Function) retain() {
	if f == nil {
		return
	}
	f.refcount++
}

func (f *Function) release() {
	if f == nil {
		return
	}
	f.refcount--
	if f.refcount <= 0 && f.Env != nil {
		f.Env.Release()
	}
}
