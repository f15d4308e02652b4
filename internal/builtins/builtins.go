// Package builtins implements glorp's always-available function pack
// (spec.md §6): println, len, head, tail, copy, foreach, append, remove.
// These are registered directly into the top environment at program start,
// the same way internal/loader registers a `.so` pack's exports, but they
// are wired straight to Go functions rather than crossing a plugin
// boundary since they ship with the interpreter itself.
package builtins

import (
	"fmt"
	"io"

	"github.com/glorp-lang/glorp/internal/eval"
	"github.com/glorp-lang/glorp/internal/value"
)

// Register defines every builtin-pack function into e, as const bindings so
// user code cannot accidentally shadow the pack by reassignment (it may
// still shadow it by defining a fresh binding of the same name in an inner
// scope). out is where __builtin_println writes; ev lets foreach invoke a
// user-supplied mapping function through the evaluator's call protocol.
func Register(e value.Env, ev *eval.Evaluator, out io.Writer) {
	define(e, "__builtin_println", 1, println_(out))
	define(e, "__builtin_len", 1, len_)
	define(e, "__builtin_head", 1, head)
	define(e, "__builtin_tail", 1, tail)
	define(e, "__builtin_copy", 1, copy_)
	define(e, "__builtin_foreach", 2, foreach(ev))
	define(e, "__builtin_append", 2, appendFn)
	define(e, "__builtin_remove", 2, remove)
}

func define(e value.Env, name string, arity int, fn value.BuiltinFunc) {
	f := &value.Function{Name: name, Native: fn, Arity: arity}
	value.Retain(f)
	e.Define(name, f, true)
}

func arityError(name string, want, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", name, want, got)
}

func typeError(name, want string, got value.Value) error {
	return fmt.Errorf("%s requires a %s, got %s", name, want, got.Kind())
}

// println_ implements `__builtin_println(x)`: print x's PrintForm followed
// by a newline, return Unit.
func println_(out io.Writer) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError("__builtin_println", 1, len(args))
		}
		fmt.Fprintln(out, value.PrintForm(args[0]))
		return value.Unit{}, nil
	}
}

// len_ implements `__builtin_len(list)`.
func len_(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("__builtin_len", 1, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, typeError("__builtin_len", "list", args[0])
	}
	return value.Int(list.Len()), nil
}

// head implements `__builtin_head(list)`: an L-value referring to the first
// element (spec.md §6), so `head(l) = x` can assign through it, erroring on
// an empty list. The returned L-value is never const: a builtin receives
// only the list value, not the constness of whatever binding it came from.
func head(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("__builtin_head", 1, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, typeError("__builtin_head", "list", args[0])
	}
	if list == nil {
		return nil, fmt.Errorf("__builtin_head: empty list")
	}
	return value.NewIndexLValue(list, false), nil
}

// tail implements `__builtin_tail(list)`: a fresh List value sharing the
// tail's nodes (spec.md §3's deliberate tail-sharing), erroring on an empty
// list.
func tail(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("__builtin_tail", 1, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, typeError("__builtin_tail", "list", args[0])
	}
	if list == nil {
		return nil, fmt.Errorf("__builtin_tail: empty list")
	}
	value.Retain(list.Tail)
	return list.Tail, nil
}

// copy_ implements `__builtin_copy(x)`: a deep copy of a list (Char/Int/
// Float elements cloned, other elements shared by reference per spec.md
// §3's copy-by-value rule); identity on anything that isn't a list.
func copy_(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("__builtin_copy", 1, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return args[0], nil
	}
	elems := list.Slice()
	out := make([]value.Value, len(elems))
	for i, el := range elems {
		out[i] = cloneElement(el)
	}
	result := value.NewList(out)
	value.Retain(result)
	return result, nil
}

// cloneElement clones a copy-by-value element, or retains a shared one, per
// spec.md §3's invariant list.
func cloneElement(v value.Value) value.Value {
	switch v.(type) {
	case value.Char, value.Int, value.Float, value.Null, value.Unit:
		return v
	}
	value.Retain(v)
	return v
}

// foreach implements `__builtin_foreach(list, f)`: map f over list in
// place, f must be a user (non-builtin) function of arity 1; each element
// is replaced by f's result.
func foreach(ev *eval.Evaluator) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError("__builtin_foreach", 2, len(args))
		}
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, typeError("__builtin_foreach", "list", args[0])
		}
		fn, ok := args[1].(*value.Function)
		if !ok {
			return nil, typeError("__builtin_foreach", "function", args[1])
		}
		if fn.IsBuiltin() {
			return nil, fmt.Errorf("__builtin_foreach: f must be a user-defined function")
		}
		if arity := fn.DisplayArity(); arity != 1 {
			return nil, fmt.Errorf("__builtin_foreach: f must have arity 1, got %d", arity)
		}
		for node := list; node != nil; node = node.Tail {
			result, err := ev.Call(fn, []value.Value{node.Head})
			if err != nil {
				return nil, err
			}
			old := node.Head
			node.Head = result
			value.Retain(result)
			value.Release(old)
		}
		return list, nil
	}
}

// appendFn implements `__builtin_append(list, x)`: append x to the end of
// list, mutating the last existing cons cell's tail pointer in place so
// every alias of a non-empty list observes the new element (spec.md's
// testable property 8). Appending onto an already-empty list has no
// existing cell to mutate and returns a fresh single-element list instead.
func appendFn(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("__builtin_append", 2, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, typeError("__builtin_append", "list", args[0])
	}
	x := args[1]
	value.Retain(x)
	if list == nil {
		fresh := value.Cons(x, nil)
		value.Retain(fresh)
		return fresh, nil
	}
	last := list
	for last.Tail != nil {
		last = last.Tail
	}
	newTail := value.Cons(x, nil)
	last.Tail = newTail
	return list, nil
}

// remove implements `__builtin_remove(list, i)`: remove the element at
// index i, mutating the surviving cons cells in place so aliases observe
// the change. Removing the sole remaining element of a single-element list
// has no surviving cell to mutate and returns a fresh empty list instead.
func remove(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("__builtin_remove", 2, len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, typeError("__builtin_remove", "list", args[0])
	}
	idx, ok := args[1].(value.Int)
	if !ok {
		return nil, typeError("__builtin_remove", "int index", args[1])
	}
	i := int(idx)
	if i < 0 || i >= list.Len() {
		return nil, fmt.Errorf("__builtin_remove: index %d out of bounds for a list of length %d", i, list.Len())
	}

	if i == 0 {
		if list.Tail == nil {
			value.Release(list.Head)
			return (*value.List)(nil), nil
		}
		value.Release(list.Head)
		list.Head = list.Tail.Head
		list.Tail = list.Tail.Tail
		return list, nil
	}

	prev := list
	for n := 0; n < i-1; n++ {
		prev = prev.Tail
	}
	removed := prev.Tail
	value.Release(removed.Head)
	prev.Tail = removed.Tail
	return list, nil
}
