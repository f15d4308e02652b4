// Package loader implements the eval.Loader interface for glorp's
// `+ "path"` import (spec.md §6): a `.so` path is opened with the standard
// library's plugin package and its exported builtin-pack functions are
// bound as Function values; any other path is treated as a glorp source
// file and handed to internal/units.
package loader

import (
	"fmt"
	"plugin"
	"strings"

	"github.com/glorp-lang/glorp/glorpffi"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/eval"
	"github.com/glorp-lang/glorp/internal/units"
	"github.com/glorp-lang/glorp/internal/value"
)

// Loader is the concrete eval.Loader: it dispatches between `.so` builtin
// packs and glorp source files by extension.
type Loader struct {
	units *units.Registry
}

// New returns a Loader resolving relative glorp source imports against
// baseDir. baseDir has no bearing on `.so` resolution, which is always
// resolved as given (absolute, or relative to the process's working
// directory) since plugin.Open does its own path handling.
func New(baseDir string) *Loader {
	return &Loader{units: units.NewRegistry(baseDir)}
}

// Load implements eval.Loader.
func (ld *Loader) Load(path string, e value.Env, ev *eval.Evaluator) *errors.Error {
	if strings.HasSuffix(path, ".so") {
		return ld.loadPack(path, e, ev)
	}
	return ld.units.Load(path, e, ev)
}

// loadPack opens a `.so` builtin pack and defines one glorp Function per
// exported entry, each a thin wrapper translating between glorp's
// value.Value and the plain-Go-typed glorpffi ABI (spec.md §6's builtin
// pack contract).
func (ld *Loader) loadPack(path string, e value.Env, ev *eval.Evaluator) *errors.Error {
	if !ev.MarkImported(path) {
		return nil
	}

	p, err := plugin.Open(path)
	if err != nil {
		return importErr(ev, path, err)
	}
	sym, err := p.Lookup("Exports")
	if err != nil {
		return importErr(ev, path, err)
	}
	exports, ok := sym.(*glorpffi.Pack)
	if !ok {
		return importErr(ev, path, fmt.Errorf("Exports symbol has the wrong type"))
	}

	for name, fn := range *exports {
		e.Define(name, wrapPackFunc(name, fn), true)
	}
	return nil
}

func importErr(ev *eval.Evaluator, path string, err error) *errors.Error {
	return errors.New(errors.EvalImport, errors.Span{}, "cannot import %q: %s", path, err).
		WithSource(ev.File, ev.Source)
}

// wrapPackFunc adapts a glorpffi.Fn into a glorp builtin Function, converting
// arguments and the result across the FFI boundary.
func wrapPackFunc(name string, fn glorpffi.Fn) *value.Function {
	native := func(args []value.Value) (value.Value, error) {
		ffiArgs := make([]any, len(args))
		for i, a := range args {
			ffiArgs[i] = toFFI(a)
		}
		result, err := fn(ffiArgs)
		if err != nil {
			return nil, err
		}
		return fromFFI(result), nil
	}
	// Arity -1: the glorpffi.Fn signature carries no declared arity, so a
	// pack function displays as function(?). Pipe treats it as variadic;
	// composition accepts it as the inner function only, since the outer
	// function must have arity 1.
	f := &value.Function{Name: name, Native: native, Arity: -1}
	value.Retain(f)
	return f
}

// toFFI converts a glorp runtime value into the plain-Go representation a
// `.so` pack function receives.
func toFFI(v value.Value) any {
	switch x := v.(type) {
	case value.Null:
		return nil
	case value.Unit:
		return glorpffi.Unit{}
	case value.Int:
		return int64(x)
	case value.Float:
		return float64(x)
	case value.Char:
		return rune(x)
	case *value.List:
		out := make([]any, 0, x.Len())
		for _, e := range x.Slice() {
			out = append(out, toFFI(e))
		}
		return out
	}
	return nil
}

// fromFFI converts a `.so` pack function's plain-Go result back into a
// glorp runtime value.
func fromFFI(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null{}
	case glorpffi.Unit:
		return value.Unit{}
	case int64:
		return value.Int(x)
	case int:
		return value.Int(x)
	case float64:
		return value.Float(x)
	case rune:
		return value.Char(x)
	case []any:
		elems := make([]value.Value, 0, len(x))
		for _, e := range x {
			elems = append(elems, fromFFI(e))
		}
		list := value.NewList(elems)
		value.Retain(list)
		return list
	}
	return value.Null{}
}
