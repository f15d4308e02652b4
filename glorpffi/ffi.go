// Package glorpffi is the public, minimal-surface ABI a `.so` builtin pack
// implements to be loadable by `+ "pack.so"` (spec.md §6). It deliberately
// avoids depending on glorp's internal packages: Go plugins are loaded with
// the stdlib `plugin` package, which requires the plugin and the host to
// share no incompatible internal type definitions across module
// boundaries, and internal/ packages cannot be imported by another module
// in the first place. A pack is built against only this package and the
// standard library.
//
// Values crossing the FFI boundary use plain Go types: nil for glorp's
// Null, the zero-sized Unit for `()`, int64 for Int, float64 for Float,
// rune for Char, and []any (itself built from these same types) for List.
package glorpffi

// Unit is the FFI representation of glorp's `()` value.
type Unit struct{}

// Fn is the signature every exported pack function must have.
type Fn func(args []any) (any, error)

// Pack is what a `.so` builtin pack exports: a symbol named Exports of this
// type, mapping glorp-visible names to implementations.
type Pack map[string]Fn
