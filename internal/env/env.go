// Package env implements glorp's lexical environment frames: a chain of
// scope ids sharing one internal/symtab.Table, rather than one map per
// frame (spec.md §2's explicit symbol-table design; grounded on
// original_source/src/hashtable.c). A frame is just a scope id and a
// pointer to its parent frame; Lookup/Assign walk the chain querying the
// same shared table at each scope id in turn, and Define binds into the
// frame's own scope id.
package env

import (
	"github.com/glorp-lang/glorp/internal/symtab"
	"github.com/glorp-lang/glorp/internal/value"
)

// Env is one lexical frame. It implements value.Env so Function closures
// can capture one without this package and the value package importing
// each other.
type Env struct {
	table   *symtab.Table[value.Value]
	nextID  *uint64
	id      uint64
	parent  *Env
	refcount int
}

// NewGlobal returns a fresh root environment with scope id 0.
func NewGlobal() *Env {
	var next uint64 = 1
	return &Env{
		table:  symtab.New[value.Value](),
		nextID: &next,
		id:     0,
		refcount: 1,
	}
}

// Child allocates a new scope id chained under e, for a block or function
// call that introduces its own bindings.
func (e *Env) Child() value.Env {
	id := *e.nextID
	*e.nextID++
	e.Retain()
	return &Env{
		table:    e.table,
		nextID:   e.nextID,
		id:       id,
		parent:   e,
		refcount: 1,
	}
}

// Define binds name to v in e's own scope (not an enclosing one). It
// reports false when name is already bound const in this scope.
func (e *Env) Define(name string, v value.Value, isConst bool) bool {
	return e.table.Set(name, e.id, v, isConst)
}

// Lookup searches e and its enclosing frames, innermost first, for name.
func (e *Env) Lookup(name string) (value.Value, bool, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, found, isConst := cur.table.Get(name, cur.id); found {
			return v, true, isConst
		}
	}
	return nil, false, false
}

// Assign rebinds name in whichever enclosing frame already defines it
// (supporting a closure mutating a captured outer variable), reporting
// false if name is undefined anywhere in the chain or bound const.
func (e *Env) Assign(name string, v value.Value) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if _, found, _ := cur.table.Get(name, cur.id); found {
			return cur.table.Set(name, cur.id, v, false)
		}
	}
	return false
}

// Retain increments e's refcount; closures and child frames hold a strong
// reference to their defining/parent environment.
func (e *Env) Retain() { e.refcount++ }

// Release decrements e's refcount, reclaiming its own scope's bindings and
// releasing its parent when the count reaches zero.
func (e *Env) Release() {
	e.refcount--
	if e.refcount > 0 {
		return
	}
	e.table.RemoveScope(e.id)
	if e.parent != nil {
		e.parent.Release()
	}
}

// ID reports e's scope id, used by diagnostics (`--verbose`).
func (e *Env) ID() uint64 { return e.id }
