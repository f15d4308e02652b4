package value

// LValue is glorp's assignable-reference value variant (spec.md's data
// model folds l-values into the same Value sum type rather than giving them
// a separate pointer type): the result of evaluating an identifier or an
// index expression in assignment position. An LValue is never itself
// stored inside a list or passed to a builtin — `eval_strict` (see the
// evaluator) always flattens one to its underlying value first — so it
// carries no refcount of its own.
type LValue struct {
	get   func() (Value, bool)
	set   func(Value) bool
	Const bool
	// Name is used only for diagnostics (undefined-variable messages).
	Name string
}

func (LValue) Kind() Kind     { return KindLValue }
func (LValue) String() string { return "<lvalue>" }

// NewEnvLValue builds an LValue referring to name in env e. Const reflects
// whether the binding is const at the moment the identifier is evaluated.
func NewEnvLValue(e Env, name string) LValue {
	_, _, isConst := e.Lookup(name)
	return LValue{
		Name:  name,
		Const: isConst,
		get: func() (Value, bool) {
			v, found, _ := e.Lookup(name)
			return v, found
		},
		set: func(v Value) bool { return e.Assign(name, v) },
	}
}

// NewIndexLValue builds an LValue referring to the cons cell at a given
// position of a list, so assigning through it mutates the shared list in
// place. parentConst marks the LValue const iff the containing list
// binding itself was const (spec.md §9's resolution of the source's
// inconsistent index-lvalue constness: an indexed slot is const exactly
// when the list it indexes into is).
func NewIndexLValue(node *List, parentConst bool) LValue {
	return LValue{
		Name:  "[]",
		Const: parentConst,
		get:   func() (Value, bool) { return node.Head, true },
		set: func(v Value) bool {
			if parentConst {
				return false
			}
			old := node.Head
			node.Head = v
			Retain(v)
			Release(old)
			return true
		},
	}
}

// Deref reads through an LValue to its current underlying value.
func (lv LValue) Deref() (Value, bool) { return lv.get() }

// Store writes through an LValue, reporting whether the write succeeded
// (false for a const environment binding).
func (lv LValue) Store(v Value) bool { return lv.set(v) }

// Flatten resolves v one level if it is an LValue, otherwise returns v
// unchanged. This is `eval_strict`'s core: most operators want a value, not
// a reference to one.
func Flatten(v Value) Value {
	if lv, ok := v.(LValue); ok {
		val, _ := lv.Deref()
		return val
	}
	return v
}
