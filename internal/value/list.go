package value

import "strings"

// List is glorp's cons-cell list value: a Head value and a Tail list, both
// shared by reference. A nil *List denotes the empty list — Go's nil
// pointer standing in for the original's NULL `object*` terminator — so
// every List method is nil-safe and every empty-list check is a plain
// `== nil` rather than a sentinel flag.
//
// This collapses what spec.md's data model calls "List" (the value
// variant) and "List-node" (an individual cons cell) into one Go type: a
// glorp List value and a node inside a larger list are the same shape, and
// keeping them as one type avoids an artificial wrapper/payload split.
type List struct {
	refcount int
	Head     Value
	Tail     *List
}

func (l *List) Kind() Kind { return KindList }

func (l *List) String() string {
	if l.IsString() {
		return l.stringLiteralRepr()
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for n, first := l, true; n != nil; n = n.Tail {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(n.Head.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len counts the cells in the list, O(n) like any cons list.
func (l *List) Len() int {
	n := 0
	for cur := l; cur != nil; cur = cur.Tail {
		n++
	}
	return n
}

// IsString reports whether every element of the list is a Char — glorp has
// no separate string type; a string literal evaluates to a Char list, and
// printing one renders it back as a quoted string (spec.md's value repr
// contract).
func (l *List) IsString() bool {
	if l == nil {
		return false
	}
	for cur := l; cur != nil; cur = cur.Tail {
		if cur.Head.Kind() != KindChar {
			return false
		}
	}
	return true
}

func (l *List) stringLiteralRepr() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for cur := l; cur != nil; cur = cur.Tail {
		sb.WriteRune(rune(cur.Head.(Char)))
	}
	sb.WriteByte('"')
	return sb.String()
}

// bareString renders a Char list as the plain characters it holds, with no
// surrounding quotes — the print-form companion to stringLiteralRepr, used
// by PrintForm.
func (l *List) bareString() string {
	var sb strings.Builder
	for cur := l; cur != nil; cur = cur.Tail {
		sb.WriteRune(rune(cur.Head.(Char)))
	}
	return sb.String()
}

// Cons prepends head onto tail, implementing the `a:b` operator.
func Cons(head Value, tail *List) *List {
	return &List{Head: head, Tail: tail}
}

// NewStringList builds the Char-list representation of a Go string.
func NewStringList(s string) *List {
	runes := []rune(s)
	var out *List
	for i := len(runes) - 1; i >= 0; i-- {
		out = Cons(Char(runes[i]), out)
	}
	return out
}

// NewList builds a list from a slice of values, in order.
func NewList(elems []Value) *List {
	var out *List
	for i := len(elems) - 1; i >= 0; i-- {
		out = Cons(elems[i], out)
	}
	return out
}

// Slice materializes the list into a Go slice, for callers (builtins,
// destructuring) that want random access.
func (l *List) Slice() []Value {
	out := make([]Value, 0, l.Len())
	for cur := l; cur != nil; cur = cur.Tail {
		out = append(out, cur.Head)
	}
	return out
}

// Nth returns the element at position i (0-based), and whether i was in
// bounds.
func (l *List) Nth(i int) (Value, bool) {
	if i < 0 {
		return nil, false
	}
	cur := l
	for ; i > 0 && cur != nil; i-- {
		cur = cur.Tail
	}
	if cur == nil {
		return nil, false
	}
	return cur.Head, true
}

// NodeAt returns the cons cell at position i (0-based), used by the
// evaluator to build an index L-value that can mutate the list in place.
func (l *List) NodeAt(i int) (*List, bool) {
	if i < 0 {
		return nil, false
	}
	cur := l
	for ; i > 0 && cur != nil; i-- {
		cur = cur.Tail
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Append concatenates two lists (the `+` operator on lists), returning a
// freshly consed copy of a so b can be shared without aliasing a's tail.
func Append(a, b *List) *List {
	if a == nil {
		return b
	}
	elems := a.Slice()
	out := b
	for i := len(elems) - 1; i >= 0; i-- {
		out = Cons(elems[i], out)
	}
	return out
}

func (l *List) retain() {
	if l == nil {
		return
	}
	l.refcount++
}

func (l *List) release() {
	if l == nil {
		return
	}
	l.refcount--
	if l.refcount <= 0 {
		Release(l.Head)
		l.Tail.release()
	}
}
