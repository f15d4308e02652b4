// Package ast defines glorp's expression tree: a single tagged Node type
// allocated from a bump-style Arena, with expression lists threaded through
// the Sibling link rather than owned by a slice (spec.md §2, §3).
package ast

import "github.com/glorp-lang/glorp/internal/lexer"

// Kind discriminates which fields of a Node are meaningful.
type Kind int

const (
	Program Kind = iota
	Block
	ListLiteral
	Unit

	Identifier
	StringLiteral
	Import
	CharLiteral
	IntLiteral
	FloatLiteral

	Prefix
	Infix
	Ternary
	Call
	Index
	Case
)

var kindNames = map[Kind]string{
	Program:       "Program",
	Block:         "Block",
	ListLiteral:   "ListLiteral",
	Unit:          "Unit",
	Identifier:    "Identifier",
	StringLiteral: "StringLiteral",
	Import:        "Import",
	CharLiteral:   "CharLiteral",
	IntLiteral:    "IntLiteral",
	FloatLiteral:  "FloatLiteral",
	Prefix:        "Prefix",
	Infix:         "Infix",
	Ternary:       "Ternary",
	Call:          "Call",
	Index:         "Index",
	Case:          "Case",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// List is an intrusive expression list: Head/Tail/Size over nodes linked by
// their Sibling pointer. The zero value is an empty list.
type List struct {
	Head, Tail *Node
	Size       int
}

// Append links n onto the end of the list via n's Sibling pointer.
func (l *List) Append(n *Node) {
	if l.Head == nil {
		l.Head = n
	} else {
		l.Tail.Sibling = n
	}
	l.Tail = n
	l.Size++
}

// Slice materializes the list into a plain Go slice for callers (the
// evaluator, the printer) that want random access or range-for ergonomics.
func (l List) Slice() []*Node {
	out := make([]*Node, 0, l.Size)
	for n := l.Head; n != nil; n = n.Sibling {
		out = append(out, n)
	}
	return out
}

// Node is glorp's single expression node type. Every field below is
// documented by which Kind(s) populate it; unrelated fields are left zero.
// This mirrors the original C `expr` union (original_source/include/glorp.h)
// translated into Go's nearest idiom for a tagged sum type allocated from an
// arena: one flat struct rather than one Go type per node kind.
type Node struct {
	Kind Kind

	Start, End lexer.Token // source span
	Sibling    *Node       // next node when this one belongs to a List

	// Program, Block, ListLiteral
	List List

	// Identifier, StringLiteral, Import: borrowed source text
	Text string

	// CharLiteral
	Char rune
	// IntLiteral
	Int int64
	// FloatLiteral
	Float float64

	// Prefix (Right only), Infix (Left and Right)
	Op          lexer.Token
	Left, Right *Node

	// Ternary
	Cond, Cons, Alt *Node

	// Call
	Callee *Node
	Params List

	// Index
	Coll, Idx *Node

	// Case: parallel lists, Conditions[i] selects Results[i]
	Conditions List
	Results    List
}
