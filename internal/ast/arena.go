package ast

// blockSize is the number of Nodes allocated per arena block. Nodes are
// handed out as pointers into these blocks, so blocks themselves are never
// reallocated or moved once created — only appended.
const blockSize = 256

// Arena is a bump-style allocator for Node values. Nodes are never freed
// individually; the arena can only be reset wholesale with Reset. Neither
// the CLI nor the REPL calls Reset, so the arena keeps growing for the
// lifetime of a single run or REPL session.
type Arena struct {
	blocks [][]Node
	used   int
}

// NewArena returns an empty arena ready for allocation.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a zeroed Node of the given kind from the arena.
func (a *Arena) New(kind Kind) *Node {
	if len(a.blocks) == 0 || a.used == len(a.blocks[len(a.blocks)-1]) {
		a.blocks = append(a.blocks, make([]Node, blockSize))
		a.used = 0
	}
	block := a.blocks[len(a.blocks)-1]
	n := &block[a.used]
	a.used++
	n.Kind = kind
	return n
}

// Reset discards every node the arena has handed out. Callers must not
// retain pointers into the arena across a Reset.
func (a *Arena) Reset() {
	a.blocks = a.blocks[:0]
	a.used = 0
}

// Len reports how many nodes are currently live in the arena, for
// diagnostics (`--verbose`).
func (a *Arena) Len() int {
	if len(a.blocks) == 0 {
		return 0
	}
	return (len(a.blocks)-1)*blockSize + a.used
}
