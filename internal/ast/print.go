package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree rooted at n as an indented, parenthesized outline
// for the `--ast` CLI flag and for tests asserting tree shape.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(sb, "%s<nil>\n", indent)
		return
	}

	switch n.Kind {
	case Program, Block, ListLiteral:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Kind)
		for _, e := range n.List.Slice() {
			dump(sb, e, depth+1)
		}
	case Unit:
		fmt.Fprintf(sb, "%sUnit\n", indent)
	case Identifier:
		fmt.Fprintf(sb, "%sIdentifier(%s)\n", indent, n.Text)
	case StringLiteral:
		fmt.Fprintf(sb, "%sStringLiteral(%q)\n", indent, n.Text)
	case Import:
		fmt.Fprintf(sb, "%sImport(%q)\n", indent, n.Text)
	case CharLiteral:
		fmt.Fprintf(sb, "%sCharLiteral(%q)\n", indent, n.Char)
	case IntLiteral:
		fmt.Fprintf(sb, "%sIntLiteral(%d)\n", indent, n.Int)
	case FloatLiteral:
		fmt.Fprintf(sb, "%sFloatLiteral(%g)\n", indent, n.Float)
	case Prefix:
		fmt.Fprintf(sb, "%sPrefix(%s)\n", indent, n.Op.Literal)
		dump(sb, n.Right, depth+1)
	case Infix:
		fmt.Fprintf(sb, "%sInfix(%s)\n", indent, n.Op.Literal)
		dump(sb, n.Left, depth+1)
		dump(sb, n.Right, depth+1)
	case Ternary:
		fmt.Fprintf(sb, "%sTernary\n", indent)
		dump(sb, n.Cond, depth+1)
		dump(sb, n.Cons, depth+1)
		dump(sb, n.Alt, depth+1)
	case Call:
		fmt.Fprintf(sb, "%sCall\n", indent)
		dump(sb, n.Callee, depth+1)
		for _, p := range n.Params.Slice() {
			dump(sb, p, depth+1)
		}
	case Index:
		fmt.Fprintf(sb, "%sIndex\n", indent)
		dump(sb, n.Coll, depth+1)
		dump(sb, n.Idx, depth+1)
	case Case:
		fmt.Fprintf(sb, "%sCase\n", indent)
		conds := n.Conditions.Slice()
		results := n.Results.Slice()
		for i := range conds {
			fmt.Fprintf(sb, "%s  arm %d:\n", indent, i)
			dump(sb, conds[i], depth+2)
			dump(sb, results[i], depth+2)
		}
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Kind)
	}
}
