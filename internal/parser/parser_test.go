package parser

import (
	"testing"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	arena := ast.NewArena()
	p := New(lexer.New(src), arena, "<test>", src)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func single(t *testing.T, src string) *ast.Node {
	t.Helper()
	prog := parse(t, src)
	if prog.List.Size != 1 {
		t.Fatalf("expected exactly one top-level expression, got %d: %s", prog.List.Size, ast.Dump(prog))
	}
	return prog.List.Head
}

func TestLiterals(t *testing.T) {
	n := single(t, "42")
	if n.Kind != ast.IntLiteral || n.Int != 42 {
		t.Fatalf("got %s", ast.Dump(n))
	}

	n = single(t, "3.5")
	if n.Kind != ast.FloatLiteral || n.Float != 3.5 {
		t.Fatalf("got %s", ast.Dump(n))
	}

	n = single(t, `"hi\"there"`)
	if n.Kind != ast.StringLiteral || n.Text != `hi"there` {
		t.Fatalf("got %s", ast.Dump(n))
	}

	n = single(t, `'\n'`)
	if n.Kind != ast.CharLiteral || n.Char != '\n' {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	n := single(t, "1 + 2 * 3")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.PLUS {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Right.Kind != ast.Infix || n.Right.Op.Kind != lexer.ASTERISK {
		t.Fatalf("rhs not a product: %s", ast.Dump(n))
	}
}

func TestLeftAssociativeSum(t *testing.T) {
	// 1 - 2 - 3 must parse as (1 - 2) - 3.
	n := single(t, "1 - 2 - 3")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.MINUS {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Left.Kind != ast.Infix || n.Left.Op.Kind != lexer.MINUS {
		t.Fatalf("lhs not nested minus: %s", ast.Dump(n))
	}
	if n.Right.Kind != ast.IntLiteral || n.Right.Int != 3 {
		t.Fatalf("rhs not 3: %s", ast.Dump(n))
	}
}

func TestRightAssociativeCompose(t *testing.T) {
	// f <<< g <<< h must compose right-to-left: f <<< (g <<< h).
	n := single(t, "f <<< g <<< h")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.LCOMPOSE {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Left.Kind != ast.Identifier || n.Left.Text != "f" {
		t.Fatalf("lhs not f: %s", ast.Dump(n))
	}
	if n.Right.Kind != ast.Infix || n.Right.Op.Kind != lexer.LCOMPOSE {
		t.Fatalf("rhs not nested compose: %s", ast.Dump(n))
	}
}

func TestRightAssociativeCons(t *testing.T) {
	// a : b : c must parse as a : (b : c).
	n := single(t, "a : b : c")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.COLON {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Right.Kind != ast.Infix || n.Right.Op.Kind != lexer.COLON {
		t.Fatalf("rhs not nested cons: %s", ast.Dump(n))
	}
}

func TestRightAssociativeAssign(t *testing.T) {
	// a = b = c must parse as a = (b = c).
	n := single(t, "a = b = c")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.ASSIGN {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Right.Kind != ast.Infix || n.Right.Op.Kind != lexer.ASSIGN {
		t.Fatalf("rhs not nested assign: %s", ast.Dump(n))
	}
}

func TestListLiteral(t *testing.T) {
	n := single(t, "[1, 2, 3]")
	if n.Kind != ast.ListLiteral || n.List.Size != 3 {
		t.Fatalf("got %s", ast.Dump(n))
	}

	empty := single(t, "[]")
	if empty.Kind != ast.ListLiteral || empty.List.Size != 0 {
		t.Fatalf("got %s", ast.Dump(empty))
	}
}

func TestListLiteralDoesNotLeakTupleComma(t *testing.T) {
	// Inside a list literal, `,` separates elements rather than building a
	// tuple spine; each element itself may still use `:` (cons) freely.
	n := single(t, "[1:2, 3]")
	if n.Kind != ast.ListLiteral || n.List.Size != 2 {
		t.Fatalf("got %s", ast.Dump(n))
	}
	first := n.List.Head
	if first.Kind != ast.Infix || first.Op.Kind != lexer.COLON {
		t.Fatalf("first element not a cons: %s", ast.Dump(first))
	}
}

func TestGroupUnit(t *testing.T) {
	n := single(t, "()")
	if n.Kind != ast.Unit {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestGroupResetsFlags(t *testing.T) {
	// Inside a call's argument list (TUPLE_FLAG set), a parenthesized group
	// must still allow `,` to build a tuple, since the group is a fresh
	// context that resets all flags.
	n := single(t, "f((a, b))")
	if n.Kind != ast.Call || n.Params.Size != 1 {
		t.Fatalf("got %s", ast.Dump(n))
	}
	arg := n.Params.Head
	if arg.Kind != ast.Infix || arg.Op.Kind != lexer.COMMA {
		t.Fatalf("expected a tuple inside the nested group: %s", ast.Dump(arg))
	}
}

func TestBlock(t *testing.T) {
	n := single(t, "{ 1; 2; 3 }")
	if n.Kind != ast.Block || n.List.Size != 3 {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestCallAndIndex(t *testing.T) {
	n := single(t, "f(1, 2)[0]")
	if n.Kind != ast.Index {
		t.Fatalf("got %s", ast.Dump(n))
	}
	call := n.Coll
	if call.Kind != ast.Call || call.Params.Size != 2 {
		t.Fatalf("got %s", ast.Dump(call))
	}
	if call.Callee.Kind != ast.Identifier || call.Callee.Text != "f" {
		t.Fatalf("got %s", ast.Dump(call.Callee))
	}
}

func TestTernary(t *testing.T) {
	n := single(t, "a ? b : c")
	if n.Kind != ast.Ternary {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Cond.Text != "a" || n.Cons.Text != "b" || n.Alt.Text != "c" {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestTernaryColonNotAbsorbedAsCons(t *testing.T) {
	// Without COLON_FLAG, `b` would greedily absorb `: c` as a cons
	// expression before the ternary ever saw its `:`.
	n := single(t, "a ? b : c")
	if n.Cons.Kind != ast.Identifier {
		t.Fatalf("consequence should be the bare identifier b, got %s", ast.Dump(n.Cons))
	}
}

func TestCaseExpression(t *testing.T) {
	n := single(t, "| a => 1 | b => 2")
	if n.Kind != ast.Case {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Conditions.Size != 2 || n.Results.Size != 2 {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestCaseResultDoesNotAbsorbNextArmBar(t *testing.T) {
	// Without BOR_FLAG, `1` would try to parse `| b => 2` as a bitwise-or
	// right-hand side instead of ending the first arm.
	n := single(t, "| a => 1 | b => 2")
	first := n.Results.Head
	if first.Kind != ast.IntLiteral || first.Int != 1 {
		t.Fatalf("first result should be the bare literal 1, got %s", ast.Dump(first))
	}
}

func TestImport(t *testing.T) {
	n := single(t, `+ "list.so"`)
	if n.Kind != ast.Import || n.Text != "list.so" {
		t.Fatalf("got %s", ast.Dump(n))
	}
}

func TestFunctionLiteralAndPipe(t *testing.T) {
	n := single(t, "x |> (a -> a + 1)")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.RPIPE {
		t.Fatalf("got %s", ast.Dump(n))
	}
	fn := n.Right
	if fn.Kind != ast.Infix || fn.Op.Kind != lexer.ARROW {
		t.Fatalf("rhs not a function literal: %s", ast.Dump(fn))
	}
}

func TestTupleAssignment(t *testing.T) {
	n := single(t, "a, b = 1, 2")
	if n.Kind != ast.Infix || n.Op.Kind != lexer.ASSIGN {
		t.Fatalf("got %s", ast.Dump(n))
	}
	if n.Left.Kind != ast.Infix || n.Left.Op.Kind != lexer.COMMA {
		t.Fatalf("lhs not a tuple spine: %s", ast.Dump(n.Left))
	}
}

func TestPrefixOperators(t *testing.T) {
	for _, src := range []string{"-a", "!a", "~a", "++a", "--a", "::a"} {
		n := single(t, src)
		if n.Kind != ast.Prefix {
			t.Fatalf("%q: got %s", src, ast.Dump(n))
		}
	}
}

func TestExpectedErrorOnUnclosedGroup(t *testing.T) {
	arena := ast.NewArena()
	src := "(1 + 2"
	p := New(lexer.New(src), arena, "<test>", src)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for an unclosed group")
	}
}
