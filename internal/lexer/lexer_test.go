package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x = [1, 2, 3];
	add = (a, b) -> a + b;
	`

	tests := []struct {
		expectedLiteral string
		expectedKind    TokenKind
	}{
		{"x", IDENT},
		{"=", ASSIGN},
		{"[", LBRACKET},
		{"1", INT},
		{",", COMMA},
		{"2", INT},
		{",", COMMA},
		{"3", INT},
		{"]", RBRACKET},
		{";", SEMICOLON},
		{"add", IDENT},
		{"=", ASSIGN},
		{"(", LPAREN},
		{"a", IDENT},
		{",", COMMA},
		{"b", IDENT},
		{")", RPAREN},
		{"->", ARROW},
		{"a", IDENT},
		{"+", PLUS},
		{"b", IDENT},
		{";", SEMICOLON},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `++ -- <= >= == != && || ~ ^ << >> <<< >>> <| |> :: -> <- =>`

	tests := []TokenKind{
		INC, DEC, LTE, GTE, EQ, NEQ, LAND, LOR, TILDE, CARET,
		SHL, SHR, LCOMPOSE, RCOMPOSE, LPIPE, RPIPE, DCOLON, ARROW, LARROW, FATARROW,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)", i, want, tok.Kind, tok.Literal)
		}
	}
	if tok := l.NextToken(); tok.Kind != EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input        string
		expectedKind TokenKind
		expected     string
	}{
		{"123", INT, "123"},
		{"3.14", FLOAT, "3.14"},
		{"3.", INT, "3"}, // trailing '.' with no digit is not part of the number
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind || tok.Literal != tt.expected {
			t.Fatalf("input %q: expected (%s,%q), got (%s,%q)", tt.input, tt.expectedKind, tt.expected, tok.Kind, tok.Literal)
		}
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input   string
		ok      bool
		literal string
	}{
		{`'a'`, true, `'a'`},
		{`'\n'`, true, `'\n'`},
		{`'\q'`, false, `'\q`},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		wantKind := CHAR
		if !tt.ok {
			wantKind = ILLEGAL
		}
		if tok.Kind != wantKind {
			t.Fatalf("input %q: expected kind %s, got %s", tt.input, wantKind, tok.Kind)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hi \"you\""`)
	tok := l.NextToken()
	if tok.Kind != STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}
	if tok.Literal != `"hi \"you\""` {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	input := "x # a comment\n = 1 # trailing\n"
	l := New(input)

	tok := l.NextToken()
	if tok.Kind != IDENT || tok.Literal != "x" {
		t.Fatalf("expected identifier x, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != ASSIGN {
		t.Fatalf("expected ASSIGN, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != INT || tok.Literal != "1" {
		t.Fatalf("expected int 1, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != EOF {
		t.Fatalf("expected EOF, got %v", tok)
	}
}

func TestExecShebangOnSecondLineOnly(t *testing.T) {
	input := "#!/bin/sh\nexec glorp \"$0\" \"$@\"\nx = 1\n"
	l := New(input)

	tok := l.NextToken()
	if tok.Kind != IDENT || tok.Literal != "x" {
		t.Fatalf("expected to skip shebang+exec lines and land on 'x', got %v", tok)
	}
}

func TestExecIdentifierOnOtherLinesIsNormal(t *testing.T) {
	l := New("exec = 1")
	tok := l.NextToken()
	if tok.Kind != IDENT || tok.Literal != "exec" {
		t.Fatalf("expected identifier 'exec' on line 1, got %v", tok)
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("x\ny")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken() // y
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if tok := l.NextToken(); tok.Kind != EOF {
		t.Fatalf("expected EOF after illegal token, got %s", tok.Kind)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"(1 + 2)", false},
		{"(1 + 2", true},
		{"[1, 2, [3", true},
		{"{ x = 1; }", false},
		{"f(a, b", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := NeedsMoreInput(tt.input); got != tt.want {
			t.Fatalf("NeedsMoreInput(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
