// Package parser turns a glorp token stream into an expression tree rooted
// at a Program node, using a Pratt (operator-precedence) scheme: one
// prefix-position handler and one infix-position handler per token kind,
// with a small bitset (ctxFlags) suppressing certain infix tokens inside
// ternary consequences, call/list-literal argument lists, and case arms
// (spec.md §4.2).
package parser

import (
	"strconv"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/errors"
	"github.com/glorp-lang/glorp/internal/lexer"
)

type prefixFn func() *ast.Node
type infixFn func(left *ast.Node, prec Precedence) *ast.Node

// Parser builds an *ast.Node tree from a token stream. It is single-use:
// construct one per parse with New.
type Parser struct {
	l     *lexer.Lexer
	arena *ast.Arena
	file  string
	src   string

	cur, peek lexer.Token
	flags     ctxFlags

	errs []*errors.Error

	prefixFns map[lexer.TokenKind]prefixFn
	infixFns  map[lexer.TokenKind]infixFn
}

// New returns a Parser reading from l and allocating nodes from arena.
// file and src are attached to diagnostics so errors can render a source
// line (internal/errors.Error.Format); src should be the same text l was
// constructed over.
func New(l *lexer.Lexer, arena *ast.Arena, file, src string) *Parser {
	p := &Parser{l: l, arena: arena, file: file, src: src}

	p.prefixFns = map[lexer.TokenKind]prefixFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.INT:      p.parseIntLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.CHAR:     p.parseCharLiteral,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.LBRACE:   p.parseBlock,
		lexer.LPAREN:   p.parseGroup,
		lexer.MINUS:    p.parsePrefixOp,
		lexer.BANG:     p.parsePrefixOp,
		lexer.TILDE:    p.parsePrefixOp,
		lexer.INC:      p.parsePrefixOp,
		lexer.DEC:      p.parsePrefixOp,
		lexer.DCOLON:   p.parsePrefixOp,
		lexer.BOR:      p.parseCase,
		lexer.PLUS:     p.parseImport,
	}

	p.infixFns = map[lexer.TokenKind]infixFn{
		lexer.QUESTION: p.parseTernary,
		lexer.LPAREN:   p.parseCall,
		lexer.LBRACKET: p.parseIndexExpr,
	}
	for k := range infixInfo {
		if _, taken := p.infixFns[k]; !taken {
			p.infixFns[k] = p.parseInfixGeneric
		}
	}

	// Prime cur/peek.
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far, in source order.
func (p *Parser) Errors() []*errors.Error { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k lexer.TokenKind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k lexer.TokenKind) bool { return p.peek.Kind == k }

// expect advances past cur if it has kind k, recording an Expected error and
// leaving cur alone otherwise.
func (p *Parser) expect(k lexer.TokenKind) bool {
	if p.curIs(k) {
		p.next()
		return true
	}
	p.errExpected(k, p.cur)
	return false
}

func (p *Parser) errUnexpected(tok lexer.Token) {
	e := errors.New(errors.ParseUnexpected, errors.SpanOf(tok.Pos, tok.Literal),
		"unexpected %s", tok).WithSource(p.file, p.src)
	e.AtEOF = tok.Kind == lexer.EOF
	p.errs = append(p.errs, e)
}

func (p *Parser) errExpected(want lexer.TokenKind, got lexer.Token) {
	e := errors.New(errors.ParseExpected, errors.SpanOf(got.Pos, got.Literal),
		"expected %s but found %s", want, got).WithSource(p.file, p.src)
	e.AtEOF = got.Kind == lexer.EOF
	p.errs = append(p.errs, e)
}

// withFlags runs fn with extra flags set, restoring the prior flag set
// afterward regardless of how fn parses.
func (p *Parser) withFlags(extra ctxFlags, fn func() *ast.Node) *ast.Node {
	saved := p.flags
	p.flags = p.flags.with(extra)
	n := fn()
	p.flags = saved
	return n
}

// resetFlags runs fn with every context flag cleared — used at the start of
// a parenthesized group or block, since those are fresh grammar contexts.
func (p *Parser) resetFlags(fn func() *ast.Node) *ast.Node {
	saved := p.flags
	p.flags = 0
	n := fn()
	p.flags = saved
	return n
}

// effectivePeekPrecedence returns STOP when the current context flags
// disable the infix meaning of the next unconsumed token (cur, since every
// prefix handler leaves cur just past its expression), else its ladder
// precedence.
func (p *Parser) effectivePeekPrecedence() Precedence {
	if p.flags.disables(p.cur.Kind) {
		return STOP
	}
	if _, ok := p.infixFns[p.cur.Kind]; !ok {
		return STOP
	}
	return precedenceOf(p.cur.Kind)
}

// shouldContinue implements spec.md §4.2's termination condition: continue
// absorbing the next token as an infix operator iff
// (assoc==LEFT && prec > minPrec) || (assoc==RIGHT && prec >= minPrec).
func (p *Parser) shouldContinue(minPrec Precedence) bool {
	q := p.effectivePeekPrecedence()
	if q == STOP {
		return false
	}
	switch assocOf(p.cur.Kind) {
	case RIGHT:
		return q >= minPrec
	default:
		return q > minPrec
	}
}

// parseExpression is the Pratt loop: dispatch cur to its prefix handler,
// then keep absorbing infix operators that bind at least as tightly as
// minPrec permits.
func (p *Parser) parseExpression(minPrec Precedence) *ast.Node {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errUnexpected(p.cur)
		p.next()
		return p.arena.New(ast.Unit)
	}
	left := prefix()

	for p.shouldContinue(minPrec) {
		prec := precedenceOf(p.cur.Kind)
		infix := p.infixFns[p.cur.Kind] // cur is the operator
		left = infix(left, prec)
	}
	return left
}

// ParseProgram parses the whole token stream as a sequence of expressions
// separated by optional semicolons, the same shape as a Block but without
// enclosing braces and without resetting context flags (there are none set
// yet at the top level).
func (p *Parser) ParseProgram() *ast.Node {
	prog := p.arena.New(ast.Program)
	for !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		expr := p.parseExpression(LOWEST)
		prog.List.Append(expr)
		for p.curIs(lexer.SEMICOLON) {
			p.next()
		}
	}
	return prog
}

func mustParseInt(lit string) int64 {
	n, _ := strconv.ParseInt(lit, 10, 64)
	return n
}

func mustParseFloat(lit string) float64 {
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}
