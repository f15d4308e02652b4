package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/glorp-lang/glorp/internal/ast"
	"github.com/glorp-lang/glorp/internal/lexer"
)

// --- prefix-position handlers -------------------------------------------

func (p *Parser) parseIdentifier() *ast.Node {
	n := p.arena.New(ast.Identifier)
	n.Start, n.End = p.cur, p.cur
	n.Text = p.cur.Literal
	p.next()
	return n
}

func (p *Parser) parseIntLiteral() *ast.Node {
	n := p.arena.New(ast.IntLiteral)
	n.Start, n.End = p.cur, p.cur
	n.Int = mustParseInt(p.cur.Literal)
	p.next()
	return n
}

func (p *Parser) parseFloatLiteral() *ast.Node {
	n := p.arena.New(ast.FloatLiteral)
	n.Start, n.End = p.cur, p.cur
	n.Float = mustParseFloat(p.cur.Literal)
	p.next()
	return n
}

func (p *Parser) parseStringLiteral() *ast.Node {
	n := p.arena.New(ast.StringLiteral)
	n.Start, n.End = p.cur, p.cur
	n.Text = decodeStringLiteral(p.cur.Literal)
	p.next()
	return n
}

func (p *Parser) parseCharLiteral() *ast.Node {
	n := p.arena.New(ast.CharLiteral)
	n.Start, n.End = p.cur, p.cur
	n.Char = decodeCharLiteral(p.cur.Literal)
	p.next()
	return n
}

// parseListLiteral parses `[` elem (`,` elem)* `]`, or `[]` for the empty
// list. TUPLE_FLAG is set while reading elements so a `,` never escapes into
// a tuple spine across a nested group.
func (p *Parser) parseListLiteral() *ast.Node {
	n := p.arena.New(ast.ListLiteral)
	start := p.cur
	p.next() // consume '['

	p.withFlags(tupleFlag, func() *ast.Node {
		for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
			n.List.Append(p.parseExpression(LOWEST))
			if p.curIs(lexer.COMMA) {
				p.next()
			} else {
				break
			}
		}
		return nil
	})

	n.Start = start
	n.End = p.cur
	p.expect(lexer.RBRACKET)
	return n
}

// parseBlock parses `{` expr (`;` expr)* `}`; every context flag is cleared
// inside, since a block is a fresh grammar context.
func (p *Parser) parseBlock() *ast.Node {
	n := p.arena.New(ast.Block)
	start := p.cur
	p.next() // consume '{'

	p.resetFlags(func() *ast.Node {
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			if p.curIs(lexer.SEMICOLON) {
				p.next()
				continue
			}
			n.List.Append(p.parseExpression(LOWEST))
			for p.curIs(lexer.SEMICOLON) {
				p.next()
			}
		}
		return nil
	})

	n.Start = start
	n.End = p.cur
	p.expect(lexer.RBRACE)
	return n
}

// parseGroup parses `(` expr `)`, or `()` as Unit. All context flags are
// cleared inside, matching parseBlock.
func (p *Parser) parseGroup() *ast.Node {
	start := p.cur
	p.next() // consume '('

	if p.curIs(lexer.RPAREN) {
		unit := p.arena.New(ast.Unit)
		unit.Start, unit.End = start, p.cur
		p.next()
		return unit
	}

	inner := p.resetFlags(func() *ast.Node {
		return p.parseExpression(LOWEST)
	})
	p.expect(lexer.RPAREN)
	return inner
}

// parsePrefixOp parses `- ! ~ ++ -- ::` applied to a right operand parsed at
// PREFIXPREC. `::` legality (only valid in a function-parameter pattern) is
// an evaluator-time concern, not a parse-time one.
func (p *Parser) parsePrefixOp() *ast.Node {
	n := p.arena.New(ast.Prefix)
	n.Op = p.cur
	n.Start = p.cur
	p.next()
	n.Right = p.parseExpression(PREFIXPREC)
	n.End = n.Right.End
	return n
}

// parseImport parses `+ "path"`: a literal `+` immediately followed by a
// string literal, the only prefix meaning `+` has (spec.md §4.2 lists the
// general prefix operators as `- ! ~ ++ -- ::`, which excludes plain `+`).
func (p *Parser) parseImport() *ast.Node {
	n := p.arena.New(ast.Import)
	n.Start = p.cur
	p.next() // consume '+'

	if !p.curIs(lexer.STRING) {
		p.errExpected(lexer.STRING, p.cur)
		n.End = p.cur
		return n
	}
	n.Text = decodeStringLiteral(p.cur.Literal)
	n.End = p.cur
	p.next()
	return n
}

// parseCase parses `|` cond `=>` result, repeating for as long as the next
// token is `|`. BOR_FLAG is set while parsing each result so that a `|`
// starting the next arm is never absorbed as bitwise-or.
func (p *Parser) parseCase() *ast.Node {
	n := p.arena.New(ast.Case)
	n.Start = p.cur

	for {
		p.next() // consume '|'
		cond := p.parseExpression(LOWEST)
		n.Conditions.Append(cond)

		p.expect(lexer.FATARROW)
		result := p.withFlags(borFlag, func() *ast.Node {
			return p.parseExpression(LOWEST)
		})
		n.Results.Append(result)
		n.End = result.End

		if !p.curIs(lexer.BOR) {
			break
		}
	}
	return n
}

// --- infix/postfix-position handlers ------------------------------------

// parseInfixGeneric handles every binary operator whose evaluation is
// dispatched purely by Op.Kind at evaluator time: arithmetic, comparison,
// logical, bitwise, shift, cons (`:`), tuple (`,`), assignment (`=`, `::`),
// function literal (`->`), composition (`<<<`, `>>>`), and pipe
// (`<|`, `|>`, `.`).
func (p *Parser) parseInfixGeneric(left *ast.Node, prec Precedence) *ast.Node {
	n := p.arena.New(ast.Infix)
	n.Op = p.cur
	n.Left = left
	n.Start = left.Start
	p.next()
	n.Right = p.parseExpression(prec)
	n.End = n.Right.End
	return n
}

// parseTernary handles `cond ? cons : alt`. COLON_FLAG is set while parsing
// cons so the `:` that closes the ternary isn't absorbed as cons/prepend.
func (p *Parser) parseTernary(cond *ast.Node, prec Precedence) *ast.Node {
	n := p.arena.New(ast.Ternary)
	n.Start = cond.Start
	n.Cond = cond
	p.next() // consume '?'

	n.Cons = p.withFlags(colonFlag, func() *ast.Node {
		return p.parseExpression(LOWEST)
	})
	p.expect(lexer.COLON)
	n.Alt = p.parseExpression(prec)
	n.End = n.Alt.End
	return n
}

// parseCall handles postfix `callee(arg, arg, ...)`. TUPLE_FLAG is set while
// reading arguments so `,` separates them instead of building a tuple spine.
func (p *Parser) parseCall(callee *ast.Node, _ Precedence) *ast.Node {
	n := p.arena.New(ast.Call)
	n.Start = callee.Start
	n.Callee = callee
	p.next() // consume '('

	p.withFlags(tupleFlag, func() *ast.Node {
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			n.Params.Append(p.parseExpression(LOWEST))
			if p.curIs(lexer.COMMA) {
				p.next()
			} else {
				break
			}
		}
		return nil
	})

	n.End = p.cur
	p.expect(lexer.RPAREN)
	return n
}

// parseIndexExpr handles postfix `coll[idx]`.
func (p *Parser) parseIndexExpr(coll *ast.Node, _ Precedence) *ast.Node {
	n := p.arena.New(ast.Index)
	n.Start = coll.Start
	n.Coll = coll
	p.next() // consume '['
	n.Idx = p.parseExpression(LOWEST)
	n.End = p.cur
	p.expect(lexer.RBRACKET)
	return n
}

// --- literal decoding -----------------------------------------------------

// decodeCharLiteral converts a raw `'X'`/`'\e'` token literal (quotes
// included, as emitted by the lexer) into its rune value.
func decodeCharLiteral(raw string) rune {
	inner := raw[1 : len(raw)-1]
	if len(inner) >= 2 && inner[0] == '\\' {
		switch inner[1] {
		case 'n':
			return '\n'
		case 'r':
			return '\r'
		case 't':
			return '\t'
		case 'b':
			return '\b'
		case 'f':
			return '\f'
		case 'v':
			return '\v'
		case '\\':
			return '\\'
		case '\'':
			return '\''
		}
	}
	r, _ := utf8.DecodeRuneInString(inner)
	return r
}

// decodeStringLiteral converts a raw `"..."` token literal into its text
// value: `\"` becomes a literal quote, every other character (including a
// bare backslash) is copied verbatim, matching the lexer's readString.
func decodeStringLiteral(raw string) string {
	inner := raw[1 : len(raw)-1]
	var sb strings.Builder
	sb.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '"' {
			sb.WriteByte('"')
			i++
			continue
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}
