package parser

import "github.com/glorp-lang/glorp/internal/lexer"

// Precedence implements the ladder from spec.md §4.2, low to high. STOP is
// never a real operator's precedence; it is what a disabled token (see
// ctxFlags) appears to have, terminating the Pratt loop early.
type Precedence int

const (
	STOP Precedence = iota
	LOWEST
	ASSIGN
	PIPE
	FUNCTION
	TUPLE
	TERNARY
	LOR
	LAND
	BOR
	XOR
	BAND
	EQUALS
	SHIFT
	APPEND
	SUM
	PRODUCT
	PREFIXPREC
	INDEXPREC
	COMPOSE
	CALLPREC
	FIELD
)

// Assoc is an operator's associativity, used by the Pratt loop's
// continuation test (spec.md §4.2): continue iff
// (assoc==LEFT && peek.prec > p) || (assoc==RIGHT && peek.prec >= p).
type Assoc int

const (
	LEFT Assoc = iota
	RIGHT
)

type opInfo struct {
	prec  Precedence
	assoc Assoc
}

// infixInfo maps every infix-eligible token to its precedence and
// associativity. FIELD is reserved by the ladder for a future member-access
// form; no token is bound to it today (see DESIGN.md).
var infixInfo = map[lexer.TokenKind]opInfo{
	lexer.ASSIGN:   {ASSIGN, RIGHT},
	lexer.DCOLON:   {ASSIGN, RIGHT},
	lexer.LPIPE:    {PIPE, LEFT},
	lexer.RPIPE:    {PIPE, LEFT},
	lexer.DOT:      {PIPE, LEFT},
	lexer.ARROW:    {FUNCTION, RIGHT},
	lexer.COMMA:    {TUPLE, RIGHT},
	lexer.QUESTION: {TERNARY, RIGHT},
	lexer.LOR:      {LOR, LEFT},
	lexer.LAND:     {LAND, LEFT},
	lexer.BOR:      {BOR, LEFT},
	lexer.CARET:    {XOR, LEFT},
	lexer.BAND:     {BAND, LEFT},
	lexer.EQ:       {EQUALS, LEFT},
	lexer.NEQ:      {EQUALS, LEFT},
	lexer.LT:       {EQUALS, LEFT},
	lexer.GT:       {EQUALS, LEFT},
	lexer.LTE:      {EQUALS, LEFT},
	lexer.GTE:      {EQUALS, LEFT},
	lexer.SHL:      {SHIFT, LEFT},
	lexer.SHR:      {SHIFT, LEFT},
	lexer.COLON:    {APPEND, RIGHT},
	lexer.PLUS:     {SUM, LEFT},
	lexer.MINUS:    {SUM, LEFT},
	lexer.ASTERISK: {PRODUCT, LEFT},
	lexer.SLASH:    {PRODUCT, LEFT},
	lexer.PERCENT:  {PRODUCT, LEFT},
	lexer.LBRACKET: {INDEXPREC, LEFT},
	lexer.LCOMPOSE: {COMPOSE, RIGHT},
	lexer.RCOMPOSE: {COMPOSE, RIGHT},
	lexer.LPAREN:   {CALLPREC, LEFT},
}

// precedenceOf reports the ladder precedence of an infix-eligible token, or
// LOWEST if the token has no infix meaning at all (the Pratt loop's
// terminal case). ctxFlags.disables() overrides this to STOP.
func precedenceOf(k lexer.TokenKind) Precedence {
	if info, ok := infixInfo[k]; ok {
		return info.prec
	}
	return LOWEST
}

func assocOf(k lexer.TokenKind) Assoc {
	return infixInfo[k].assoc
}
