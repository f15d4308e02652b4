package parser

import "github.com/glorp-lang/glorp/internal/lexer"

// ctxFlags is the small bitset threaded through expression parsing to
// suppress specific infix tokens in specific grammar positions (spec.md
// §4.2): COLON_FLAG while parsing a ternary's consequence (so `:` closes the
// ternary instead of being absorbed as the cons/prepend operator),
// TUPLE_FLAG while parsing call arguments or list-literal elements (so `,`
// separates elements instead of building a tuple spine), and BOR_FLAG while
// parsing a case arm's result (so `|` starts the next arm instead of being
// absorbed as bitwise-or).
type ctxFlags uint8

const (
	colonFlag ctxFlags = 1 << iota
	tupleFlag
	borFlag
)

func (f ctxFlags) with(extra ctxFlags) ctxFlags    { return f | extra }
func (f ctxFlags) without(extra ctxFlags) ctxFlags { return f &^ extra }
func (f ctxFlags) has(flag ctxFlags) bool          { return f&flag != 0 }

// disables reports whether the current flag set suppresses k's infix
// meaning, per the table above.
func (f ctxFlags) disables(k lexer.TokenKind) bool {
	switch k {
	case lexer.COLON:
		return f.has(colonFlag)
	case lexer.COMMA:
		return f.has(tupleFlag)
	case lexer.BOR:
		return f.has(borFlag)
	default:
		return false
	}
}
