// Package errors formats glorp parse and evaluation errors with source
// context: a `<file>:<line>:<col>: error: <message>` header, the offending
// source line, and a caret/underline span, optionally in ANSI red.
package errors

import (
	"fmt"
	"strings"

	"github.com/glorp-lang/glorp/internal/lexer"
)

// Span is an inclusive run of source positions (End is the last position
// covered), typically a single token or an entire expression's start..end
// range.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// SpanOf builds a single-token span.
func SpanOf(pos lexer.Position, literal string) Span {
	end := pos
	if n := len(literal); n > 1 {
		end.Column = pos.Column + n - 1
	}
	return Span{Start: pos, End: end}
}

// Kind distinguishes the error taxonomy of spec.md §7. Kind does not change
// how an error is formatted; it lets callers (the REPL, tests) branch on
// category without parsing the message.
type Kind int

const (
	LexIllegal Kind = iota
	ParseUnexpected
	ParseExpected
	EvalUndefinedVariable
	EvalType
	EvalArity
	EvalBounds
	EvalConst
	EvalDestructure
	EvalImport
)

func (k Kind) String() string {
	switch k {
	case LexIllegal:
		return "illegal character"
	case ParseUnexpected:
		return "unexpected token"
	case ParseExpected:
		return "expected token"
	case EvalUndefinedVariable:
		return "undefined variable"
	case EvalType:
		return "type error"
	case EvalArity:
		return "arity error"
	case EvalBounds:
		return "bounds error"
	case EvalConst:
		return "const error"
	case EvalDestructure:
		return "destructure error"
	case EvalImport:
		return "import error"
	default:
		return "error"
	}
}

// Error is the single error record type shared by the lexer, parser, and
// evaluator. Every reported failure propagates as an explicit *Error return
// value rather than a panic/recover unwind, per spec.md §7.
type Error struct {
	Kind    Kind
	File    string
	Source  string
	Span    Span
	Message string

	// AtEOF marks a ParseUnexpected or ParseExpected error whose offending
	// token (the unexpected one, or the one found instead) was EOF
	// itself, rather than some other unexpected token. The REPL uses this
	// to decide whether a failed parse means "the input is wrong" or just
	// "the input isn't finished yet" (spec.md §6).
	AtEOF bool
}

// NeedsMoreInput reports whether e represents a parse failure that a REPL
// should treat as an incomplete chunk rather than a real error: the parser
// ran off the end of the input (Unexpected(EOF), or an expected token that
// was never found before EOF), encountered with a non-empty buffer already
// typed (spec.md §6).
func (e *Error) NeedsMoreInput(bufferNonEmpty bool) bool {
	if !bufferNonEmpty || !e.AtEOF {
		return false
	}
	return e.Kind == ParseUnexpected || e.Kind == ParseExpected
}

// New builds an Error. file/source may be empty when no file context is
// available yet (the caller attaches it before printing).
func New(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// WithSource returns a copy of e with file/source context attached, used
// once the top-level caller knows which buffer the error came from.
func (e *Error) WithSource(file, source string) *Error {
	cp := *e
	cp.File, cp.Source = file, source
	return &cp
}

// Error implements the standard error interface with an uncolored rendering.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the full user-visible error: header, source line, and a
// caret/underline span, matching spec.md §7's
// `<file>:<line>:<col>: error: <message>` contract.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	file := e.File
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&sb, "%s:%d:%d: error: %s\n", file, e.Span.Start.Line, e.Span.Start.Column, e.Message)

	line := sourceLine(e.Source, e.Span.Start.Line)
	if line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(underline(e.Span, color))
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// underline draws leading spaces up to Span.Start.Column, a `^` at the
// first offending column, and `~` through the rest of the span.
func underline(span Span, color bool) string {
	var sb strings.Builder

	pad := span.Start.Column - 1
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))

	width := span.End.Column - span.Start.Column + 1
	if width < 1 {
		width = 1
	}

	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// FormatAll renders multiple errors back to back, as the CLI does when
// reporting every error collected during a pass.
func FormatAll(errs []*Error, color bool) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Format(color))
	}
	return sb.String()
}
