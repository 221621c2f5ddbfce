package errors

import (
	"fmt"

	"github.com/pontaoski/minilang/types"
)

// LexError aborts scanning: an unexpected character or an unterminated
// string literal.
type LexError struct {
	Message  string
	Char     rune
	Location types.Span
}

func (e LexError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("%s. %s", e.Message, e.Location)
	}
	return fmt.Sprintf("%s %q. %s", e.Message, e.Char, e.Location)
}

type ParseError struct {
	Message string
	Token   types.Token
}

func (e ParseError) Error() string {
	if e.Token.Kind == types.EOF {
		return fmt.Sprintf("%s at end. %s", e.Message, e.Token.Location)
	}
	return fmt.Sprintf("%s around '%s'. %s", e.Message, e.Token.Lexeme, e.Token.Location)
}

type RuntimeError struct {
	Message string
	Token   types.Token
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s at '%s'. %s", e.Message, e.Token.Lexeme, e.Token.Location)
}
