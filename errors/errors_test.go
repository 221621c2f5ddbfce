package errors

import (
	"strings"
	"testing"

	"github.com/pontaoski/minilang/types"
)

func TestMessagesCarryPosition(t *testing.T) {
	pos := types.Position{Line: 3, Column: 7, Filename: "main.mini"}
	tok := types.Token{Kind: types.PLUS, Lexeme: "+", Location: types.SingleCharSpan(pos)}

	cases := []error{
		LexError{Message: "unexpected character", Char: '@', Location: types.SingleCharSpan(pos)},
		ParseError{Message: "Expect expression", Token: tok},
		RuntimeError{Message: "operands must be two numbers or two strings", Token: tok},
	}
	for _, err := range cases {
		if !strings.Contains(err.Error(), "main.mini:3:7") {
			t.Fatalf("%T message lacks position: %q", err, err.Error())
		}
	}
}

func TestParseErrorAtEnd(t *testing.T) {
	err := ParseError{Message: "Expect ';' after value", Token: types.Token{Kind: types.EOF}}
	if !strings.Contains(err.Error(), "at end") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
