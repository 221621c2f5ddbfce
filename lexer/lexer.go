package lexer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "lexer")

type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	tokens []types.Token

	// start of the token being scanned and its text so far
	from   types.Position
	lexeme strings.Builder
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// Scan tokenizes source. The returned slice always ends with an EOF token.
func Scan(source, filename string) ([]types.Token, error) {
	return NewLexer(strings.NewReader(source), filename).ScanTokens()
}

func (l *Lexer) ScanTokens() ([]types.Token, error) {
	for {
		l.from = l.pos
		l.lexeme.Reset()

		r, ok, err := l.advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if err := l.scanToken(r); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, types.Token{
		Kind:     types.EOF,
		Location: types.SingleCharSpan(l.pos),
	})
	plog.Debugf("scanned %d tokens from %s", len(l.tokens), l.pos.Filename)

	return l.tokens, nil
}

func (l *Lexer) scanToken(r rune) error {
	single := map[rune]types.TokenKind{
		'(': types.LPAREN,
		')': types.RPAREN,
		'{': types.LBRACE,
		'}': types.RBRACE,
		',': types.COMMA,
		'.': types.DOT,
		'-': types.MINUS,
		'+': types.PLUS,
		';': types.SEMICOLON,
		'*': types.STAR,
	}
	if kind, ok := single[r]; ok {
		l.add(kind, nil)
		return nil
	}

	// one or two character operators
	pairs := map[rune][2]types.TokenKind{
		'!': {types.BANG, types.BANG_EQUAL},
		'=': {types.EQUAL, types.EQUAL_EQUAL},
		'<': {types.LESS, types.LESS_EQUAL},
		'>': {types.GREATER, types.GREATER_EQUAL},
	}
	if kinds, ok := pairs[r]; ok {
		matched, err := l.match('=')
		if err != nil {
			return err
		}
		if matched {
			l.add(kinds[1], nil)
		} else {
			l.add(kinds[0], nil)
		}
		return nil
	}

	switch r {
	case '/':
		matched, err := l.match('/')
		if err != nil {
			return err
		}
		if !matched {
			l.add(types.SLASH, nil)
			return nil
		}
		for {
			next, ok, err := l.peek()
			if err != nil {
				return err
			}
			if !ok || next == '\n' {
				return nil
			}
			if _, _, err := l.advance(); err != nil {
				return err
			}
		}
	case ' ', '\r', '\t', '\n':
		return nil
	case '"':
		return l.lexString()
	}

	switch {
	case isDigit(r):
		return l.lexNumber()
	case isAlpha(r):
		return l.lexIdent()
	}

	return errors.LexError{
		Message:  "unexpected character",
		Char:     r,
		Location: types.Span{From: l.from, To: l.pos},
	}
}

func (l *Lexer) lexString() error {
	for {
		r, ok, err := l.peek()
		if err != nil {
			return err
		}
		if !ok {
			return errors.LexError{
				Message:  "unterminated string",
				Location: types.Span{From: l.from, To: l.pos},
			}
		}
		if _, _, err := l.advance(); err != nil {
			return err
		}
		if r == '"' {
			break
		}
	}

	text := l.lexeme.String()
	l.add(types.STRING, types.String(text[1:len(text)-1]))
	return nil
}

func (l *Lexer) lexNumber() error {
	if err := l.digits(); err != nil {
		return err
	}

	next, ok, err := l.peek()
	if err != nil {
		return err
	}
	if ok && next == '.' {
		after, err := l.peekNext()
		if err != nil {
			return err
		}
		if isDigit(after) {
			if _, _, err := l.advance(); err != nil {
				return err
			}
			if err := l.digits(); err != nil {
				return err
			}
		}
	}

	parsed, err := strconv.ParseFloat(l.lexeme.String(), 64)
	if err != nil {
		return err
	}
	l.add(types.NUMBER, types.Number(parsed))
	return nil
}

func (l *Lexer) digits() error {
	for {
		r, ok, err := l.peek()
		if err != nil {
			return err
		}
		if !ok || !isDigit(r) {
			return nil
		}
		if _, _, err := l.advance(); err != nil {
			return err
		}
	}
}

func (l *Lexer) lexIdent() error {
	for {
		r, ok, err := l.peek()
		if err != nil {
			return err
		}
		if !ok || !(isAlpha(r) || isDigit(r)) {
			break
		}
		if _, _, err := l.advance(); err != nil {
			return err
		}
	}

	if kind, ok := types.Keywords[l.lexeme.String()]; ok {
		l.add(kind, nil)
		return nil
	}
	l.add(types.IDENTIFIER, nil)
	return nil
}

func (l *Lexer) add(kind types.TokenKind, literal types.Value) {
	tok := types.Token{
		Kind:     kind,
		Lexeme:   l.lexeme.String(),
		Literal:  literal,
		Location: types.Span{From: l.from, To: l.pos},
	}
	plog.Tracef("token %s at %s", tok, tok.Location)
	l.tokens = append(l.tokens, tok)
}

// advance consumes one rune. ok is false at end of input.
func (l *Lexer) advance() (r rune, ok bool, err error) {
	r, _, err = l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, err
	}

	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column++
	}
	l.lexeme.WriteRune(r)

	return r, true, nil
}

func (l *Lexer) peek() (rune, bool, error) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, err
	}
	if err := l.reader.UnreadRune(); err != nil {
		return 0, false, err
	}
	return r, true, nil
}

// peekNext looks one byte past peek. Only used after an ASCII '.'.
func (l *Lexer) peekNext() (rune, error) {
	byt, err := l.reader.Peek(2)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if len(byt) < 2 {
		return 0, nil
	}
	return rune(byt[1]), nil
}

func (l *Lexer) match(expected rune) (bool, error) {
	r, ok, err := l.peek()
	if err != nil || !ok || r != expected {
		return false, err
	}
	_, _, err = l.advance()
	return err == nil, err
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}
