package parser

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/coreos/pkg/multierror"
	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "parser")

// MaxArguments caps both call arguments and function parameters.
const MaxArguments = 255

type Parser struct {
	tokens      []types.Token
	current     int
	diagnostics multierror.Error
}

func NewParser(tokens []types.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		var eof types.Token
		eof.Kind = types.EOF
		if len(tokens) > 0 {
			eof.Location = types.SingleCharSpan(tokens[len(tokens)-1].Location.To)
		}
		tokens = append(tokens, eof)
	}
	return &Parser{tokens: tokens}
}

// Parse is shorthand for NewParser(tokens).Parse().
func Parse(tokens []types.Token) (ast.Program, error) {
	return NewParser(tokens).Parse()
}

// Parse reads declarations until EOF. Malformed declarations are left out of
// the program; the returned error collects every diagnostic.
func (p *Parser) Parse() (ast.Program, error) {
	var program ast.Program
	for !p.atEnd() {
		if stmt := p.safeDeclaration(); stmt != nil {
			program = append(program, stmt)
		}
	}
	return program, p.diagnostics.AsError()
}

// Expression parses a single expression, for callers that have no statement
// around it.
func (p *Parser) Expression() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.diagnostics.AsError(); err != nil {
		return expr, err
	}
	return expr, nil
}

// ParseExpression parses tokens that must hold exactly one expression.
func ParseExpression(tokens []types.Token) (ast.Expr, error) {
	p := NewParser(tokens)
	expr, err := p.Expression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, errors.ParseError{Message: "Expect end of expression", Token: p.peek()}
	}
	return expr, nil
}

func (p *Parser) Diagnostics() []error {
	return p.diagnostics
}

func (p *Parser) report(err error) {
	p.diagnostics = append(p.diagnostics, err)
}

// safeDeclaration returns nil when the declaration failed to parse. The
// failure is recorded and the parser is moved to the next statement boundary.
func (p *Parser) safeDeclaration() ast.Stmt {
	stmt, err := p.declaration()
	if err != nil {
		p.report(err)
		p.synchronize()
		plog.Debugf("dropped statement, resuming at %s: %v", p.peek().Location, err)
		return nil
	}
	return stmt
}

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(types.VAR) {
		return p.varDeclaration()
	}
	if p.match(types.FUN) {
		return p.function("function")
	}
	return p.statement()
}

func (p *Parser) function(kind string) (ast.Stmt, error) {
	name, err := p.expect(types.IDENTIFIER, "Expect "+kind+" name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(types.LPAREN, "Expect '(' after "+kind+" name"); err != nil {
		return nil, err
	}

	var params []types.Token
	if !p.peekIs(types.RPAREN) {
		for {
			if len(params) >= MaxArguments {
				p.report(errors.ParseError{Message: "Can't have more than 255 parameters", Token: p.peek()})
			}
			param, err := p.expect(types.IDENTIFIER, "Expect parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if !p.match(types.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(types.RPAREN, "Expect ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.expect(types.LBRACE, "Expect '{' before "+kind+" body"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return ast.Function{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.expect(types.IDENTIFIER, "Expect variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(types.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(types.SEMICOLON, "Expect ';' after variable declaration"); err != nil {
		return nil, err
	}
	return ast.Var{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(types.PRINT):
		return p.printStatement()
	case p.match(types.LBRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.Block{Statements: stmts}, nil
	case p.match(types.IF):
		return p.ifStatement()
	case p.match(types.WHILE):
		return p.whileStatement()
	case p.match(types.FOR):
		return p.forStatement()
	case p.match(types.RETURN):
		return p.returnStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(types.SEMICOLON, "Expect ';' after value"); err != nil {
		return nil, err
	}
	return ast.Print{Expr: value}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(types.SEMICOLON, "Expect ';' after expression"); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: value}, nil
}

// block should be called with the parser past the opening brace
func (p *Parser) block() ([]ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.peekIs(types.RBRACE) && !p.atEnd() {
		if stmt := p.safeDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.expect(types.RBRACE, "Expect '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.expect(types.LPAREN, "Expect '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(types.RPAREN, "Expect ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(types.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return ast.If{Condition: condition, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.expect(types.LPAREN, "Expect '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(types.RPAREN, "Expect ')' after while condition"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.While{Condition: condition, Body: body}, nil
}

// forStatement rewrites the loop into a block holding the initializer and a
// while loop whose body runs the increment after the loop body.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.expect(types.LPAREN, "Expect '(' after 'for'"); err != nil {
		return nil, err
	}

	var (
		initializer ast.Stmt
		err         error
	)
	switch {
	case p.match(types.SEMICOLON):
	case p.match(types.VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.peekIs(types.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(types.SEMICOLON, "Expect ';' after loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.peekIs(types.RPAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(types.RPAREN, "Expect ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = ast.Block{Statements: []ast.Stmt{body, ast.ExprStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = ast.Literal{Value: types.Bool(true)}
	}
	body = ast.While{Condition: condition, Body: body}
	if initializer != nil {
		body = ast.Block{Statements: []ast.Stmt{initializer, body}}
	}

	return body, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()

	var (
		value ast.Expr
		err   error
	)
	if !p.peekIs(types.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(types.SEMICOLON, "Expect ';' after return value"); err != nil {
		return nil, err
	}
	return ast.Return{Keyword: keyword, Value: value}, nil
}

// synchronize discards tokens until just past a semicolon or just before a
// keyword that starts a declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == types.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case types.CLASS, types.FOR, types.FUN, types.IF, types.PRINT, types.RETURN, types.VAR, types.WHILE:
			return
		}
		p.advance()
	}
}

func (p *Parser) expect(kind types.TokenKind, msg string) (types.Token, error) {
	if p.peekIs(kind) {
		return p.advance(), nil
	}
	return types.Token{}, errors.ParseError{Message: msg, Token: p.peek()}
}

func (p *Parser) match(kinds ...types.TokenKind) bool {
	if p.peekIs(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) peekIs(kinds ...types.TokenKind) bool {
	if p.atEnd() {
		return false
	}
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == types.EOF
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() types.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() types.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}
