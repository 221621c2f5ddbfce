package parser

import (
	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is right associative. The target is parsed as an ordinary
// expression first and only accepted if it turns out to be a variable.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(types.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(ast.Variable); ok {
			return ast.Assign{Name: v.Name, Value: value}, nil
		}
		return nil, errors.ParseError{Message: "Invalid assignment target", Token: equals}
	}

	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, types.OR)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, types.AND)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, types.BANG_EQUAL, types.EQUAL_EQUAL)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, types.GREATER, types.GREATER_EQUAL, types.LESS, types.LESS_EQUAL)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, types.MINUS, types.PLUS)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, types.SLASH, types.STAR)
}

// binary parses one left associative precedence level: each new operand is
// folded in on the right, so the tree leans left.
func (p *Parser) binary(next func() (ast.Expr, error), operators ...types.TokenKind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

func (p *Parser) logical(next func() (ast.Expr, error), operator types.TokenKind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(operator) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}

	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(types.BANG, types.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// call handles chained calls like f(1)(2); the inner call becomes the callee
// of the outer one.
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(types.LPAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.peekIs(types.RPAREN) {
		for {
			if len(args) >= MaxArguments {
				p.report(errors.ParseError{Message: "Can't have more than 255 arguments", Token: p.peek()})
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.match(types.COMMA) {
				break
			}
		}
	}

	paren, err := p.expect(types.RPAREN, "Expect ')' after arguments")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(types.FALSE):
		return ast.Literal{Value: types.Bool(false)}, nil
	case p.match(types.TRUE):
		return ast.Literal{Value: types.Bool(true)}, nil
	case p.match(types.NIL):
		return ast.Literal{Value: types.Nil{}}, nil
	case p.match(types.NUMBER, types.STRING):
		return ast.Literal{Value: p.previous().Literal}, nil
	case p.match(types.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(types.RPAREN, "Expect ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Group{Inner: expr}, nil
	case p.match(types.IDENTIFIER):
		return ast.Variable{Name: p.previous()}, nil
	}

	return nil, errors.ParseError{Message: "Expect expression", Token: p.peek()}
}
