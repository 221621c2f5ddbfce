package interpreter

import (
	"fmt"

	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

func (i *Interpreter) Evaluate(expr ast.Expr) (types.Value, error) {
	switch e := expr.(type) {
	case ast.Literal:
		if e.Value == nil {
			return types.Nil{}, nil
		}
		return e.Value, nil
	case ast.Group:
		return i.Evaluate(e.Inner)
	case ast.Variable:
		return i.env.Get(e.Name)
	case ast.Assign:
		var value types.Value = types.Nil{}
		if e.Value != nil {
			v, err := i.Evaluate(e.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		if err := i.env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case ast.Logical:
		left, err := i.Evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Kind == types.OR {
			if types.Truthy(left) {
				return left, nil
			}
		} else if !types.Truthy(left) {
			return left, nil
		}
		return i.Evaluate(e.Right)
	case ast.Unary:
		return i.unary(e)
	case ast.Binary:
		return i.binary(e)
	case ast.Call:
		// callables are not implemented; a call is always nil
		return types.Nil{}, nil
	}

	panic(fmt.Sprintf("unhandled expression %T", expr))
}

func (i *Interpreter) unary(e ast.Unary) (types.Value, error) {
	right, err := i.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case types.BANG:
		return types.Bool(!types.Truthy(right)), nil
	case types.MINUS:
		n, ok := right.(types.Number)
		if !ok {
			return nil, errors.RuntimeError{Message: "operand must be a number", Token: e.Operator}
		}
		return -n, nil
	}

	panic(fmt.Sprintf("unhandled unary operator %s", e.Operator.Kind))
}

// binary evaluates both operands before looking at the operator; there is no
// short circuit here.
func (i *Interpreter) binary(e ast.Binary) (types.Value, error) {
	left, err := i.Evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case types.EQUAL_EQUAL:
		return types.Bool(types.Equal(left, right)), nil
	case types.BANG_EQUAL:
		return types.Bool(!types.Equal(left, right)), nil
	case types.PLUS:
		switch l := left.(type) {
		case types.Number:
			if r, ok := right.(types.Number); ok {
				return l + r, nil
			}
		case types.String:
			if r, ok := right.(types.String); ok {
				return l + r, nil
			}
		}
		return nil, errors.RuntimeError{Message: "operands must be two numbers or two strings", Token: e.Operator}
	}

	l, lok := left.(types.Number)
	r, rok := right.(types.Number)
	if !lok || !rok {
		return nil, errors.RuntimeError{Message: "operands must be numbers", Token: e.Operator}
	}

	switch e.Operator.Kind {
	case types.MINUS:
		return l - r, nil
	case types.SLASH:
		return l / r, nil
	case types.STAR:
		return l * r, nil
	case types.GREATER:
		return types.Bool(l > r), nil
	case types.GREATER_EQUAL:
		return types.Bool(l >= r), nil
	case types.LESS:
		return types.Bool(l < r), nil
	case types.LESS_EQUAL:
		return types.Bool(l <= r), nil
	}

	panic(fmt.Sprintf("unhandled binary operator %s", e.Operator.Kind))
}
