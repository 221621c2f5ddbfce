package ast

import (
	"fmt"
	"strings"

	"github.com/pontaoski/minilang/types"
)

func literalString(v types.Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case types.String:
		return fmt.Sprintf("%q", string(val))
	}
	return v.String()
}

func parenthesize(name string, parts ...string) string {
	return "(" + strings.Join(append([]string{name}, parts...), " ") + ")"
}

func exprString(e Expr) string {
	if e == nil {
		return "nil"
	}
	return e.(fmt.Stringer).String()
}

func stmtString(s Stmt) string {
	if s == nil {
		return "nil"
	}
	return s.(fmt.Stringer).String()
}

func (v Assign) String() string {
	return parenthesize("=", v.Name.Lexeme, exprString(v.Value))
}

func (v Binary) String() string {
	return parenthesize(v.Operator.Lexeme, exprString(v.Left), exprString(v.Right))
}

func (v Call) String() string {
	parts := []string{exprString(v.Callee)}
	for _, arg := range v.Arguments {
		parts = append(parts, exprString(arg))
	}
	return parenthesize("call", parts...)
}

func (v Group) String() string {
	return parenthesize("group", exprString(v.Inner))
}

func (v Literal) String() string {
	return literalString(v.Value)
}

func (v Logical) String() string {
	return parenthesize(v.Operator.Lexeme, exprString(v.Left), exprString(v.Right))
}

func (v Unary) String() string {
	return parenthesize(v.Operator.Lexeme, exprString(v.Right))
}

func (v Variable) String() string {
	return v.Name.Lexeme
}

func (v Block) String() string {
	var parts []string
	for _, stmt := range v.Statements {
		parts = append(parts, stmtString(stmt))
	}
	return parenthesize("block", parts...)
}

func (v ExprStmt) String() string {
	return parenthesize(";", exprString(v.Expr))
}

func (v Function) String() string {
	var params []string
	for _, param := range v.Params {
		params = append(params, param.Lexeme)
	}
	body := Block{Statements: v.Body}
	return parenthesize("fun", v.Name.Lexeme, "("+strings.Join(params, " ")+")", body.String())
}

func (v If) String() string {
	if v.Else == nil {
		return parenthesize("if", exprString(v.Condition), stmtString(v.Then))
	}
	return parenthesize("if", exprString(v.Condition), stmtString(v.Then), stmtString(v.Else))
}

func (v Print) String() string {
	return parenthesize("print", exprString(v.Expr))
}

func (v Var) String() string {
	if v.Initializer == nil {
		return parenthesize("var", v.Name.Lexeme)
	}
	return parenthesize("var", v.Name.Lexeme, exprString(v.Initializer))
}

func (v While) String() string {
	return parenthesize("while", exprString(v.Condition), stmtString(v.Body))
}

func (v Return) String() string {
	if v.Value == nil {
		return parenthesize("return")
	}
	return parenthesize("return", exprString(v.Value))
}

// String renders one statement per line.
func (p Program) String() string {
	var lines []string
	for _, stmt := range p {
		lines = append(lines, stmtString(stmt))
	}
	return strings.Join(lines, "\n")
}
