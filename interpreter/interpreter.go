// Package interpreter walks a parsed program and executes it against a chain
// of environments. Print output goes to the writer the interpreter was built
// with; nothing else is observable from outside.
package interpreter

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/environment"
	"github.com/pontaoski/minilang/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "interpreter")

type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	out     io.Writer
}

// New returns an interpreter that writes one line per print statement to out.
func New(out io.Writer) *Interpreter {
	globals := environment.New(nil)
	return &Interpreter{
		globals: globals,
		env:     globals,
		out:     out,
	}
}

func (i *Interpreter) Globals() *environment.Environment {
	return i.globals
}

// Interpret runs the program in order. The first runtime error stops it.
func (i *Interpreter) Interpret(program ast.Program) error {
	for _, stmt := range program {
		if err := i.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) Execute(stmt ast.Stmt) error {
	plog.Tracef("execute %s", stmt)

	switch s := stmt.(type) {
	case ast.ExprStmt:
		_, err := i.Evaluate(s.Expr)
		return err
	case ast.Print:
		value, err := i.Evaluate(s.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.out, value.String())
		return err
	case ast.Var:
		var value types.Value = types.Nil{}
		if s.Initializer != nil {
			v, err := i.Evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		return i.env.Define(s.Name, value)
	case ast.Block:
		return i.executeBlock(s.Statements, environment.New(i.env))
	case ast.If:
		cond, err := i.Evaluate(s.Condition)
		if err != nil {
			return err
		}
		if types.Truthy(cond) {
			return i.Execute(s.Then)
		}
		if s.Else != nil {
			return i.Execute(s.Else)
		}
		return nil
	case ast.While:
		for {
			cond, err := i.Evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !types.Truthy(cond) {
				return nil
			}
			if err := i.Execute(s.Body); err != nil {
				return err
			}
		}
	case ast.Function, ast.Return:
		// declarations are accepted but functions cannot be called yet
		return nil
	}

	panic(fmt.Sprintf("unhandled statement %T", stmt))
}

// executeBlock runs stmts in env and always restores the enclosing scope.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	plog.Debugf("enter block at depth %d", env.Depth())
	for _, stmt := range stmts {
		if err := i.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}
