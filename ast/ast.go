package ast

import "github.com/pontaoski/minilang/types"

type Expr interface {
	is_Expr()
}

type Assign struct {
	Name  types.Token
	Value Expr
}

func (v Assign) is_Expr() {}

type Binary struct {
	Left     Expr
	Operator types.Token
	Right    Expr
}

func (v Binary) is_Expr() {}

type Call struct {
	Callee    Expr
	Paren     types.Token
	Arguments []Expr
}

func (v Call) is_Expr() {}

type Group struct {
	Inner Expr
}

func (v Group) is_Expr() {}

type Literal struct {
	Value types.Value
}

func (v Literal) is_Expr() {}

type Logical struct {
	Left     Expr
	Operator types.Token
	Right    Expr
}

func (v Logical) is_Expr() {}

type Unary struct {
	Operator types.Token
	Right    Expr
}

func (v Unary) is_Expr() {}

type Variable struct {
	Name types.Token
}

func (v Variable) is_Expr() {}

type Stmt interface {
	is_Stmt()
}

type Block struct {
	Statements []Stmt
}

func (v Block) is_Stmt() {}

type ExprStmt struct {
	Expr Expr
}

func (v ExprStmt) is_Stmt() {}

type Function struct {
	Name   types.Token
	Params []types.Token
	Body   []Stmt
}

func (v Function) is_Stmt() {}

// If has a nil Else when there is no else branch.
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (v If) is_Stmt() {}

type Print struct {
	Expr Expr
}

func (v Print) is_Stmt() {}

type Var struct {
	Name        types.Token
	Initializer Expr
}

func (v Var) is_Stmt() {}

type While struct {
	Condition Expr
	Body      Stmt
}

func (v While) is_Stmt() {}

type Return struct {
	Keyword types.Token
	Value   Expr
}

func (v Return) is_Stmt() {}

// Program is the statement sequence produced by the parser.
type Program []Stmt
