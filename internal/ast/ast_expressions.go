package ast

import "math/big"

// Expr is a Node that represents an expression.
type Expr interface {
	Node
	exprNode()
}

// Name references a value or operator by name.
type Name struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (e *Name) NodeID() ID { return e.ID }
func (e *Name) exprNode()  {}
func (e *Name) MarshalJSON() ([]byte, error) {
	type alias Name
	return withKind("name", (*alias)(e))
}

// BoolLit is true or false.
type BoolLit struct {
	ID    ID   `json:"id"`
	Value bool `json:"value"`
}

func (e *BoolLit) NodeID() ID { return e.ID }
func (e *BoolLit) exprNode()  {}
func (e *BoolLit) MarshalJSON() ([]byte, error) {
	type alias BoolLit
	return withKind("bool", (*alias)(e))
}

// IntLit is an arbitrary precision integer literal.
type IntLit struct {
	ID    ID       `json:"id"`
	Value *big.Int `json:"value"`
}

func (e *IntLit) NodeID() ID { return e.ID }
func (e *IntLit) exprNode()  {}
func (e *IntLit) MarshalJSON() ([]byte, error) {
	type alias IntLit
	return withKind("int", (*alias)(e))
}

// StrLit is a string literal. Record field names are StrLits too.
type StrLit struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

func (e *StrLit) NodeID() ID { return e.ID }
func (e *StrLit) exprNode()  {}
func (e *StrLit) MarshalJSON() ([]byte, error) {
	type alias StrLit
	return withKind("str", (*alias)(e))
}

// App applies an operator to arguments. All infix and special forms are
// desugared into App with a builtin opcode (iadd, ite, Rec, ...).
type App struct {
	ID     ID     `json:"id"`
	Opcode string `json:"opcode"`
	Args   []Expr `json:"args"`
}

func (e *App) NodeID() ID { return e.ID }
func (e *App) exprNode()  {}
func (e *App) MarshalJSON() ([]byte, error) {
	type alias App
	return withKind("app", (*alias)(e))
}

// Param is a lambda or operator parameter. Name is "_" for a hole.
type Param struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (p *Param) NodeID() ID { return p.ID }

// IsHole reports whether the parameter binds nothing.
func (p *Param) IsHole() bool { return p.Name == "_" }

// Lambda is an anonymous operator: x -> e, (x, y) -> e
type Lambda struct {
	ID        ID          `json:"id"`
	Params    []*Param    `json:"params"`
	Qualifier OpQualifier `json:"qualifier"`
	Expr      Expr        `json:"expr"`
}

func (e *Lambda) NodeID() ID { return e.ID }
func (e *Lambda) exprNode()  {}
func (e *Lambda) MarshalJSON() ([]byte, error) {
	type alias Lambda
	return withKind("lambda", (*alias)(e))
}

// Let binds OpDef in the scope of Expr only.
// val x = 1 x + 1
type Let struct {
	ID    ID     `json:"id"`
	OpDef *OpDef `json:"opdef"`
	Expr  Expr   `json:"expr"`
}

func (e *Let) NodeID() ID { return e.ID }
func (e *Let) exprNode()  {}
func (e *Let) MarshalJSON() ([]byte, error) {
	type alias Let
	return withKind("let", (*alias)(e))
}
