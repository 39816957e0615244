package ast

import "unicode"

// Type is a Node that represents a type annotation.
type Type interface {
	Node
	typeNode()
}

type BoolType struct {
	ID ID `json:"id"`
}

func (t *BoolType) NodeID() ID { return t.ID }
func (t *BoolType) typeNode()  {}
func (t *BoolType) MarshalJSON() ([]byte, error) {
	type alias BoolType
	return withKind("bool", (*alias)(t))
}

type IntType struct {
	ID ID `json:"id"`
}

func (t *IntType) NodeID() ID { return t.ID }
func (t *IntType) typeNode()  {}
func (t *IntType) MarshalJSON() ([]byte, error) {
	type alias IntType
	return withKind("int", (*alias)(t))
}

type StrType struct {
	ID ID `json:"id"`
}

func (t *StrType) NodeID() ID { return t.ID }
func (t *StrType) typeNode()  {}
func (t *StrType) MarshalJSON() ([]byte, error) {
	type alias StrType
	return withKind("str", (*alias)(t))
}

// ConstType names a declared type: an alias or an uninterpreted type.
type ConstType struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (t *ConstType) NodeID() ID { return t.ID }
func (t *ConstType) typeNode()  {}
func (t *ConstType) MarshalJSON() ([]byte, error) {
	type alias ConstType
	return withKind("const", (*alias)(t))
}

// VarType is a type variable such as a in def id(x): (a) => a
type VarType struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (t *VarType) NodeID() ID { return t.ID }
func (t *VarType) typeNode()  {}
func (t *VarType) MarshalJSON() ([]byte, error) {
	type alias VarType
	return withKind("var", (*alias)(t))
}

type SetType struct {
	ID   ID   `json:"id"`
	Elem Type `json:"elem"`
}

func (t *SetType) NodeID() ID { return t.ID }
func (t *SetType) typeNode()  {}
func (t *SetType) MarshalJSON() ([]byte, error) {
	type alias SetType
	return withKind("set", (*alias)(t))
}

type SeqType struct {
	ID   ID   `json:"id"`
	Elem Type `json:"elem"`
}

func (t *SeqType) NodeID() ID { return t.ID }
func (t *SeqType) typeNode()  {}
func (t *SeqType) MarshalJSON() ([]byte, error) {
	type alias SeqType
	return withKind("seq", (*alias)(t))
}

// FunType is a function (map) type: a -> b
type FunType struct {
	ID  ID   `json:"id"`
	Arg Type `json:"arg"`
	Res Type `json:"res"`
}

func (t *FunType) NodeID() ID { return t.ID }
func (t *FunType) typeNode()  {}
func (t *FunType) MarshalJSON() ([]byte, error) {
	type alias FunType
	return withKind("fun", (*alias)(t))
}

// OperType is an operator signature: (a, b) => c
type OperType struct {
	ID   ID     `json:"id"`
	Args []Type `json:"args"`
	Res  Type   `json:"res"`
}

func (t *OperType) NodeID() ID { return t.ID }
func (t *OperType) typeNode()  {}
func (t *OperType) MarshalJSON() ([]byte, error) {
	type alias OperType
	return withKind("oper", (*alias)(t))
}

type TupleType struct {
	ID    ID     `json:"id"`
	Elems []Type `json:"elems"`
}

func (t *TupleType) NodeID() ID { return t.ID }
func (t *TupleType) typeNode()  {}
func (t *TupleType) MarshalJSON() ([]byte, error) {
	type alias TupleType
	return withKind("tuple", (*alias)(t))
}

// Field is a record field. Fields carry no ID of their own.
type Field struct {
	Name string `json:"fieldName"`
	Type Type   `json:"fieldType"`
}

type RecordType struct {
	ID     ID       `json:"id"`
	Fields []*Field `json:"fields"`
}

func (t *RecordType) NodeID() ID { return t.ID }
func (t *RecordType) typeNode()  {}
func (t *RecordType) MarshalJSON() ([]byte, error) {
	type alias RecordType
	return withKind("record", (*alias)(t))
}

// StrLitType is a string literal in type position. It is only meaningful
// as the discriminator of a disjoint union branch.
type StrLitType struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

func (t *StrLitType) NodeID() ID { return t.ID }
func (t *StrLitType) typeNode()  {}
func (t *StrLitType) MarshalJSON() ([]byte, error) {
	type alias StrLitType
	return withKind("strlit", (*alias)(t))
}

// UnionType is a disjoint union of records:
//
//	| { tag: "a", f: int } | { tag: "b" }
//
// The shape (common tag field, distinct tag values) is validated in phase 2.
type UnionType struct {
	ID      ID            `json:"id"`
	Records []*RecordType `json:"records"`
}

func (t *UnionType) NodeID() ID { return t.ID }
func (t *UnionType) typeNode()  {}
func (t *UnionType) MarshalJSON() ([]byte, error) {
	type alias UnionType
	return withKind("union", (*alias)(t))
}

// Tag returns the discriminator field name, or "" if the first branch
// does not start with a string literal field.
func (t *UnionType) Tag() string {
	if len(t.Records) == 0 || len(t.Records[0].Fields) == 0 {
		return ""
	}
	f := t.Records[0].Fields[0]
	if _, ok := f.Type.(*StrLitType); !ok {
		return ""
	}
	return f.Name
}

// IsTypeConstName reports whether a type identifier denotes a declared
// type (uppercase initial) rather than a type variable.
func IsTypeConstName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
