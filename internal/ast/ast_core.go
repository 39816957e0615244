package ast

import (
	"encoding/json"
	"strconv"
)

// ID identifies a syntactic node within one parse. IDs are assigned by the
// parser starting at 1 and are the join key into the source map. IDs are
// dense within a parse, so a fixed 64 bits cannot run out before memory does.
type ID uint64

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Node is the base interface for all AST nodes.
type Node interface {
	NodeID() ID
}

// Def is a module-level (or let-bound) definition.
type Def interface {
	Node
	DefName() string
	defNode()
}

// Module is the root node of every AST our parser produces.
type Module struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Defs []Def  `json:"defs"`
}

func (m *Module) NodeID() ID { return m.ID }

// OpQualifier tells what kind of operator a definition introduces.
type OpQualifier int

const (
	QualVal OpQualifier = iota
	QualDef
	QualPureVal
	QualPureDef
	QualAction
	QualTemporal
	QualNondet
)

var qualifierNames = [...]string{
	QualVal:      "val",
	QualDef:      "def",
	QualPureVal:  "pureval",
	QualPureDef:  "puredef",
	QualAction:   "action",
	QualTemporal: "temporal",
	QualNondet:   "nondet",
}

func (q OpQualifier) String() string {
	if int(q) < len(qualifierNames) {
		return qualifierNames[q]
	}
	return "qualifier(" + strconv.Itoa(int(q)) + ")"
}

func (q OpQualifier) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// Keyword returns the source spelling of the qualifier.
func (q OpQualifier) Keyword() string {
	switch q {
	case QualPureVal:
		return "pure val"
	case QualPureDef:
		return "pure def"
	}
	return q.String()
}

// OpDef defines an operator: val, def, action, temporal, nondet and their pure variants.
// Parameters, if any, are carried by a Lambda in Expr.
type OpDef struct {
	ID        ID          `json:"id"`
	Name      string      `json:"name"`
	Qualifier OpQualifier `json:"qualifier"`
	Type      Type        `json:"type,omitempty"`
	Expr      Expr        `json:"expr"`
}

func (d *OpDef) NodeID() ID      { return d.ID }
func (d *OpDef) DefName() string { return d.Name }
func (d *OpDef) defNode()        {}
func (d *OpDef) MarshalJSON() ([]byte, error) {
	type alias OpDef
	return withKind("def", (*alias)(d))
}

// ConstDef declares a constant: const N: int
type ConstDef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func (d *ConstDef) NodeID() ID      { return d.ID }
func (d *ConstDef) DefName() string { return d.Name }
func (d *ConstDef) defNode()        {}
func (d *ConstDef) MarshalJSON() ([]byte, error) {
	type alias ConstDef
	return withKind("const", (*alias)(d))
}

// VarDef declares a state variable: var x: int
type VarDef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func (d *VarDef) NodeID() ID      { return d.ID }
func (d *VarDef) DefName() string { return d.Name }
func (d *VarDef) defNode()        {}
func (d *VarDef) MarshalJSON() ([]byte, error) {
	type alias VarDef
	return withKind("var", (*alias)(d))
}

// AssumeDef states an assumption. Name is "_" for anonymous assumptions.
type AssumeDef struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Assumption Expr   `json:"assumption"`
}

func (d *AssumeDef) NodeID() ID      { return d.ID }
func (d *AssumeDef) DefName() string { return d.Name }
func (d *AssumeDef) defNode()        {}
func (d *AssumeDef) MarshalJSON() ([]byte, error) {
	type alias AssumeDef
	return withKind("assume", (*alias)(d))
}

// TypeDef declares a type alias, or an uninterpreted type when Type is nil.
type TypeDef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Type Type   `json:"type,omitempty"`
}

func (d *TypeDef) NodeID() ID      { return d.ID }
func (d *TypeDef) DefName() string { return d.Name }
func (d *TypeDef) defNode()        {}
func (d *TypeDef) MarshalJSON() ([]byte, error) {
	type alias TypeDef
	return withKind("typedef", (*alias)(d))
}

// ImportDef imports definitions of a nested module.
// import M.*  -> Path "M", Name "*"
// import M.x  -> Path "M", Name "x"
type ImportDef struct {
	ID   ID     `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`
}

func (d *ImportDef) NodeID() ID      { return d.ID }
func (d *ImportDef) DefName() string { return d.Name }
func (d *ImportDef) defNode()        {}
func (d *ImportDef) MarshalJSON() ([]byte, error) {
	type alias ImportDef
	return withKind("import", (*alias)(d))
}

// IsWildcard reports whether the import brings every definition of Path.
func (d *ImportDef) IsWildcard() bool { return d.Name == "*" }

// ModuleDef nests a module inside another one.
type ModuleDef struct {
	ID     ID      `json:"id"`
	Module *Module `json:"module"`
}

func (d *ModuleDef) NodeID() ID      { return d.ID }
func (d *ModuleDef) DefName() string { return d.Module.Name }
func (d *ModuleDef) defNode()        {}
func (d *ModuleDef) MarshalJSON() ([]byte, error) {
	type alias ModuleDef
	return withKind("module", (*alias)(d))
}

// withKind serializes v, which must encode as a JSON object, with a
// leading "kind" discriminator.
func withKind(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := `{"kind":` + strconv.Quote(kind)
	if len(body) <= 2 {
		return []byte(head + "}"), nil
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, ',')
	return append(out, body[1:]...), nil
}
