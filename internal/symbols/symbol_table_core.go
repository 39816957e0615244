package symbols

import (
	"sort"

	"github.com/funvibe/tntc/internal/ast"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in operators
	ScopeModule                   // Definitions of one module
	ScopeLambda                   // Lambda and operator parameters
	ScopeLet                      // A let-bound definition
)

const (
	ConstSymbol SymbolKind = iota
	VarSymbol
	OperatorSymbol
	AssumeSymbol
	ParamSymbol
	TypeSymbol
	ModuleSymbol
	BuiltinSymbol
)

var kindNames = [...]string{
	ConstSymbol:    "const",
	VarSymbol:      "var",
	OperatorSymbol: "def",
	AssumeSymbol:   "assume",
	ParamSymbol:    "param",
	TypeSymbol:     "type",
	ModuleSymbol:   "module",
	BuiltinSymbol:  "builtin",
}

func (k SymbolKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k SymbolKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type Symbol struct {
	Name string     `json:"name"`
	Kind SymbolKind `json:"kind"`
	// DefinitionID is the node that introduced the symbol, 0 for builtins.
	DefinitionID ast.ID `json:"reference,omitempty"`
	// OriginModule is set for names brought in by an import.
	OriginModule string `json:"origin,omitempty"`
	// Members is the scope of a ModuleSymbol.
	Members *SymbolTable `json:"-"`
}

// SymbolTable is one frame of names: values and types live in separate
// namespaces, as in `type T` next to `val T`.
type SymbolTable struct {
	store     map[string]Symbol
	types     map[string]Symbol
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store: make(map[string]Symbol),
		types: make(map[string]Symbol),
	}
}

func NewScopedSymbolTable(scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.scopeType = scopeType
	return st
}

func (s *SymbolTable) ScopeType() ScopeType { return s.scopeType }

// All returns the value symbols of this frame sorted by name.
func (s *SymbolTable) All() []Symbol {
	return sortedSymbols(s.store)
}

// AllTypes returns the type symbols of this frame sorted by name.
func (s *SymbolTable) AllTypes() []Symbol {
	return sortedSymbols(s.types)
}

func sortedSymbols(m map[string]Symbol) []Symbol {
	out := make([]Symbol, 0, len(m))
	for _, sym := range m {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
