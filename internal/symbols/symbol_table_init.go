package symbols

import (
	"sync"

	"github.com/funvibe/tntc/internal/config"
)

// Singleton prelude table containing all built-in symbols
var (
	preludeTable *SymbolTable
	preludeOnce  sync.Once
)

// GetPrelude returns the singleton prelude SymbolTable containing all built-in symbols.
// It is never written to after initialization.
func GetPrelude() *SymbolTable {
	preludeOnce.Do(func() {
		preludeTable = NewScopedSymbolTable(ScopePrelude)
		preludeTable.InitBuiltins()
	})
	return preludeTable
}

func (st *SymbolTable) InitBuiltins() {
	for _, name := range config.BuiltinOperators {
		st.Define(Symbol{Name: name, Kind: BuiltinSymbol})
	}
	for _, name := range config.Opcodes {
		st.Define(Symbol{Name: name, Kind: BuiltinSymbol})
	}
}
