// Package symbols holds the scopes of name resolution.
//
//   - symbol_table_core.go: Symbol, SymbolKind and the SymbolTable frame
//   - symbol_table_init.go: the prelude of builtin operators and opcodes
//   - symbol_table_operations.go: defining names and the ScopeStack lookups
package symbols
