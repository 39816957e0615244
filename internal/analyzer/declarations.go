package analyzer

import (
	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/symbols"
)

// analyzeModule resolves the definitions of mod in a frame of its own and
// returns that frame.
func (a *Analyzer) analyzeModule(mod *ast.Module) *symbols.SymbolTable {
	frame := a.scopes.PushNew(symbols.ScopeModule)
	defer a.scopes.Pop()

	for _, def := range mod.Defs {
		if td, ok := def.(*ast.TypeDef); ok {
			a.defineType(symbols.Symbol{Name: td.Name, Kind: symbols.TypeSymbol, DefinitionID: td.ID}, td.ID)
		}
	}
	for _, def := range mod.Defs {
		a.analyzeDef(def)
	}
	return frame
}

func (a *Analyzer) analyzeDef(def ast.Def) {
	switch d := def.(type) {
	case *ast.ConstDef:
		a.resolveType(d.Type)
		a.define(symbols.Symbol{Name: d.Name, Kind: symbols.ConstSymbol, DefinitionID: d.ID}, d.ID)
	case *ast.VarDef:
		a.resolveType(d.Type)
		a.define(symbols.Symbol{Name: d.Name, Kind: symbols.VarSymbol, DefinitionID: d.ID}, d.ID)
	case *ast.TypeDef:
		if d.Type != nil {
			a.resolveType(d.Type)
		}
	case *ast.AssumeDef:
		a.resolveExpr(d.Assumption)
		if d.Name != "_" {
			a.define(symbols.Symbol{Name: d.Name, Kind: symbols.AssumeSymbol, DefinitionID: d.ID}, d.ID)
		}
	case *ast.OpDef:
		a.analyzeOpDef(d)
		a.define(symbols.Symbol{Name: d.Name, Kind: symbols.OperatorSymbol, DefinitionID: d.ID}, d.ID)
	case *ast.ModuleDef:
		members := a.analyzeModule(d.Module)
		a.define(symbols.Symbol{
			Name:         d.Module.Name,
			Kind:         symbols.ModuleSymbol,
			DefinitionID: d.ID,
			Members:      members,
		}, d.ID)
	case *ast.ImportDef:
		a.analyzeImport(d)
	}
}

// analyzeOpDef resolves the signature and body of an operator. The name
// itself is left to the caller: a module registers it in its own frame, a
// let in a new one.
func (a *Analyzer) analyzeOpDef(d *ast.OpDef) {
	if d.Type != nil {
		a.resolveType(d.Type)
	}
	a.resolveExpr(d.Expr)
}

// analyzeImport brings the definitions of a previously defined nested
// module into the current frame.
func (a *Analyzer) analyzeImport(d *ast.ImportDef) {
	mod, ok := a.scopes.Resolve(d.Path)
	if !ok || mod.Kind != symbols.ModuleSymbol {
		if a.declared[d.Path] {
			a.addError(diagnostics.ErrA002, d.ID, "module '%s' is not in scope here", d.Path)
		} else {
			a.addError(diagnostics.ErrA001, d.ID, "couldn't resolve module '%s'", d.Path)
		}
		return
	}
	a.ResolutionMap[d.ID] = mod

	if d.IsWildcard() {
		for _, sym := range mod.Members.All() {
			a.define(imported(sym, d.Path), d.ID)
		}
		for _, sym := range mod.Members.AllTypes() {
			a.defineType(imported(sym, d.Path), d.ID)
		}
		return
	}

	found := false
	if sym, ok := mod.Members.Find(d.Name); ok {
		a.define(imported(sym, d.Path), d.ID)
		found = true
	}
	if sym, ok := mod.Members.FindType(d.Name); ok {
		a.defineType(imported(sym, d.Path), d.ID)
		found = true
	}
	if !found {
		a.addError(diagnostics.ErrA001, d.ID, "module '%s' has no definition '%s'", d.Path, d.Name)
	}
}

func imported(sym symbols.Symbol, from string) symbols.Symbol {
	if sym.OriginModule == "" {
		sym.OriginModule = from
	}
	return sym
}
