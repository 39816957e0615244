package analyzer

import (
	"fmt"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/symbols"
)

// Analyzer resolves the names and types of a parsed module.
//
// Definitions are visited in source order with a stack of scopes. A value
// becomes visible once its own definition has been resolved, so neither
// recursion nor forward references resolve. Types are an exception: all
// type declarations of a module are visible from its first definition.
type Analyzer struct {
	sm     *srcmap.SourceMap
	scopes *symbols.ScopeStack

	// Names declared anywhere in the tree, to tell a name that exists but
	// is not visible from one that does not exist at all.
	declared map[string]bool

	// ResolutionMap maps every resolved reference (names, applications,
	// type constants, imports) to its definition.
	ResolutionMap map[ast.ID]symbols.Symbol

	errors diagnostics.Errors
}

// New creates an Analyzer that locates its errors through sm.
func New(sm *srcmap.SourceMap) *Analyzer {
	return &Analyzer{
		sm:            sm,
		scopes:        symbols.NewScopeStack(),
		declared:      make(map[string]bool),
		ResolutionMap: make(map[ast.ID]symbols.Symbol),
	}
}

// Analyze resolves mod and returns every error found, ordered by position.
func (a *Analyzer) Analyze(mod *ast.Module) diagnostics.Errors {
	collectDeclared(mod, a.declared)
	a.analyzeModule(mod)
	a.errors.Sort()
	return a.errors
}

// Resolve is the one-shot form of New(sm).Analyze(mod).
func Resolve(mod *ast.Module, sm *srcmap.SourceMap) (map[ast.ID]symbols.Symbol, diagnostics.Errors) {
	a := New(sm)
	errs := a.Analyze(mod)
	return a.ResolutionMap, errs
}

func (a *Analyzer) addError(code diagnostics.ErrorCode, ref ast.ID, format string, args ...any) {
	loc, _ := a.sm.Lookup(ref)
	a.errors = append(a.errors, diagnostics.NewAnalyzerError(code, ref, loc, fmt.Sprintf(format, args...)))
}

// resolveValue looks name up for the reference ref.
func (a *Analyzer) resolveValue(name string, ref ast.ID) (symbols.Symbol, bool) {
	if sym, ok := a.scopes.Resolve(name); ok {
		a.ResolutionMap[ref] = sym
		return sym, true
	}
	if a.declared[name] {
		a.addError(diagnostics.ErrA002, ref, "name '%s' is not in scope here", name)
	} else {
		a.addError(diagnostics.ErrA001, ref, "couldn't resolve name '%s'", name)
	}
	return symbols.Symbol{}, false
}

// define adds sym to the innermost frame, reporting a clash with a name
// already there.
func (a *Analyzer) define(sym symbols.Symbol, ref ast.ID) {
	if prev, ok := a.scopes.Top().Define(sym); !ok {
		a.addError(diagnostics.ErrA004, ref, "conflicting definitions for '%s' (%s, %s)",
			sym.Name, describeSymbol(prev), describeSymbol(sym))
	}
}

func (a *Analyzer) defineType(sym symbols.Symbol, ref ast.ID) {
	if prev, ok := a.scopes.Top().DefineType(sym); !ok {
		a.addError(diagnostics.ErrA004, ref, "conflicting definitions for type '%s' (%s, %s)",
			sym.Name, describeSymbol(prev), describeSymbol(sym))
	}
}

func describeSymbol(sym symbols.Symbol) string {
	switch {
	case sym.OriginModule != "":
		return fmt.Sprintf("imported from '%s'", sym.OriginModule)
	case sym.DefinitionID != 0:
		return fmt.Sprintf("%s with id %s", sym.Kind, sym.DefinitionID)
	}
	return "a builtin"
}
