package analyzer

import (
	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/symbols"
)

func (a *Analyzer) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Name:
		a.resolveValue(n.Name, n.ID)
	case *ast.BoolLit, *ast.IntLit, *ast.StrLit:
	case *ast.App:
		// The opcode is a reference like any other name: a builtin, a
		// definition or a parameter.
		a.resolveValue(n.Opcode, n.ID)
		for _, arg := range n.Args {
			a.resolveExpr(arg)
		}
	case *ast.Lambda:
		a.resolveLambda(n)
	case *ast.Let:
		a.resolveLet(n)
	}
}

func (a *Analyzer) resolveLambda(l *ast.Lambda) {
	if dup, ok := duplicateParam(l.Params); ok {
		a.addError(diagnostics.ErrA005, dup.ID, "parameter '%s' appears more than once", dup.Name)
	}
	frame := a.scopes.PushNew(symbols.ScopeLambda)
	for _, p := range l.Params {
		if !p.IsHole() {
			frame.Define(symbols.Symbol{Name: p.Name, Kind: symbols.ParamSymbol, DefinitionID: p.ID})
		}
	}
	a.resolveExpr(l.Expr)
	a.scopes.Pop()
}

// resolveLet resolves the bound operator in the enclosing scope, then the
// body in a frame where the operator is visible. The frame is gone once
// the body is done.
func (a *Analyzer) resolveLet(l *ast.Let) {
	a.analyzeOpDef(l.OpDef)
	frame := a.scopes.PushNew(symbols.ScopeLet)
	frame.Define(symbols.Symbol{Name: l.OpDef.Name, Kind: symbols.OperatorSymbol, DefinitionID: l.OpDef.ID})
	a.resolveExpr(l.Expr)
	a.scopes.Pop()
}
