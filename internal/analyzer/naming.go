package analyzer

import (
	"github.com/funvibe/tntc/internal/ast"
)

// collectDeclared records every value name introduced anywhere under mod:
// definitions at any depth, let-bound operators, parameters and nested
// modules.
func collectDeclared(mod *ast.Module, into map[string]bool) {
	ast.Inspect(mod, func(n ast.Node) bool {
		switch d := n.(type) {
		case *ast.OpDef:
			into[d.Name] = true
		case *ast.ConstDef:
			into[d.Name] = true
		case *ast.VarDef:
			into[d.Name] = true
		case *ast.AssumeDef:
			if d.Name != "_" {
				into[d.Name] = true
			}
		case *ast.ModuleDef:
			into[d.Module.Name] = true
		case *ast.Param:
			if !d.IsHole() {
				into[d.Name] = true
			}
		}
		return true
	})
}

// duplicateParam returns the first parameter name used twice, ignoring holes.
func duplicateParam(params []*ast.Param) (*ast.Param, bool) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.IsHole() {
			continue
		}
		if seen[p.Name] {
			return p, true
		}
		seen[p.Name] = true
	}
	return nil, false
}
