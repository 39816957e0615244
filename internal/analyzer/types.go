package analyzer

import (
	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
)

func (a *Analyzer) resolveType(t ast.Type) {
	switch n := t.(type) {
	case *ast.ConstType:
		if sym, ok := a.scopes.ResolveType(n.Name); ok {
			a.ResolutionMap[n.ID] = sym
			return
		}
		a.addError(diagnostics.ErrA003, n.ID, "couldn't resolve type '%s'", n.Name)
	case *ast.BoolType, *ast.IntType, *ast.StrType, *ast.VarType:
	case *ast.SetType:
		a.resolveType(n.Elem)
	case *ast.SeqType:
		a.resolveType(n.Elem)
	case *ast.FunType:
		a.resolveType(n.Arg)
		a.resolveType(n.Res)
	case *ast.OperType:
		for _, arg := range n.Args {
			a.resolveType(arg)
		}
		a.resolveType(n.Res)
	case *ast.TupleType:
		for _, e := range n.Elems {
			a.resolveType(e)
		}
	case *ast.RecordType:
		a.resolveFields(n.Fields)
	case *ast.StrLitType:
		a.addError(diagnostics.ErrA005, n.ID,
			"string literal type \"%s\" is only allowed as the tag of a disjoint union", n.Value)
	case *ast.UnionType:
		a.resolveUnion(n)
	}
}

func (a *Analyzer) resolveFields(fields []*ast.Field) {
	for _, f := range fields {
		a.resolveType(f.Type)
	}
}

// resolveUnion checks the shape of a disjoint union: every branch starts
// with a string literal field of the same name, and no two branches share
// a tag value. A malformed union is reported once; its other field types
// are still resolved.
func (a *Analyzer) resolveUnion(u *ast.UnionType) {
	if !a.checkUnionShape(u) {
		for _, r := range u.Records {
			for _, f := range r.Fields {
				if _, isTag := f.Type.(*ast.StrLitType); !isTag {
					a.resolveType(f.Type)
				}
			}
		}
		return
	}
	for _, r := range u.Records {
		a.resolveFields(r.Fields[1:])
	}
}

func (a *Analyzer) checkUnionShape(u *ast.UnionType) bool {
	tag := u.Tag()
	if tag == "" {
		a.addError(diagnostics.ErrA005, u.ID,
			"malformed disjoint union: every branch must start with a string literal tag field")
		return false
	}
	seen := make(map[string]bool, len(u.Records))
	for _, r := range u.Records {
		if len(r.Fields) == 0 || r.Fields[0].Name != tag {
			a.addError(diagnostics.ErrA005, r.ID,
				"malformed disjoint union: every branch must start with the tag field '%s'", tag)
			return false
		}
		lit, ok := r.Fields[0].Type.(*ast.StrLitType)
		if !ok {
			a.addError(diagnostics.ErrA005, r.ID,
				"malformed disjoint union: field '%s' must be a string literal", tag)
			return false
		}
		if seen[lit.Value] {
			a.addError(diagnostics.ErrA005, lit.ID,
				"malformed disjoint union: tag \"%s\" is used by more than one branch", lit.Value)
			return false
		}
		seen[lit.Value] = true
	}
	return true
}
