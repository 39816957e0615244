package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node before its children. If f returns false the children of
// that node are skipped. Record fields have no node of their own; their
// types are visited directly.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Module:
		for _, d := range n.Defs {
			Inspect(d, f)
		}
	case *ModuleDef:
		Inspect(n.Module, f)
	case *OpDef:
		if n.Type != nil {
			Inspect(n.Type, f)
		}
		Inspect(n.Expr, f)
	case *ConstDef:
		Inspect(n.Type, f)
	case *VarDef:
		Inspect(n.Type, f)
	case *AssumeDef:
		Inspect(n.Assumption, f)
	case *TypeDef:
		if n.Type != nil {
			Inspect(n.Type, f)
		}
	case *App:
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *Lambda:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		Inspect(n.Expr, f)
	case *Let:
		Inspect(n.OpDef, f)
		Inspect(n.Expr, f)
	case *SetType:
		Inspect(n.Elem, f)
	case *SeqType:
		Inspect(n.Elem, f)
	case *FunType:
		Inspect(n.Arg, f)
		Inspect(n.Res, f)
	case *OperType:
		for _, a := range n.Args {
			Inspect(a, f)
		}
		Inspect(n.Res, f)
	case *TupleType:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
	case *RecordType:
		for _, fld := range n.Fields {
			Inspect(fld.Type, f)
		}
	case *UnionType:
		for _, r := range n.Records {
			Inspect(r, f)
		}
	}
}

// IDs returns the identifiers of every node under root.
func IDs(root Node) []ID {
	var ids []ID
	Inspect(root, func(n Node) bool {
		ids = append(ids, n.NodeID())
		return true
	})
	return ids
}
