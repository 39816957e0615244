package srcmap

import "github.com/funvibe/tntc/internal/ast"

// Compact returns a copy of m without redundant entries. An entry is
// redundant when its node has exactly one child and both cover the same
// range, as a ModuleDef does for its Module or a one-branch union for its
// record. The removed identifier is folded into its nearest non-redundant
// descendant, so Lookup keeps answering for it.
//
// Compact never modifies m, and Compact(Compact(m)) equals Compact(m).
func Compact(m *SourceMap) *SourceMap {
	out := m.clone()
	children := m.children()

	redundant := make(map[ast.ID]bool)
	for id, loc := range m.locs {
		cs := children[id]
		if len(cs) != 1 {
			continue
		}
		if childLoc, ok := m.Lookup(cs[0]); ok && childLoc == loc {
			redundant[id] = true
		}
	}
	if len(redundant) == 0 {
		return out
	}

	var rep func(ast.ID) ast.ID
	rep = func(id ast.ID) ast.ID {
		for redundant[id] {
			id = children[id][0]
		}
		return id
	}

	for id := range redundant {
		delete(out.locs, id)
		out.merged[id] = rep(id)
	}
	// Earlier folds that pointed at a node removed now.
	for from, to := range out.merged {
		if redundant[to] {
			out.merged[from] = rep(to)
		}
	}

	// Re-link children of removed nodes to their closest kept ancestor.
	for c, p := range m.parent {
		if redundant[c] {
			delete(out.parent, c)
			continue
		}
		for redundant[p] {
			next, ok := m.parent[p]
			if !ok {
				break
			}
			p = next
		}
		if redundant[p] {
			delete(out.parent, c)
		} else {
			out.parent[c] = p
		}
	}
	return out
}
