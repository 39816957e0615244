// Package srcmap maps AST node identifiers to source locations.
package srcmap

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/funvibe/tntc/internal/ast"
)

// Pos is a 1-based line/column position.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (p Pos) Before(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Loc is a source range. End is inclusive.
type Loc struct {
	Source string `json:"source"`
	Start  Pos    `json:"start"`
	End    Pos    `json:"end"`
}

func (l Loc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Start.Line, l.Start.Col)
}

// SourceMap associates every identifier of one parse with a Loc.
//
// Besides the locations, it records the syntactic parent of each node and,
// after compaction, which identifiers were folded into which. Lookup follows
// folded identifiers, so a compacted map still answers for every identifier
// of the parse.
type SourceMap struct {
	locs   map[ast.ID]Loc
	parent map[ast.ID]ast.ID
	merged map[ast.ID]ast.ID
}

func New() *SourceMap {
	return &SourceMap{
		locs:   make(map[ast.ID]Loc),
		parent: make(map[ast.ID]ast.ID),
		merged: make(map[ast.ID]ast.ID),
	}
}

// Add records the location of id and marks it as the parent of children.
func (m *SourceMap) Add(id ast.ID, loc Loc, children ...ast.ID) {
	m.locs[id] = loc
	for _, c := range children {
		m.parent[c] = id
	}
}

// DeleteLeaf drops the entry of id, which must have no children.
func (m *SourceMap) DeleteLeaf(id ast.ID) {
	delete(m.locs, id)
	delete(m.parent, id)
}

// Lookup returns the location of id, following compaction.
func (m *SourceMap) Lookup(id ast.ID) (Loc, bool) {
	if to, ok := m.merged[id]; ok {
		id = to
	}
	loc, ok := m.locs[id]
	return loc, ok
}

// Has reports whether id has its own entry (not one inherited by compaction).
func (m *SourceMap) Has(id ast.ID) bool {
	_, ok := m.locs[id]
	return ok
}

// Parent returns the syntactic parent of id. The root has none.
func (m *SourceMap) Parent(id ast.ID) (ast.ID, bool) {
	p, ok := m.parent[id]
	return p, ok
}

// MergedInto returns the identifier whose entry stands for id after compaction.
func (m *SourceMap) MergedInto(id ast.ID) (ast.ID, bool) {
	to, ok := m.merged[id]
	return to, ok
}

// IDs returns the identifiers with their own entry, ascending.
func (m *SourceMap) IDs() []ast.ID {
	ids := make([]ast.ID, 0, len(m.locs))
	for id := range m.locs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *SourceMap) Len() int { return len(m.locs) }

func (m *SourceMap) children() map[ast.ID][]ast.ID {
	out := make(map[ast.ID][]ast.ID)
	for c, p := range m.parent {
		out[p] = append(out[p], c)
	}
	for p := range out {
		cs := out[p]
		sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	}
	return out
}

func (m *SourceMap) clone() *SourceMap {
	c := New()
	for k, v := range m.locs {
		c.locs[k] = v
	}
	for k, v := range m.parent {
		c.parent[k] = v
	}
	for k, v := range m.merged {
		c.merged[k] = v
	}
	return c
}

// MarshalJSON encodes the entries as an object keyed by decimal identifier.
func (m *SourceMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]Loc, len(m.locs))
	for id, loc := range m.locs {
		out[id.String()] = loc
	}
	return json.Marshal(out)
}

func (m *SourceMap) UnmarshalJSON(data []byte) error {
	var in map[string]Loc
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = *New()
	for k, loc := range in {
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return fmt.Errorf("source map: bad identifier %q", k)
		}
		m.locs[ast.ID(n)] = loc
	}
	return nil
}
