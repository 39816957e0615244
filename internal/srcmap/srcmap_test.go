package srcmap

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/funvibe/tntc/internal/ast"
)

func loc(l1, c1, l2, c2 int) Loc {
	return Loc{Source: "mocked_path", Start: Pos{l1, c1}, End: Pos{l2, c2}}
}

// buildNested mirrors `module A { module B { val x = 1 } }`:
//
//	1 IntLit, 2 OpDef x, 3 Module B, 4 ModuleDef B, 5 Module A
func buildNested() *SourceMap {
	m := New()
	m.Add(1, loc(1, 31, 1, 31))
	m.Add(2, loc(1, 23, 1, 31), 1)
	m.Add(3, loc(1, 12, 1, 33), 2)
	m.Add(4, loc(1, 12, 1, 33), 3)
	m.Add(5, loc(1, 1, 1, 35), 4)
	return m
}

func TestCompactRemovesWrapper(t *testing.T) {
	m := buildNested()
	c := Compact(m)

	if c.Has(4) {
		t.Fatalf("expected wrapper 4 to be folded")
	}
	if got, want := c.IDs(), []ast.ID{1, 2, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if to, ok := c.MergedInto(4); !ok || to != 3 {
		t.Errorf("MergedInto(4) = %v, %v", to, ok)
	}
	l, ok := c.Lookup(4)
	if !ok || l != loc(1, 12, 1, 33) {
		t.Errorf("Lookup(4) = %v, %v", l, ok)
	}
	if p, _ := c.Parent(3); p != 5 {
		t.Errorf("Parent(3) = %v, want 5", p)
	}
	// input untouched
	if !m.Has(4) || m.Len() != 5 {
		t.Errorf("Compact modified its input")
	}
}

func TestDeleteLeaf(t *testing.T) {
	m := buildNested()
	m.Add(6, loc(1, 40, 1, 40))
	m.DeleteLeaf(6)
	if m.Has(6) || m.Len() != 5 {
		t.Fatalf("entry 6 still present: %v", m.IDs())
	}
	m.DeleteLeaf(1)
	if _, ok := m.Parent(1); ok {
		t.Error("parent link of a deleted leaf should go")
	}
	if p, ok := m.Parent(2); !ok || p != 3 {
		t.Errorf("Parent(2) = %v, %v; other links must stay", p, ok)
	}
}

func TestCompactIdempotent(t *testing.T) {
	once := Compact(buildNested())
	twice := Compact(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("compact is not idempotent:\n%+v\n%+v", once, twice)
	}
}

func TestCompactChain(t *testing.T) {
	m := New()
	m.Add(1, loc(2, 1, 2, 5))
	m.Add(2, loc(2, 1, 2, 5), 1)
	m.Add(3, loc(2, 1, 2, 5), 2)
	m.Add(4, loc(1, 1, 3, 1), 3)
	c := Compact(m)

	if got, want := c.IDs(), []ast.ID{1, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for _, id := range []ast.ID{2, 3} {
		if to, _ := c.MergedInto(id); to != 1 {
			t.Errorf("MergedInto(%d) = %d, want 1", id, to)
		}
	}
}

func TestCompactKeepsDistinctRanges(t *testing.T) {
	m := New()
	m.Add(1, loc(1, 5, 1, 5))
	m.Add(2, loc(1, 1, 1, 5), 1)
	c := Compact(m)
	if c.Len() != 2 {
		t.Errorf("expected both entries to survive, got %v", c.IDs())
	}
}

func TestMarshalJSON(t *testing.T) {
	m := New()
	m.Add(1, loc(1, 1, 1, 14))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"1":{"source":"mocked_path","start":{"line":1,"col":1},"end":{"line":1,"col":14}}}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}

	back := New()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatal(err)
	}
	if l, ok := back.Lookup(1); !ok || l != loc(1, 1, 1, 14) {
		t.Errorf("round trip lost entry: %v", back.IDs())
	}
}
