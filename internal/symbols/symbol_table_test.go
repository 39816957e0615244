package symbols

import "testing"

func TestScopeStackShadowing(t *testing.T) {
	st := NewScopeStack()
	mod := st.PushNew(ScopeModule)
	mod.Define(Symbol{Name: "x", Kind: VarSymbol, DefinitionID: 1})

	inner := st.PushNew(ScopeLambda)
	if st.Top().ScopeType() != ScopeLambda {
		t.Fatalf("top frame is %v, want the lambda frame", st.Top().ScopeType())
	}
	inner.Define(Symbol{Name: "x", Kind: ParamSymbol, DefinitionID: 2})

	if sym, ok := st.Resolve("x"); !ok || sym.DefinitionID != 2 {
		t.Fatalf("expected innermost x, got %+v", sym)
	}
	st.Pop()
	if sym, ok := st.Resolve("x"); !ok || sym.DefinitionID != 1 {
		t.Fatalf("expected module x after pop, got %+v", sym)
	}
	st.Pop()
	if _, ok := st.Resolve("x"); ok {
		t.Fatalf("x visible after popping its frame")
	}
	if st.Pop() != nil || st.Depth() != 1 {
		t.Fatalf("prelude frame must not be popped")
	}
}

func TestDefineConflict(t *testing.T) {
	frame := NewScopedSymbolTable(ScopeModule)
	if _, ok := frame.Define(Symbol{Name: "a", DefinitionID: 1}); !ok {
		t.Fatal("first definition rejected")
	}
	prev, ok := frame.Define(Symbol{Name: "a", DefinitionID: 2})
	if ok || prev.DefinitionID != 1 {
		t.Fatalf("expected conflict with first definition, got %+v %v", prev, ok)
	}
	// types are a separate namespace
	if _, ok := frame.DefineType(Symbol{Name: "a", Kind: TypeSymbol, DefinitionID: 3}); !ok {
		t.Fatal("type namespace should not clash with values")
	}
}

func TestPreludeHasBuiltins(t *testing.T) {
	st := NewScopeStack()
	for _, name := range []string{"forall", "Set", "iadd", "unionMatch"} {
		sym, ok := st.Resolve(name)
		if !ok || sym.Kind != BuiltinSymbol {
			t.Errorf("builtin %q not found", name)
		}
	}
}
