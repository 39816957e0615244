package symbols

// Define adds a value symbol to the frame. If the name is already taken in
// this frame, nothing changes and the existing symbol is returned.
func (s *SymbolTable) Define(sym Symbol) (Symbol, bool) {
	if prev, ok := s.store[sym.Name]; ok {
		return prev, false
	}
	s.store[sym.Name] = sym
	return sym, true
}

// DefineType adds a type symbol. Same conflict rule as Define.
func (s *SymbolTable) DefineType(sym Symbol) (Symbol, bool) {
	if prev, ok := s.types[sym.Name]; ok {
		return prev, false
	}
	s.types[sym.Name] = sym
	return sym, true
}

// Find looks a value up in this frame only.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

func (s *SymbolTable) FindType(name string) (Symbol, bool) {
	sym, ok := s.types[name]
	return sym, ok
}

// ScopeStack is the chain of frames visible at a point of the traversal.
// Lookups go from the innermost frame outwards.
type ScopeStack struct {
	frames []*SymbolTable
}

// NewScopeStack returns a stack whose bottom frame is the prelude.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []*SymbolTable{GetPrelude()}}
}

func (st *ScopeStack) Push(frame *SymbolTable) {
	st.frames = append(st.frames, frame)
}

// PushNew pushes and returns an empty frame.
func (st *ScopeStack) PushNew(scopeType ScopeType) *SymbolTable {
	frame := NewScopedSymbolTable(scopeType)
	st.Push(frame)
	return frame
}

// Pop removes the innermost frame. The prelude is never popped.
func (st *ScopeStack) Pop() *SymbolTable {
	if len(st.frames) <= 1 {
		return nil
	}
	top := st.frames[len(st.frames)-1]
	st.frames = st.frames[:len(st.frames)-1]
	return top
}

func (st *ScopeStack) Top() *SymbolTable {
	return st.frames[len(st.frames)-1]
}

func (st *ScopeStack) Depth() int { return len(st.frames) }

// Resolve finds the innermost value symbol called name.
func (st *ScopeStack) Resolve(name string) (Symbol, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if sym, ok := st.frames[i].Find(name); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// ResolveType finds the innermost type symbol called name.
func (st *ScopeStack) ResolveType(name string) (Symbol, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if sym, ok := st.frames[i].FindType(name); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}
