// Package effects models which state variables an expression may read or
// update, and renders those effects for diagnostics.
package effects

import (
	"errors"
	"sort"
)

// Variables is a footprint: the set of state variables an effect touches.
type Variables interface {
	String() string
	variables()
}

// VConcrete is an explicit list of variable names. Order is kept as given.
type VConcrete struct {
	Vars []string
}

// VQuantified stands for a footprint not known yet, as in generic operators.
type VQuantified struct {
	Name string
}

// VUnion is the union of its members. Members are kept as given, not flattened.
type VUnion struct {
	Variables []Variables
}

func (VConcrete) variables()   {}
func (VQuantified) variables() {}
func (VUnion) variables()      {}

func (v VConcrete) String() string   { return RenderVariables(v) }
func (v VQuantified) String() string { return RenderVariables(v) }
func (v VUnion) String() string      { return RenderVariables(v) }

// Effect describes what evaluating an expression does to the state.
type Effect interface {
	String() string
	effect()
}

// EVar is an effect placeholder to be resolved by inference.
type EVar struct {
	Name string
}

// EConcrete reads Read and updates Update.
type EConcrete struct {
	Read   Variables
	Update Variables
}

// EArrow is the effect of an operator: its parameters' effects followed by
// the effect of applying it. Build it with NewArrow.
type EArrow struct {
	effects []Effect
}

func (EVar) effect()      {}
func (EConcrete) effect() {}
func (EArrow) effect()    {}

func (e EVar) String() string      { return Render(e) }
func (e EConcrete) String() string { return Render(e) }
func (e EArrow) String() string    { return Render(e) }

var ErrNullaryArrow = errors.New("arrow effect needs at least one parameter")

// NewArrow builds an arrow effect. Nullary operators have a concrete effect,
// so params must not be empty.
func NewArrow(params []Effect, result Effect) (EArrow, error) {
	if len(params) == 0 {
		return EArrow{}, ErrNullaryArrow
	}
	es := make([]Effect, 0, len(params)+1)
	es = append(es, params...)
	es = append(es, result)
	return EArrow{effects: es}, nil
}

// Params returns the parameter effects.
func (e EArrow) Params() []Effect {
	if len(e.effects) == 0 {
		return nil
	}
	return append([]Effect(nil), e.effects[:len(e.effects)-1]...)
}

// Result returns the effect of applying the arrow.
func (e EArrow) Result() Effect {
	if len(e.effects) == 0 {
		return nil
	}
	return e.effects[len(e.effects)-1]
}

// Effects returns all elements, result last.
func (e EArrow) Effects() []Effect {
	return append([]Effect(nil), e.effects...)
}

// Vars builds a concrete footprint.
func Vars(names ...string) VConcrete {
	if names == nil {
		names = []string{}
	}
	return VConcrete{Vars: names}
}

func Union(vs ...Variables) VUnion {
	return VUnion{Variables: vs}
}

// Pure has no reads and no updates.
func Pure() EConcrete {
	return EConcrete{Read: Vars(), Update: Vars()}
}

func Read(v Variables) EConcrete {
	return EConcrete{Read: v, Update: Vars()}
}

func Update(v Variables) EConcrete {
	return EConcrete{Read: Vars(), Update: v}
}

func ReadUpdate(r, u Variables) EConcrete {
	return EConcrete{Read: r, Update: u}
}

// IsPure reports whether e is concrete with empty explicit footprints.
func IsPure(e Effect) bool {
	c, ok := e.(EConcrete)
	return ok && isEmpty(c.Read) && isEmpty(c.Update)
}

func isEmpty(v Variables) bool {
	c, ok := v.(VConcrete)
	return ok && len(c.Vars) == 0
}

// EqualVariables compares footprints structurally.
func EqualVariables(a, b Variables) bool {
	switch a := a.(type) {
	case VConcrete:
		b, ok := b.(VConcrete)
		if !ok || len(a.Vars) != len(b.Vars) {
			return false
		}
		for i := range a.Vars {
			if a.Vars[i] != b.Vars[i] {
				return false
			}
		}
		return true
	case VQuantified:
		b, ok := b.(VQuantified)
		return ok && a.Name == b.Name
	case VUnion:
		b, ok := b.(VUnion)
		if !ok || len(a.Variables) != len(b.Variables) {
			return false
		}
		for i := range a.Variables {
			if !EqualVariables(a.Variables[i], b.Variables[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}

// Equal compares effects structurally.
func Equal(a, b Effect) bool {
	switch a := a.(type) {
	case EVar:
		b, ok := b.(EVar)
		return ok && a.Name == b.Name
	case EConcrete:
		b, ok := b.(EConcrete)
		return ok && EqualVariables(a.Read, b.Read) && EqualVariables(a.Update, b.Update)
	case EArrow:
		b, ok := b.(EArrow)
		if !ok || len(a.effects) != len(b.effects) {
			return false
		}
		for i := range a.effects {
			if !Equal(a.effects[i], b.effects[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}

// Names returns the concrete variable names of v, sorted and deduplicated.
// Quantified members contribute nothing.
func Names(v Variables) []string {
	set := map[string]bool{}
	collectNames(v, set)
	return sortedKeys(set)
}

func collectNames(v Variables, set map[string]bool) {
	switch v := v.(type) {
	case VConcrete:
		for _, n := range v.Vars {
			set[n] = true
		}
	case VUnion:
		for _, m := range v.Variables {
			collectNames(m, set)
		}
	}
}

// FreeNames returns the names of the effect and footprint placeholders in e, sorted.
func FreeNames(e Effect) []string {
	set := map[string]bool{}
	collectFree(e, set)
	return sortedKeys(set)
}

func collectFree(e Effect, set map[string]bool) {
	switch e := e.(type) {
	case EVar:
		set[e.Name] = true
	case EConcrete:
		collectFreeVariables(e.Read, set)
		collectFreeVariables(e.Update, set)
	case EArrow:
		for _, el := range e.effects {
			collectFree(el, set)
		}
	}
}

func collectFreeVariables(v Variables, set map[string]bool) {
	switch v := v.(type) {
	case VQuantified:
		set[v.Name] = true
	case VUnion:
		for _, m := range v.Variables {
			collectFreeVariables(m, set)
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
