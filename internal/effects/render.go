package effects

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/tntc/internal/ast"
)

// Render formats an effect for display:
//
//	Read['x'] & Update['y']
//	Pure
//	(Read[r], e) => Update['x']
func Render(e Effect) string {
	switch e := e.(type) {
	case EVar:
		return e.Name
	case EConcrete:
		var parts []string
		if shown(e.Read) {
			parts = append(parts, "Read["+RenderVariables(e.Read)+"]")
		}
		if shown(e.Update) {
			parts = append(parts, "Update["+RenderVariables(e.Update)+"]")
		}
		if len(parts) == 0 {
			return "Pure"
		}
		return strings.Join(parts, " & ")
	case EArrow:
		rendered := make([]string, len(e.effects))
		for i, el := range e.effects {
			rendered[i] = Render(el)
		}
		if len(rendered) == 0 {
			return "() => Pure"
		}
		last := len(rendered) - 1
		return "(" + strings.Join(rendered[:last], ", ") + ") => " + rendered[last]
	}
	return fmt.Sprintf("<%T>", e)
}

// Only an explicitly empty concrete footprint is hidden.
func shown(v Variables) bool {
	c, ok := v.(VConcrete)
	return !ok || len(c.Vars) > 0
}

// RenderVariables formats a footprint: 'x', 'y' for concrete names, the
// placeholder name for quantified ones, members joined by ", " for unions.
func RenderVariables(v Variables) string {
	switch v := v.(type) {
	case VConcrete:
		quoted := make([]string, len(v.Vars))
		for i, name := range v.Vars {
			quoted[i] = "'" + name + "'"
		}
		return strings.Join(quoted, ", ")
	case VQuantified:
		return v.Name
	case VUnion:
		parts := make([]string, len(v.Variables))
		for i, m := range v.Variables {
			parts[i] = RenderVariables(m)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("<%T>", v)
}

// Map holds effects attached to AST nodes by an inference pass.
type Map map[ast.ID]Effect

// Lines renders the map as "id: effect" lines ordered by identifier.
func (m Map) Lines() []string {
	ids := make([]ast.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String() + ": " + Render(m[id])
	}
	return out
}

// MarshalJSON writes the rendered effects keyed by decimal identifier.
func (m Map) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m))
	for id, e := range m {
		out[id.String()] = Render(e)
	}
	return json.Marshal(out)
}
