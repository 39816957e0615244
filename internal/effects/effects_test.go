package effects

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustArrow(t *testing.T, params []Effect, result Effect) EArrow {
	t.Helper()
	a, err := NewArrow(params, result)
	if err != nil {
		t.Fatalf("NewArrow: %v", err)
	}
	return a
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		e    Effect
		want string
	}{
		{"pure", Pure(), "Pure"},
		{"read", Read(Vars("x")), "Read['x']"},
		{"update", Update(Vars("x", "y")), "Update['x', 'y']"},
		{"both", ReadUpdate(Vars("x"), Vars("y")), "Read['x'] & Update['y']"},
		{"quantified read", Read(VQuantified{Name: "r1"}), "Read[r1]"},
		{"quantified update shown", Update(VQuantified{Name: "u"}), "Update[u]"},
		{"empty union still shown", Read(Union()), "Read[]"},
		{"var", EVar{Name: "e"}, "e"},
		{
			"union not flattened",
			Read(Union(Vars("x"), VQuantified{Name: "r"}, Vars("x"))),
			"Read['x', r, 'x']",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.e); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if got := tt.e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderArrow(t *testing.T) {
	a := mustArrow(t,
		[]Effect{Read(VQuantified{Name: "r1"}), EVar{Name: "e"}},
		ReadUpdate(VQuantified{Name: "r1"}, Vars("x")))
	want := "(Read[r1], e) => Read[r1] & Update['x']"
	if got := Render(a); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	one := mustArrow(t, []Effect{Pure()}, Pure())
	if got := Render(one); got != "(Pure) => Pure" {
		t.Errorf("got %q", got)
	}
}

func TestNullaryArrowRejected(t *testing.T) {
	if _, err := NewArrow(nil, Pure()); err != ErrNullaryArrow {
		t.Errorf("expected ErrNullaryArrow, got %v", err)
	}
}

func TestArrowAccessors(t *testing.T) {
	a := mustArrow(t, []Effect{EVar{Name: "a"}, EVar{Name: "b"}}, Pure())
	if len(a.Params()) != 2 || !Equal(a.Result(), Pure()) || len(a.Effects()) != 3 {
		t.Errorf("unexpected arrow shape %v", a)
	}
	// callers cannot mutate the arrow through the returned slices
	a.Params()[0] = Pure()
	if !Equal(a.Params()[0], EVar{Name: "a"}) {
		t.Errorf("Params leaked internal storage")
	}
}

func TestEqual(t *testing.T) {
	a := mustArrow(t, []Effect{Read(Vars("x"))}, Update(Vars("y")))
	b := mustArrow(t, []Effect{Read(Vars("x"))}, Update(Vars("y")))
	c := mustArrow(t, []Effect{Read(Vars("x"))}, Update(Vars("z")))
	if !Equal(a, b) {
		t.Errorf("expected equal arrows")
	}
	if Equal(a, c) {
		t.Errorf("expected different arrows")
	}
	if Equal(Read(Vars("x")), EVar{Name: "x"}) {
		t.Errorf("different shapes compared equal")
	}
	if !EqualVariables(Union(Vars("a"), VQuantified{Name: "q"}), Union(Vars("a"), VQuantified{Name: "q"})) {
		t.Errorf("expected equal unions")
	}
}

func TestNamesAndFreeNames(t *testing.T) {
	v := Union(Vars("y", "x"), VQuantified{Name: "r"}, Vars("x"))
	if got, want := Names(v), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	a := mustArrow(t, []Effect{EVar{Name: "e"}, Read(v)}, Update(VQuantified{Name: "u"}))
	if got, want := FreeNames(a), []string{"e", "r", "u"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FreeNames() = %v, want %v", got, want)
	}
	if !IsPure(Pure()) || IsPure(Read(Vars("x"))) {
		t.Errorf("IsPure misclassified")
	}
}

func TestMapLines(t *testing.T) {
	m := Map{
		12: Update(Vars("x")),
		3:  Pure(),
	}
	want := []string{"3: Pure", "12: Update['x']"}
	if got := m.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"12":"Update['x']","3":"Pure"}` {
		t.Errorf("JSON = %s", data)
	}
}
