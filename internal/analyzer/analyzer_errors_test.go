package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/parser"
)

// analyzeSource parses then analyzes the input, returning all errors.
func analyzeSource(t *testing.T, input string) diagnostics.Errors {
	t.Helper()
	mod, sm, err := parser.Parse(input, "mocked_path/testFixture/test.tnt")
	if err != nil {
		t.Fatalf("unexpected syntax error: %s\ninput: %s", err.Error(), input)
	}
	_, errs := Resolve(mod, sm)
	return errs
}

// expectAnalyzerError asserts that analysis fails with errors of the given
// code only.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := analyzeSource(t, input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code != code {
			t.Fatalf("expected only %s, got:\n%s\ninput: %s", code, errs.Error(), input)
		}
	}
	return errs[0]
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Message, substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectNoAnalyzerErrors asserts that analysis produces no errors.
func expectNoAnalyzerErrors(t *testing.T, input string) {
	t.Helper()
	if errs := analyzeSource(t, input); len(errs) > 0 {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", errs.Error(), input)
	}
}

// ---------------------------------------------------------------------------
// A001: Unresolved name
// ---------------------------------------------------------------------------

func TestA001_UnknownName(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { val x = y }", diagnostics.ErrA001, "'y'")
}

func TestA001_UnknownOperator(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { val x = foo(1) }", diagnostics.ErrA001, "'foo'")
}

func TestA001_UnknownModule(t *testing.T) {
	expectAnalyzerError(t, "module A { import Z.* }", diagnostics.ErrA001)
}

func TestA001_MissingImportedName(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { module B { val b = 1 } import B.c }", diagnostics.ErrA001, "'c'")
}

// ---------------------------------------------------------------------------
// A002: Name out of scope
// ---------------------------------------------------------------------------

func TestA002_LetBindingAfterItsBody(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { val x = { val y = 1 y } + y }", diagnostics.ErrA002, "'y'")
}

func TestA002_LambdaParameterAfterLambda(t *testing.T) {
	expectAnalyzerError(t, "module A { val f = a -> a val g = a }", diagnostics.ErrA002)
}

func TestA002_ForwardReference(t *testing.T) {
	expectAnalyzerError(t, "module A { val a = b val b = 1 }", diagnostics.ErrA002)
}

func TestA002_Recursion(t *testing.T) {
	expectAnalyzerError(t, "module A { def f(x) = f(x) }", diagnostics.ErrA002)
}

func TestA002_NestedModuleWithoutImport(t *testing.T) {
	expectAnalyzerError(t, "module A { module B { val b = 1 } val a = b }", diagnostics.ErrA002)
}

func TestA002_ImportBeforeModule(t *testing.T) {
	expectAnalyzerError(t, "module A { import B.* module B { val b = 1 } }", diagnostics.ErrA002)
}

// ---------------------------------------------------------------------------
// A003: Unresolved type
// ---------------------------------------------------------------------------

func TestA003_UnknownType(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { const N: T }", diagnostics.ErrA003, "'T'")
}

func TestA003_UnknownTypeInsideLet(t *testing.T) {
	expectAnalyzerError(t, "module A { val x = { val y: T = 1 y } }", diagnostics.ErrA003)
}

func TestA003_NestedModuleTypeWithoutImport(t *testing.T) {
	expectAnalyzerError(t, "module A { module B { type P = int } var p: P }", diagnostics.ErrA003)
}

func TestA003_TypeVariablesNeedNoDeclaration(t *testing.T) {
	expectNoAnalyzerErrors(t, "module A { def id(x): (a) => a = x }")
}

// ---------------------------------------------------------------------------
// A004: Conflicting names
// ---------------------------------------------------------------------------

func TestA004_DuplicateTopLevel(t *testing.T) {
	e := expectAnalyzerError(t, "module A { val x = 1 val x = 2 }", diagnostics.ErrA004)
	if e.Loc.Start.Col != 22 {
		t.Errorf("conflict should be reported at the second definition, got col %d", e.Loc.Start.Col)
	}
}

func TestA004_ConstAndVar(t *testing.T) {
	expectAnalyzerError(t, "module A { const N: int var N: int }", diagnostics.ErrA004)
}

func TestA004_DuplicateType(t *testing.T) {
	expectAnalyzerError(t, "module A { type T = int type T = str }", diagnostics.ErrA004)
}

func TestA004_ImportClash(t *testing.T) {
	expectAnalyzerErrorContains(t, "module A { module B { val x = 1 } val x = 2 import B.* }",
		diagnostics.ErrA004, "imported from 'B'")
}

func TestA004_SeparateNamespaces(t *testing.T) {
	expectNoAnalyzerErrors(t, "module A { type T = int val T = 1 }")
}

func TestA004_ShadowingInLetIsAllowed(t *testing.T) {
	expectNoAnalyzerErrors(t, "module A { val x = 1 val y = { val x = 2 x } }")
}

// ---------------------------------------------------------------------------
// A005: Malformed construct
// ---------------------------------------------------------------------------

func TestA005_UnionWithDifferentTagFields(t *testing.T) {
	errs := analyzeSource(t, `module A { type T = | { tag: "a" } | { kind: "b" } }`)
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrA005 {
		t.Fatalf("expected a single A005, got:\n%s", errs.Error())
	}
}

func TestA005_UnionWithoutTag(t *testing.T) {
	expectAnalyzerError(t, `module A { type T = | { a: int } | { b: int } }`, diagnostics.ErrA005)
}

func TestA005_UnionDuplicateTag(t *testing.T) {
	expectAnalyzerErrorContains(t, `module A { type T = | { tag: "a" } | { tag: "a" } }`, diagnostics.ErrA005, `"a"`)
}

func TestA005_StringLiteralTypeOutsideUnion(t *testing.T) {
	expectAnalyzerError(t, `module A { type T = { a: "x" } }`, diagnostics.ErrA005)
}

func TestA005_StringLiteralTypeInUnionBody(t *testing.T) {
	expectAnalyzerError(t, `module A { type T = | { tag: "a", b: "x" } }`, diagnostics.ErrA005)
}

func TestA005_DuplicateParameter(t *testing.T) {
	expectAnalyzerError(t, "module A { def f(x, x) = x }", diagnostics.ErrA005)
}

func TestA005_HolesMayRepeat(t *testing.T) {
	expectNoAnalyzerErrors(t, "module A { def f(_, _) = 1 }")
}

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestAllErrorsAreReportedInOrder(t *testing.T) {
	errs := analyzeSource(t, `module A {
  val a = q
  const N: T
  val a = 1
}`)
	want := []diagnostics.ErrorCode{diagnostics.ErrA001, diagnostics.ErrA003, diagnostics.ErrA004}
	got := errs.Codes()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
	for i, e := range errs {
		if e.Loc.Start.Line != i+2 {
			t.Errorf("error %d on line %d, want %d", i, e.Loc.Start.Line, i+2)
		}
	}
}

func TestA004_NameImportedTwice(t *testing.T) {
	expectAnalyzerError(t, "module A { module B { val b = 1 } import B.* import B.b }", diagnostics.ErrA004)
}
