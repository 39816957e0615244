package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/lexer"
	"github.com/funvibe/tntc/internal/parser"
	"github.com/funvibe/tntc/internal/pipeline"
)

// parseWithErrors runs the lexer+parser and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	ctx := pipeline.NewContext(input, path)
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	return ctx.Errors
}

// expectError asserts an error with the given code.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// expectErrorAt also checks where the error starts.
func expectErrorAt(t *testing.T, input string, code diagnostics.ErrorCode, line, col int) {
	t.Helper()
	e := expectError(t, input, code)
	if e.Loc.Start.Line != line || e.Loc.Start.Col != col {
		t.Errorf("%s reported at %d:%d, want %d:%d", code, e.Loc.Start.Line, e.Loc.Start.Col, line, col)
	}
}

// expectNoErrors asserts parsing succeeds without errors.
func expectNoErrors(t *testing.T, input string) {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
}

// ---------------------------------------------------------------------------
// P001: Unexpected token
// ---------------------------------------------------------------------------

func TestP001_ExpressionInModule(t *testing.T) {
	expectErrorAt(t, "module A { 1 }", diagnostics.ErrP001, 1, 12)
}

func TestP001_NoModule(t *testing.T) {
	expectError(t, "val x = 1", diagnostics.ErrP001)
}

func TestP001_TrailingModule(t *testing.T) {
	expectErrorAt(t, "module A {} module B {}", diagnostics.ErrP001, 1, 13)
}

func TestP001_MissingBody(t *testing.T) {
	expectError(t, "module A { val x = }", diagnostics.ErrP001)
}

func TestP001_AfterDeclaration(t *testing.T) {
	// const has no expression to continue
	expectError(t, "module A { const N: int 1 }", diagnostics.ErrP001)
}

func TestP001_EmptyTypeParens(t *testing.T) {
	expectError(t, "module A { val x: () = 1 }", diagnostics.ErrP001)
}

func TestP001_CallOnNonName(t *testing.T) {
	expectError(t, "module A { val x = (1)(2) }", diagnostics.ErrP001)
}

func TestP001_DepthLimit(t *testing.T) {
	input := "module A { val x = " + strings.Repeat("(", parser.MaxRecursionDepth+10) + "1" +
		strings.Repeat(")", parser.MaxRecursionDepth+10) + " }"
	expectError(t, input, diagnostics.ErrP001)
}

// ---------------------------------------------------------------------------
// P002: Missing closing token
// ---------------------------------------------------------------------------

func TestP002_MissingModuleBrace(t *testing.T) {
	expectError(t, "module A { val x = 1", diagnostics.ErrP002)
}

func TestP002_EndOfInputInExpression(t *testing.T) {
	expectError(t, "module A { val x =", diagnostics.ErrP002)
}

func TestP002_UnterminatedUnion(t *testing.T) {
	expectError(t, `module A { type T = | { tag: "a" } | }`, diagnostics.ErrP002)
}

// ---------------------------------------------------------------------------
// P003: Extraneous input after an expression
// ---------------------------------------------------------------------------

func TestP003_TwoExpressions(t *testing.T) {
	expectErrorAt(t, "module A { val x = 1 2 }", diagnostics.ErrP003, 1, 22)
}

func TestP003_AfterAssumption(t *testing.T) {
	expectError(t, "module A { assume _ = true false }", diagnostics.ErrP003)
}

// ---------------------------------------------------------------------------
// P004: Token recognition error
// ---------------------------------------------------------------------------

func TestP004_IllegalAfterExpression(t *testing.T) {
	e := expectError(t, "module A { val x = 1 # }", diagnostics.ErrP004)
	if e.Loc.Start.Col != 22 || !strings.Contains(e.Message, "'#'") {
		t.Errorf("unexpected error %s", e.Error())
	}
}

func TestP004_IllegalInModule(t *testing.T) {
	expectError(t, "module A { # }", diagnostics.ErrP004)
}

func TestP004_UnterminatedString(t *testing.T) {
	expectError(t, `module A { val s = "abc }`, diagnostics.ErrP004)
}

func TestP004_UnterminatedComment(t *testing.T) {
	expectErrorAt(t, "module A {\n  val x = 1 /* the rest\n}", diagnostics.ErrP004, 2, 13)
	e := expectError(t, "module A { /* open", diagnostics.ErrP004)
	if e.Loc.Start.Col != 12 || !strings.Contains(e.Message, "'/*'") {
		t.Errorf("unexpected error %s", e.Error())
	}
}

func TestP004_LoneBang(t *testing.T) {
	expectError(t, "module A { val s = !true }", diagnostics.ErrP004)
}

// ---------------------------------------------------------------------------
// P005: '=' where '==' was meant
// ---------------------------------------------------------------------------

func TestP005_AssignInExpression(t *testing.T) {
	expectErrorAt(t, "module A { val x = y = 1 }", diagnostics.ErrP005, 1, 22)
}

func TestP005_InitializedVariable(t *testing.T) {
	expectError(t, "module A { var x: int = 1 }", diagnostics.ErrP005)
}

func TestP005_InCondition(t *testing.T) {
	expectError(t, "module A { val x = if (y = 1) 1 else 2 }", diagnostics.ErrP005)
}

// ---------------------------------------------------------------------------
// P006: Dot call without arguments
// ---------------------------------------------------------------------------

func TestP006_EmptyDotCall(t *testing.T) {
	expectErrorAt(t, "module A { val y = x.f() }", diagnostics.ErrP006, 1, 23)
}

func TestP006_DotCallWithArguments(t *testing.T) {
	expectNoErrors(t, "module A { val y = x.f(1) }")
	expectNoErrors(t, "module A { val y = x.f }")
}

// ---------------------------------------------------------------------------
// P007: nondet outside an action body
// ---------------------------------------------------------------------------

func TestP007_TopLevelNondet(t *testing.T) {
	expectErrorAt(t, "module A { nondet x = 1 }", diagnostics.ErrP007, 1, 12)
}

func TestP007_NestedModuleNondet(t *testing.T) {
	expectError(t, "module A { module B { nondet x = 1 } }", diagnostics.ErrP007)
}

func TestP007_NondetInBodyIsFine(t *testing.T) {
	expectNoErrors(t, `module A {
  var x: int
  action step = nondet v = oneOf(Set(1, 2))
    x' = v
}`)
}

func TestOnlyFirstErrorIsReported(t *testing.T) {
	errs := parseWithErrors("module A { val x = y = 1 2 3 }")
	if len(errs) != 1 {
		t.Fatalf("expected a single error, got %d", len(errs))
	}
	if errs[0].File != path || errs[0].Loc.Source != path {
		t.Errorf("error not attributed to %s: %+v", path, errs[0])
	}
}
