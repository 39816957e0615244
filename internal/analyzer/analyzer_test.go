package analyzer

import (
	"testing"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/lexer"
	"github.com/funvibe/tntc/internal/parser"
	"github.com/funvibe/tntc/internal/pipeline"
	"github.com/funvibe/tntc/internal/symbols"
)

const validModule = `module Valid {
  const N: int
  var x: int
  var msgs: set(Msg)
  type ADDR = str
  type Msg =
    | { tag: "req", from: ADDR }
    | { tag: "ack" }
  assume _ = N > 0
  pure def add(i, j): (int, int) => int = i + j
  def twice(f, v) = f(f(v))
  val inc = twice(z -> add(z, 1), 0)
  val m = { tag: "ack" } match | "req": r => field(r, "from") | "ack": _ => "none"
  action init = all { x' = 0, msgs' = Set() }
  action step = all {
    nondet v = oneOf(Set(1, 2))
    x' = x + v,
    msgs' = msgs,
  }
  temporal inv = always(x >= 0)
  module Inner {
    type P = int
    val k = 1
  }
  import Inner.*
  val useK: P = k
}`

func TestValidModuleResolves(t *testing.T) {
	expectNoAnalyzerErrors(t, validModule)
}

func TestResolutionMap(t *testing.T) {
	mod, sm, err := parser.Parse(validModule, "test.tnt")
	if err != nil {
		t.Fatal(err.Error())
	}
	refs, errs := Resolve(mod, sm)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errs.Error())
	}

	kinds := map[string]symbols.SymbolKind{}
	ast.Inspect(mod, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.Name:
			sym, ok := refs[e.ID]
			if !ok {
				t.Errorf("name %s (%d) is not resolved", e.Name, e.ID)
			}
			kinds[e.Name] = sym.Kind
		case *ast.App:
			if _, ok := refs[e.ID]; !ok {
				t.Errorf("operator %s (%d) is not resolved", e.Opcode, e.ID)
			}
		case *ast.ConstType:
			if sym, ok := refs[e.ID]; !ok || sym.Kind != symbols.TypeSymbol {
				t.Errorf("type %s (%d) is not resolved", e.Name, e.ID)
			}
		}
		return true
	})

	want := map[string]symbols.SymbolKind{
		"N":    symbols.ConstSymbol,
		"x":    symbols.VarSymbol,
		"i":    symbols.ParamSymbol,
		"v":    symbols.OperatorSymbol,
		"msgs": symbols.VarSymbol,
		"k":    symbols.OperatorSymbol,
	}
	for name, kind := range want {
		if kinds[name] != kind {
			t.Errorf("%s resolved to %s, want %s", name, kinds[name], kind)
		}
	}
}

func TestImportedSymbolsRememberTheirModule(t *testing.T) {
	mod, sm, err := parser.Parse("module A { module B { val b = 1 } import B.* val a = b }", "test.tnt")
	if err != nil {
		t.Fatal(err.Error())
	}
	refs, errs := Resolve(mod, sm)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errs.Error())
	}
	a := mod.Defs[2].(*ast.OpDef)
	sym := refs[a.Expr.NodeID()]
	if sym.Name != "b" || sym.OriginModule != "B" {
		t.Errorf("unexpected symbol %+v", sym)
	}
	inner := mod.Defs[0].(*ast.ModuleDef).Module.Defs[0]
	if sym.DefinitionID != inner.NodeID() {
		t.Errorf("symbol points to %d, want %d", sym.DefinitionID, inner.NodeID())
	}
}

func TestScopesArePoppedAfterAnalysis(t *testing.T) {
	mod, sm, err := parser.Parse("module A { val f = (a, b) -> { val c = a c + b } }", "test.tnt")
	if err != nil {
		t.Fatal(err.Error())
	}
	an := New(sm)
	if errs := an.Analyze(mod); len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", errs.Error())
	}
	if an.scopes.Depth() != 1 {
		t.Errorf("scope stack depth = %d after analysis, want only the prelude", an.scopes.Depth())
	}
}

func TestProcessorInPipeline(t *testing.T) {
	ctx := pipeline.NewContext("module A { val a = 1 val b = a + c }", "test.tnt")
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}, &SemanticAnalyzerProcessor{}).Run(ctx)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != "A001" {
		t.Fatalf("expected one A001, got %v", ctx.Errors)
	}
	if len(ctx.ResolutionMap) == 0 {
		t.Errorf("resolution map not exported")
	}
}

func TestProcessorSkipsFailedParse(t *testing.T) {
	ctx := pipeline.NewContext("module A { val a = }", "test.tnt")
	ctx = (&SemanticAnalyzerProcessor{}).Process(ctx)
	if ctx.ResolutionMap != nil || len(ctx.Errors) != 0 {
		t.Errorf("analyzer ran without a module")
	}
}
