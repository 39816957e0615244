package pipeline

import (
	"testing"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/srcmap"
)

type recorder struct {
	name string
	seen *[]string
	fail bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Process(ctx *PipelineContext) *PipelineContext {
	*r.seen = append(*r.seen, r.name)
	if r.fail {
		ctx.Errors = append(ctx.Errors, &diagnostics.DiagnosticError{Code: diagnostics.ErrP001, Message: r.name})
	}
	return ctx
}

func TestRunStopsAtFailingStage(t *testing.T) {
	var seen []string
	ctx := New(
		&recorder{name: "a", seen: &seen},
		&recorder{name: "b", seen: &seen, fail: true},
		&recorder{name: "c", seen: &seen},
	).Run(NewContext("", "x.tnt"))

	if len(seen) != 2 || seen[1] != "b" {
		t.Errorf("stages run: %v", seen)
	}
	if !ctx.HasErrors() {
		t.Error("expected the error of stage b")
	}
}

func TestNewContext(t *testing.T) {
	a, b := NewContext("", "x.tnt"), NewContext("", "x.tnt")
	if a.RunID == b.RunID {
		t.Error("runs should get distinct ids")
	}
	if a.Logger == nil {
		t.Error("expected a discarding logger")
	}
	a.Logger = nil
	a.Log().Debug("no logger set")
}

func TestCompactProcessor(t *testing.T) {
	ctx := NewContext("", "x.tnt")
	ctx = (&CompactProcessor{}).Process(ctx)
	if ctx.CompactSourceMap != nil {
		t.Fatal("nothing to compact without a source map")
	}

	sm := srcmap.New()
	loc := srcmap.Loc{Source: "x.tnt", Start: srcmap.Pos{Line: 1, Col: 1}, End: srcmap.Pos{Line: 1, Col: 9}}
	sm.Add(ast.ID(1), loc)
	sm.Add(ast.ID(2), loc, ast.ID(1))
	ctx.SourceMap = sm
	ctx = (&CompactProcessor{}).Process(ctx)
	if ctx.CompactSourceMap.Len() != 1 || ctx.SourceMap.Len() != 2 {
		t.Errorf("compact %d, full %d entries", ctx.CompactSourceMap.Len(), ctx.SourceMap.Len())
	}
}
