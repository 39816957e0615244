package analyzer

import (
	"github.com/funvibe/tntc/internal/pipeline"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Name() string { return "analyzer" }

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Nothing to resolve when phase 1 failed.
	if ctx.AstRoot == nil || ctx.SourceMap == nil {
		return ctx
	}

	analyzer := New(ctx.SourceMap)
	errors := analyzer.Analyze(ctx.AstRoot)

	ctx.ResolutionMap = analyzer.ResolutionMap // Export resolved symbols to context

	if len(errors) > 0 {
		ctx.Errors = append(ctx.Errors, errors...)
	}
	ctx.Log().WithField("references", len(analyzer.ResolutionMap)).
		WithField("errors", len(errors)).
		Debug("module resolved")
	return ctx
}
