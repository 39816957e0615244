package parser

import (
	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/lexer"
	"github.com/funvibe/tntc/internal/pipeline"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parser" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{Line: 1, Column: 1}, "parser: token stream is nil")
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	mod, sm, err := parser.ParseModule()
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.AstRoot = mod
	ctx.SourceMap = sm
	ctx.Log().WithField("nodes", sm.Len()).Debug("module parsed")
	return ctx
}

// Parse runs phase 1 on source: either a module with its source map, or
// the first syntax error.
func Parse(source, filePath string) (*ast.Module, *srcmap.SourceMap, *diagnostics.DiagnosticError) {
	ctx := pipeline.NewContext(source, filePath)
	ctx = pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		return nil, nil, ctx.Errors[0]
	}
	return ctx.AstRoot, ctx.SourceMap, nil
}
