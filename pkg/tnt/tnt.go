// Package tnt is the public entry point of the TNT front end: parsing into an
// identified module with a source map, and name resolution over it.
package tnt

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/funvibe/tntc/internal/analyzer"
	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/effects"
	"github.com/funvibe/tntc/internal/lexer"
	"github.com/funvibe/tntc/internal/parser"
	"github.com/funvibe/tntc/internal/pipeline"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/symbols"
)

// Phase1Result is a module that parsed, with the location of every node.
type Phase1Result struct {
	Module    *ast.Module
	SourceMap *srcmap.SourceMap
}

// Phase2Result is a module whose names all resolved.
type Phase2Result struct {
	Phase1Result
	// Table maps every name reference to its definition.
	Table map[ast.ID]symbols.Symbol
}

// ParsePhase1 parses text. Only the first syntax error is reported.
func ParsePhase1(text, path string) (*Phase1Result, diagnostics.Errors) {
	mod, sm, err := parser.Parse(text, path)
	if err != nil {
		return nil, diagnostics.Errors{err}
	}
	return &Phase1Result{Module: mod, SourceMap: sm}, nil
}

// ParsePhase2 resolves the names of a parsed module. Every independent
// error is reported, ordered by position.
func ParsePhase2(r *Phase1Result) (*Phase2Result, diagnostics.Errors) {
	table, errs := analyzer.Resolve(r.Module, r.SourceMap)
	if len(errs) > 0 {
		return nil, errs
	}
	return &Phase2Result{Phase1Result: *r, Table: table}, nil
}

// CompactSourceMap drops entries that repeat the range of their only child.
func CompactSourceMap(sm *srcmap.SourceMap) *srcmap.SourceMap {
	return srcmap.Compact(sm)
}

const (
	StatusParsed = "parsed"
	StatusError  = "error"
)

// Outcome is the result of a full run over one file.
type Outcome struct {
	Status   string
	Warnings []string
	Module   *ast.Module
	Errors   diagnostics.Errors
	RunID    uuid.UUID

	// SourceMap is compacted unless WithoutCompaction was given.
	SourceMap *srcmap.SourceMap
	Table     map[ast.ID]symbols.Symbol
	// Effects is set when an Inferrer was given.
	Effects   effects.Map

	withTable bool
}

func (o *Outcome) OK() bool { return o.Status == StatusParsed }

func (o *Outcome) MarshalJSON() ([]byte, error) {
	if !o.OK() {
		return json.Marshal(struct {
			Status string             `json:"status"`
			Run    string             `json:"run"`
			Errors diagnostics.Errors `json:"errors"`
		}{o.Status, o.RunID.String(), o.Errors})
	}
	warnings := o.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	out := struct {
		Status   string                    `json:"status"`
		Run      string                    `json:"run"`
		Warnings []string                  `json:"warnings"`
		Module   *ast.Module               `json:"module"`
		Table    map[ast.ID]symbols.Symbol `json:"table,omitempty"`
		Effects  effects.Map               `json:"effects,omitempty"`
	}{Status: o.Status, Run: o.RunID.String(), Warnings: warnings, Module: o.Module, Effects: o.Effects}
	if o.withTable {
		out.Table = o.Table
	}
	return json.Marshal(out)
}

type options struct {
	logger    logrus.FieldLogger
	compact   bool
	withTable bool
	infer     Inferrer
}

type Option func(*options)

// WithLogger routes the debug output of every stage to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithoutCompaction keeps the full source map in the outcome.
func WithoutCompaction() Option {
	return func(o *options) { o.compact = false }
}

// WithTable adds the resolution table to the JSON form of the outcome.
func WithTable() Option {
	return func(o *options) { o.withTable = true }
}

// Inferrer computes effects for the nodes of a module whose names resolved.
type Inferrer func(mod *ast.Module, table map[ast.ID]symbols.Symbol) effects.Map

// WithEffects runs infer after name resolution. Its result is rendered in
// the outcome.
func WithEffects(infer Inferrer) Option {
	return func(o *options) { o.infer = infer }
}

type effectsProcessor struct {
	infer Inferrer
}

func (ep *effectsProcessor) Name() string { return "effects" }

func (ep *effectsProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	ctx.Effects = ep.infer(ctx.AstRoot, ctx.ResolutionMap)
	ctx.Log().WithField("effects", len(ctx.Effects)).Debug("effects inferred")
	return ctx
}

// Parse runs both phases over text.
func Parse(text, path string, opts ...Option) *Outcome {
	o := options{compact: true}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := pipeline.NewContext(text, path)
	if o.logger != nil {
		ctx.Logger = o.logger
	}
	stages := []pipeline.Processor{&lexer.LexerProcessor{}, &parser.ParserProcessor{}}
	if o.compact {
		stages = append(stages, &pipeline.CompactProcessor{})
	}
	stages = append(stages, &analyzer.SemanticAnalyzerProcessor{})
	if o.infer != nil {
		stages = append(stages, &effectsProcessor{infer: o.infer})
	}
	ctx = pipeline.New(stages...).Run(ctx)

	out := &Outcome{RunID: ctx.RunID, withTable: o.withTable}
	if ctx.HasErrors() {
		out.Status = StatusError
		out.Errors = ctx.Errors
		return out
	}
	out.Status = StatusParsed
	out.Module = ctx.AstRoot
	out.Table = ctx.ResolutionMap
	out.Effects = ctx.Effects
	out.SourceMap = ctx.SourceMap
	if ctx.CompactSourceMap != nil {
		out.SourceMap = ctx.CompactSourceMap
	}
	return out
}
