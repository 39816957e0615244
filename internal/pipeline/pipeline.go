package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/funvibe/tntc/internal/srcmap"
)

// Processor is one stage of the front end.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. A stage that reports errors ends the run:
// phase 2 is only meaningful on a module that parsed.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		log := ctx.Log().WithField("stage", processor.Name())
		log.Debug("stage started")
		before := len(ctx.Errors)
		ctx = processor.Process(ctx)
		if n := len(ctx.Errors) - before; n > 0 {
			log.WithFields(logrus.Fields{"errors": n}).Debug("stage failed")
			return ctx
		}
		log.Debug("stage done")
	}
	return ctx
}

// CompactProcessor derives the compact source map of a parsed module.
type CompactProcessor struct{}

func (cp *CompactProcessor) Name() string { return "compact" }

func (cp *CompactProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.SourceMap == nil {
		return ctx
	}
	ctx.CompactSourceMap = srcmap.Compact(ctx.SourceMap)
	ctx.Log().WithFields(logrus.Fields{
		"entries": ctx.SourceMap.Len(),
		"kept":    ctx.CompactSourceMap.Len(),
	}).Debug("source map compacted")
	return ctx
}
