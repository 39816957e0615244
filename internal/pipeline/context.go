package pipeline

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/funvibe/tntc/internal/ast"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/effects"
	"github.com/funvibe/tntc/internal/srcmap"
	"github.com/funvibe/tntc/internal/symbols"
	"github.com/funvibe/tntc/internal/token"
)

// TokenStream is what the parser consumes.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// PipelineContext carries the state of one run over one source file.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream TokenStream

	// Phase 1
	AstRoot   *ast.Module
	SourceMap *srcmap.SourceMap

	// Derived by CompactProcessor; SourceMap is left untouched.
	CompactSourceMap *srcmap.SourceMap

	// Phase 2: every name reference mapped to its definition.
	ResolutionMap map[ast.ID]symbols.Symbol

	// Filled by an external inference pass, if any.
	Effects effects.Map

	Errors []*diagnostics.DiagnosticError

	Logger logrus.FieldLogger
	RunID  uuid.UUID
}

// NewContext prepares a run over source. The logger discards everything
// until the caller replaces it.
func NewContext(source, filePath string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		FilePath:   filePath,
		Logger:     DiscardLogger(),
		RunID:      uuid.New(),
	}
}

func DiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Log returns the context logger tagged with the run fields.
func (ctx *PipelineContext) Log() logrus.FieldLogger {
	l := ctx.Logger
	if l == nil {
		l = DiscardLogger()
	}
	return l.WithFields(logrus.Fields{
		"run":  ctx.RunID.String(),
		"file": ctx.FilePath,
	})
}

func (ctx *PipelineContext) HasErrors() bool { return len(ctx.Errors) > 0 }
