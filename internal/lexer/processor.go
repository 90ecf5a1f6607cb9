package lexer

import "github.com/funvibe/enumc/internal/pipeline"

// Processor wraps the lexer as a pipeline.Processor: it drains
// ctx.SourceCode into a Stream and hands that to the parser stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode, ctx.FileID)
	ctx.TokenStream = NewStream(l)
	return ctx
}

var _ pipeline.Processor = Processor{}
