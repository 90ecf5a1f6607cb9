package parser

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/pipeline"
	"github.com/funvibe/enumc/internal/token"
)

// Processor wraps the parser as a pipeline.Processor: it consumes the
// token stream the lexer stage produced and fills in ctx.AstRoot.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewSyntaxError(token.Span{FileID: ctx.FileID}, "parser: token stream is nil"))
		return ctx
	}

	ctx.IDAlloc = ast.NewIDAllocator()
	p := New(ctx.TokenStream, ctx.FileID, ctx.IDAlloc, &ctx.Errors)
	ctx.AstRoot = p.ParseProgram()
	return ctx
}
