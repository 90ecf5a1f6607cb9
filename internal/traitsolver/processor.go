package traitsolver

import "github.com/funvibe/enumc/internal/pipeline"

// Processor wraps ResolveAll as a pipeline.Processor, skipped once the
// Type Context is already poisoned for the same reason the Generic
// Resolver stage skips: a trait call's receiver type may itself be
// wrong.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.TyCtx.Poisoned() {
		return ctx
	}
	ResolveAll(ctx.TyCtx, ctx.AstRoot)
	return ctx
}

var _ pipeline.Processor = Processor{}
