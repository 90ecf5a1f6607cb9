package lower

import "github.com/funvibe/enumc/internal/pipeline"

// Processor wraps Lower as a pipeline.Processor, the last stage of the
// pipeline. It requires ctx.GenericResolver from the Generic Resolver
// stage, so it skips alongside that stage once the Type Context is
// poisoned.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.TyCtx.Poisoned() || ctx.GenericResolver == nil {
		return ctx
	}
	ctx.IR = Lower(ctx.TyCtx, ctx.GenericResolver, ctx.AstRoot)
	return ctx
}

var _ pipeline.Processor = Processor{}
