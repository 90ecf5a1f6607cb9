package pipeline

import (
	"github.com/funvibe/enumc/internal/generic"
	"github.com/funvibe/enumc/internal/typecheck"
)

// CollectProcessor and GenericUsageProcessor live here rather than in
// package typecheck/generic themselves: PipelineContext already holds a
// concrete *typecheck.Context and *generic.Resolver (see above), so
// either package importing back in to implement Processor would be an
// import cycle. Every other stage's Processor lives beside its logic;
// these two are the exception forced by that field typing.

// CollectProcessor wraps typecheck.Collect, the first stage after
// parsing: it populates ctx.TyCtx with every struct, enum, trait, impl
// and top-level function declared in ctx.AstRoot.
type CollectProcessor struct{}

func (CollectProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	typecheck.Collect(ctx.TyCtx, ctx.AstRoot)
	return ctx
}

// GenericUsageProcessor wraps generic.CollectGenericUsage, skipped once
// the Type Context is poisoned: a generic instantiation worklist built
// against incomplete or wrong types would only produce more confusing
// downstream diagnostics.
type GenericUsageProcessor struct{}

func (GenericUsageProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil || ctx.TyCtx.Poisoned() {
		return ctx
	}
	resolver := generic.NewResolver(ctx.TyCtx)
	generic.CollectGenericUsage(ctx.TyCtx, ctx.AstRoot, resolver)
	ctx.GenericResolver = resolver
	return ctx
}

var (
	_ Processor = CollectProcessor{}
	_ Processor = GenericUsageProcessor{}
)
