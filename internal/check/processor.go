package check

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/pipeline"
)

// Processor wraps Check as a pipeline.Processor: it validates every
// top-level function, impl method and trait default method against the
// types Inference already recorded, then emits unused-binding warnings
// once the whole program has been walked.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	for _, fn := range allFunctions(ctx.AstRoot) {
		Function(ctx.TyCtx, fn)
	}
	EmitUnusedWarnings(ctx.TyCtx)
	return ctx
}

var _ pipeline.Processor = Processor{}

func allFunctions(prog *ast.Program) []*ast.Function {
	var out []*ast.Function
	out = append(out, prog.Functions...)
	for _, impl := range prog.Impls {
		out = append(out, impl.Methods...)
	}
	for _, t := range prog.Traits {
		out = append(out, t.Methods...)
	}
	return out
}
