package infer

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/pipeline"
)

// Processor wraps Inference as a pipeline.Processor: it walks every
// top-level function, impl method and trait default method in
// ctx.AstRoot, populating ctx.TyCtx.ExprTy.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	for _, fn := range allFunctions(ctx.AstRoot) {
		Function(ctx.TyCtx, fn)
	}
	return ctx
}

var _ pipeline.Processor = Processor{}

// allFunctions flattens every function body Inference (and Check) needs
// to walk: top-level functions plus impl and trait methods, which live
// in their own slices rather than ast.Program.Functions.
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
