package lower_test

import (
	"testing"

	"github.com/funvibe/enumc/internal/check"
	"github.com/funvibe/enumc/internal/infer"
	"github.com/funvibe/enumc/internal/ir"
	"github.com/funvibe/enumc/internal/lexer"
	"github.com/funvibe/enumc/internal/lower"
	"github.com/funvibe/enumc/internal/parser"
	"github.com/funvibe/enumc/internal/pipeline"
	"github.com/funvibe/enumc/internal/traitsolver"
	"github.com/funvibe/enumc/internal/typesystem"
)

func runToIR(t *testing.T, src string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src, "", 0)
	p := pipeline.New(
		lexer.Processor{},
		parser.Processor{},
		pipeline.CollectProcessor{},
		infer.Processor{},
		check.Processor{},
		pipeline.GenericUsageProcessor{},
		traitsolver.Processor{},
		lower.Processor{},
	)
	final := p.Run(ctx)
	if final.TyCtx.Poisoned() {
		t.Fatalf("unexpected errors: %v", final.TyCtx.Errors)
	}
	return final
}

// TestTraitCallLowersToMangledImplCall is spec.md scenario S2 (§4.7 step
// 5): a non-dependent trait call's lowered IR must carry the mangled
// impl method name as its call target, rather than leaving the trait
// dispatch unresolved.
func TestTraitCallLowersToMangledImplCall(t *testing.T) {
	final := runToIR(t, `
trait Describe { fn describe(self: int) -> string; }
impl Describe for int {
	fn describe(self: int) -> string { return "int"; }
}
fn main() -> void {
	let s = Describe::describe(3);
}
`)

	var mainFn *ir.Function
	for _, fn := range final.IR.Functions {
		if fn.Name == "main" {
			mainFn = fn
		}
	}
	if mainFn == nil {
		t.Fatal("expected a lowered main function")
	}
	if len(mainFn.CallTarget) != 1 {
		t.Fatalf("expected exactly one resolved trait call target, got %d", len(mainFn.CallTarget))
	}
	want := lower.MangleName("describe", []typesystem.Ty{typesystem.TyInt})
	for _, target := range mainFn.CallTarget {
		if target != want {
			t.Fatalf("expected call target %q, got %q", want, target)
		}
	}
}
