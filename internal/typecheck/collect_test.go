package typecheck_test

import (
	"testing"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/lexer"
	"github.com/funvibe/enumc/internal/parser"
	"github.com/funvibe/enumc/internal/typecheck"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src, 0)
	stream := lexer.NewStream(l)
	var errs []*diagnostics.DiagnosticError
	p := parser.New(stream, 0, ast.NewIDAllocator(), &errs)
	prog := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestCollectPopulatesFunctionsStructsEnums(t *testing.T) {
	prog := parseProgram(t, `
struct Pair<T> { left: T, right: T }
enum Option<T> { Some(T), None }
fn add(x: int, y: int) -> int { return x + y; }
`)
	ctx := typecheck.NewContext()
	typecheck.Collect(ctx, prog)

	if ctx.Poisoned() {
		t.Fatalf("collecting a well-formed program should not poison the context: %v", ctx.Errors)
	}
	if _, ok := ctx.Functions["add"]; !ok {
		t.Fatal("expected function add to be collected")
	}
	if _, ok := ctx.Structs["Pair"]; !ok {
		t.Fatal("expected struct Pair to be collected")
	}
	if _, ok := ctx.Enums["Option"]; !ok {
		t.Fatal("expected enum Option to be collected")
	}
}

func TestCollectDuplicateFunctionIsAnError(t *testing.T) {
	prog := parseProgram(t, `
fn f() -> int { return 1; }
fn f() -> int { return 2; }
`)
	ctx := typecheck.NewContext()
	typecheck.Collect(ctx, prog)

	if !ctx.Poisoned() {
		t.Fatal("expected a duplicate function declaration to poison the context")
	}
	found := false
	for _, e := range ctx.Errors {
		if e.Code == diagnostics.ErrDuplicateFunction {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrDuplicateFunction, got %v", ctx.Errors)
	}
}

func TestCollectForwardReference(t *testing.T) {
	// A function may call another declared later in the file — Collect's
	// single forward pass must register every declaration before any
	// later pass walks a body.
	prog := parseProgram(t, `
fn caller() -> int { return callee(); }
fn callee() -> int { return 1; }
`)
	ctx := typecheck.NewContext()
	typecheck.Collect(ctx, prog)
	if ctx.Poisoned() {
		t.Fatalf("forward reference should collect cleanly: %v", ctx.Errors)
	}
	if _, ok := ctx.Functions["callee"]; !ok {
		t.Fatal("expected callee to be registered even though caller appears first")
	}
}

func TestCollectDuplicateImplIsAnError(t *testing.T) {
	prog := parseProgram(t, `
trait Describe { fn describe(self: int) -> string; }
impl Describe for int {
	fn describe(self: int) -> string { return "a"; }
}
impl Describe for int {
	fn describe(self: int) -> string { return "b"; }
}
`)
	ctx := typecheck.NewContext()
	typecheck.Collect(ctx, prog)

	if !ctx.Poisoned() {
		t.Fatal("expected a duplicate impl signature to poison the context")
	}
	found := false
	for _, e := range ctx.Errors {
		if e.Code == diagnostics.ErrDuplicateImpl {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrDuplicateImpl, got %v", ctx.Errors)
	}
}
