package main

import (
	"testing"

	"github.com/funvibe/enumc/internal/config"
	"github.com/funvibe/enumc/internal/diagnostics"
)

func errorCodes(diags []*diagnostics.DiagnosticError) []diagnostics.ErrorCode {
	var codes []diagnostics.ErrorCode
	for _, d := range diags {
		if !d.Warning {
			codes = append(codes, d.Code)
		}
	}
	return codes
}

func TestRunValidProgramHasNoErrors(t *testing.T) {
	src := `
fn add(x: int, y: int) -> int {
	return x + y;
}
fn main() -> void {
	let r = add(1, 2);
}
`
	diags := run(src, "", config.DefaultConfig())
	if codes := errorCodes(diags); len(codes) != 0 {
		t.Fatalf("expected no errors, got %v", codes)
	}
}

func TestRunUnusedVariableWarnsOnly(t *testing.T) {
	src := `fn main() -> void { let x = 1; }`
	diags := run(src, "", config.DefaultConfig())
	if codes := errorCodes(diags); len(codes) != 0 {
		t.Fatalf("expected no errors, got %v", codes)
	}
	if len(diags) != 1 || !diags[0].Warning || diags[0].Code != diagnostics.WarnUnusedVariable {
		t.Fatalf("expected exactly one unused-variable warning, got %v", diags)
	}
}

func TestRunUnusedVariableSuppressedByConfig(t *testing.T) {
	src := `fn main() -> void { let x = 1; }`
	cfg := config.DefaultConfig()
	cfg.WarnUnusedVariables = false
	diags := run(src, "", cfg)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics with warnings disabled, got %v", diags)
	}
}

func TestRunUndeclaredVariableIsAnError(t *testing.T) {
	src := `fn main() -> void { let x = y; }`
	diags := run(src, "", config.DefaultConfig())
	codes := errorCodes(diags)
	found := false
	for _, c := range codes {
		if c == diagnostics.ErrUndeclaredVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an undeclared-variable error, got %v", codes)
	}
}

func TestRunTypeMismatchIsAnError(t *testing.T) {
	src := `
fn f() -> int {
	return "not an int";
}
`
	diags := run(src, "", config.DefaultConfig())
	codes := errorCodes(diags)
	if len(codes) == 0 {
		t.Fatalf("expected a type error, got none")
	}
}

func TestRunGenericFunctionInstantiation(t *testing.T) {
	src := `
fn id<T>(x: T) -> T {
	return x;
}
fn main() -> void {
	let a = id(3);
	let b = id(true);
}
`
	diags := run(src, "", config.DefaultConfig())
	if codes := errorCodes(diags); len(codes) != 0 {
		t.Fatalf("expected no errors for two distinct generic instantiations, got %v", codes)
	}
}

func TestRunEnumMatchExhaustive(t *testing.T) {
	src := `
enum Option<T> { Some(T), None }
fn f(o: Option<int>) -> int {
	match o {
		Option::Some(v) -> { return v; }
		Option::None -> { return 0; }
	}
}
fn main() -> void {
	let o: Option<int> = Option::Some(5);
	let r = f(o);
}
`
	diags := run(src, "", config.DefaultConfig())
	if codes := errorCodes(diags); len(codes) != 0 {
		t.Fatalf("expected an exhaustive match to produce no errors, got %v", codes)
	}
}

func TestRunNonExhaustiveMatchIsAnError(t *testing.T) {
	src := `
enum Option<T> { Some(T), None }
fn f(o: Option<int>) -> int {
	match o {
		Option::Some(v) -> { return v; }
	}
	return 0;
}
`
	diags := run(src, "", config.DefaultConfig())
	codes := errorCodes(diags)
	found := false
	for _, c := range codes {
		if c == diagnostics.ErrNonExhaustiveMatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a non-exhaustive match error, got %v", codes)
	}
}

func TestRunTraitDispatch(t *testing.T) {
	src := `
trait Describe { fn describe(self: int) -> string; }
impl Describe for int {
	fn describe(self: int) -> string { return "int"; }
}
fn main() -> void {
	let s = Describe::describe(3);
}
`
	diags := run(src, "", config.DefaultConfig())
	if codes := errorCodes(diags); len(codes) != 0 {
		t.Fatalf("expected trait dispatch to an existing impl to produce no errors, got %v", codes)
	}
}

func TestRunMissingTraitImplIsAnError(t *testing.T) {
	src := `
trait Describe { fn describe(self: int) -> string; }
fn main() -> void {
	let s = Describe::describe(3);
}
`
	diags := run(src, "", config.DefaultConfig())
	codes := errorCodes(diags)
	found := false
	for _, c := range codes {
		if c == diagnostics.ErrNoTraitImpl {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing-trait-impl error, got %v", codes)
	}
}

func TestFilterCodeDropsOnlyGivenCode(t *testing.T) {
	diags := []*diagnostics.DiagnosticError{
		{Code: diagnostics.WarnUnusedVariable, Warning: true},
		{Code: diagnostics.ErrUndeclaredVariable},
	}
	out := filterCode(diags, diagnostics.WarnUnusedVariable)
	if len(out) != 1 || out[0].Code != diagnostics.ErrUndeclaredVariable {
		t.Fatalf("expected only the undeclared-variable diagnostic to remain, got %v", out)
	}
}
