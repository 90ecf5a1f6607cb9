package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/lexer"
	"github.com/funvibe/enumc/internal/parser"
	"github.com/funvibe/enumc/internal/typesystem"
)

// parse is the test harness shared by every case here: lex the whole
// input eagerly, feed it through the parser, and hand back the program
// plus whatever errors were collected.
func parse(t *testing.T, input string) (*ast.Program, []*diagnostics.DiagnosticError) {
	t.Helper()
	l := lexer.New(input, 0)
	stream := lexer.NewStream(l)
	var errs []*diagnostics.DiagnosticError
	p := parser.New(stream, 0, ast.NewIDAllocator(), &errs)
	return p.ParseProgram(), errs
}

func requireNoErrors(t *testing.T, errs []*diagnostics.DiagnosticError) {
	t.Helper()
	if len(errs) == 0 {
		return
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("parsing failed with errors:\n%s", strings.Join(msgs, "\n"))
}

func TestParserTopLevelDecls(t *testing.T) {
	input := `
struct Pair<T> { left: T, right: T }

enum Option<T> { Some(T), None }

trait Describe { fn describe(self: int) -> string; }

impl Describe for int {
	fn describe(self: int) -> string { return "int"; }
}

fn add(x: int, y: int) -> int {
	return x + y;
}
`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	if len(prog.Structs) != 1 || prog.Structs[0].Name.Name != "Pair" {
		t.Fatalf("expected one struct Pair, got %+v", prog.Structs)
	}
	if len(prog.Enums) != 1 || prog.Enums[0].Name.Name != "Option" {
		t.Fatalf("expected one enum Option, got %+v", prog.Enums)
	}
	if len(prog.Traits) != 1 || prog.Traits[0].Name.Name != "Describe" {
		t.Fatalf("expected one trait Describe, got %+v", prog.Traits)
	}
	if len(prog.Impls) != 1 {
		t.Fatalf("expected one impl, got %d", len(prog.Impls))
	}
	if len(prog.Functions) != 1 || prog.Functions[0].Name.Name != "add" {
		t.Fatalf("expected one function add, got %+v", prog.Functions)
	}
}

func TestParserExpressionPrecedence(t *testing.T) {
	input := `fn f() -> int { return 1 + 2 * 3; }`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	ret, ok := prog.Functions[0].Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected a return statement, got %T", prog.Functions[0].Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected a binary expr at the top, got %T", ret.Value)
	}
	if bin.Op != typesystem.OpAdd {
		t.Fatalf("expected top operator to be '+' (lowest precedence), got %v", bin.Op)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected 2*3 to bind tighter than 1+..., got %T", bin.Right)
	}
}

func TestParserIfConditionIsNotMistakenForStructLiteral(t *testing.T) {
	input := `
struct Pair<T> { left: T, right: T }
fn f(p: Pair<int>) -> int {
	if p.left { return 1; }
	return 0;
}
`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	ifStmt, ok := prog.Functions[0].Body.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an if statement, got %T", prog.Functions[0].Body.Stmts[0])
	}
	if _, ok := ifStmt.Cond.(*ast.FieldAccessExpr); !ok {
		t.Fatalf("expected p.left to parse as a field access, got %T", ifStmt.Cond)
	}
}

func TestParserEnumConstructorVsTraitCall(t *testing.T) {
	input := `
enum Option<T> { Some(T), None }
trait Describe { fn describe(self: int) -> string; }

fn f() -> Option<int> {
	let x = Option::Some(5);
	let y = Describe::describe(3);
	return x;
}
`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	body := prog.Functions[0].Body.Stmts
	xDecl := body[0].(*ast.ConstDecl)
	if _, ok := xDecl.Value.(*ast.EnumInitExpr); !ok {
		t.Fatalf("expected Option::Some(5) to parse as an enum constructor, got %T", xDecl.Value)
	}

	yDecl := body[1].(*ast.ConstDecl)
	if _, ok := yDecl.Value.(*ast.TraitCallExpr); !ok {
		t.Fatalf("expected Describe::describe(3) to parse as a trait call, got %T", yDecl.Value)
	}
}

func TestParserMatchPatterns(t *testing.T) {
	input := `
enum Option<T> { Some(T), None }
fn f(o: Option<int>) -> int {
	match o {
		Option::Some(v) -> { return v; }
		Option::None -> { return 0; }
		_ -> { return -1; }
	}
}
`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	match, ok := prog.Functions[0].Body.Stmts[0].(*ast.MatchStmt)
	if !ok {
		t.Fatalf("expected a match statement, got %T", prog.Functions[0].Body.Stmts[0])
	}
	if len(match.Arms) != 3 {
		t.Fatalf("expected 3 match arms, got %d", len(match.Arms))
	}
	if _, ok := match.Arms[0].Pattern.(*ast.EnumPattern); !ok {
		t.Fatalf("expected arm 0 to be an enum pattern, got %T", match.Arms[0].Pattern)
	}
	if _, ok := match.Arms[2].Pattern.(*ast.WildcardPattern); !ok {
		t.Fatalf("expected arm 2 to be a wildcard, got %T", match.Arms[2].Pattern)
	}
}

func TestParserGenericStructLiteral(t *testing.T) {
	input := `
struct Pair<T> { left: T, right: T }
fn f() -> int {
	let p = Pair<int>{ left: 1, right: 2 };
	return p.left;
}
`
	prog, errs := parse(t, input)
	requireNoErrors(t, errs)

	decl := prog.Functions[0].Body.Stmts[0].(*ast.ConstDecl)
	lit, ok := decl.Value.(*ast.StructInitExpr)
	if !ok {
		t.Fatalf("expected a struct init expr, got %T", decl.Value)
	}
	if len(lit.Args) != 1 {
		t.Fatalf("expected one explicit type argument, got %d", len(lit.Args))
	}
	if len(lit.Fields) != 2 {
		t.Fatalf("expected two fields, got %d", len(lit.Fields))
	}
}
