// Package parser is a recursive-descent, Pratt-precedence parser,
// grounded on the teacher's internal/parser/parser.go shape (curToken/
// peekToken over a buffered pipeline.TokenStream, prefix/infix function
// tables registered by token type) but narrowed to this language's fixed
// grammar: no user-definable operators, no newline-sensitive statement
// separation — statements end with ';' and blocks are brace-delimited.
package parser

import (
	"fmt"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/config"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/pipeline"
	"github.com/funvibe/enumc/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into an *ast.Program. genericScope tracks
// the generic parameter names currently in scope (from the enclosing
// function/struct/enum/trait/impl's `<T: Bound>` list) so the type
// parser can tell a bare `T` apart from a nominal type name: the former
// becomes a typesystem.Generic immediately, the latter a typesystem.PathTy
// left for typecheck.ResolveTy to resolve later.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
	fileID    int
	nextID    func() int

	errors *[]*diagnostics.DiagnosticError

	genericScope map[string]bool

	// enumNames holds every `enum Name` declared anywhere in the file,
	// gathered by a one-time prescan before parsing starts. The parser
	// has no type information of its own, so this is the only way to
	// tell an enum constructor path (Enum::Variant) apart from a trait
	// method call (Trait::method) when both look identical at the token
	// level.
	enumNames map[string]bool

	// noStructLiteral suppresses the `Name{...}` struct-literal reading
	// of an identifier expression while parsing an if/while/match
	// condition, mirroring Go's own rule for composite literals in
	// statement headers: without it, `if x { ... }` is ambiguous between
	// a struct literal and a block-opening brace.
	noStructLiteral bool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New builds a Parser. nextID should be the shared allocator from
// ast.NewIDAllocator() for the whole program being parsed.
func New(stream pipeline.TokenStream, fileID int, nextID func() int, errors *[]*diagnostics.DiagnosticError) *Parser {
	p := &Parser{
		stream:       stream,
		fileID:       fileID,
		nextID:       nextID,
		errors:       errors,
		genericScope: make(map[string]bool),
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierOrPathExpr)
	p.registerPrefix(token.INT, p.parseIntLit)
	p.registerPrefix(token.FLOAT, p.parseFloatLit)
	p.registerPrefix(token.CHAR, p.parseCharLit)
	p.registerPrefix(token.STRING, p.parseStringLit)
	p.registerPrefix(token.TRUE, p.parseBoolLit)
	p.registerPrefix(token.FALSE, p.parseBoolLit)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.LBRACKET, p.parseArrayInitExpr)
	p.registerPrefix(token.MINUS, p.parseUnaryExpr)
	p.registerPrefix(token.BANG, p.parseUnaryExpr)
	p.registerPrefix(token.TILDE, p.parseUnaryExpr)
	p.registerPrefix(token.ASTERISK, p.parseDerefExpr)
	p.registerPrefix(token.AMP, p.parseAddressOfExpr)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, op := range config.AllOperators {
		p.registerInfix(token.TokenType(op.Symbol), p.parseBinaryExpr)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACKET, p.parseIndexExpr)
	p.registerInfix(token.DOT, p.parseFieldAccessExpr)

	p.prescanEnumNames()

	p.nextToken()
	p.nextToken()
	return p
}

// prescanEnumNames scans the whole token stream once, before any real
// parsing happens, recording every declared enum name. Peek never
// mutates the stream's position, so this costs nothing beyond the scan
// itself and leaves curToken/peekToken to be primed normally afterward.
func (p *Parser) prescanEnumNames() {
	p.enumNames = make(map[string]bool)
	const allTokens = 1 << 20
	toks := p.stream.Peek(allTokens)
	for i := 0; i < len(toks)-1; i++ {
		if toks[i].Type == token.ENUM && toks[i+1].Type == token.IDENT {
			p.enumNames[toks[i+1].Lexeme] = true
		}
	}
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	peeked := p.stream.Peek(1)
	if len(peeked) > 0 {
		p.peekToken = peeked[0]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
	p.stream.Next()
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s", t, p.peekToken.Type)
	return false
}

// expectCur asserts curToken is already t, without consuming anything.
// Used where a declaration's optional generic-parameter list leaves
// curToken sitting on the next real delimiter already (no token to
// advance past), unlike expect's usual peek-then-advance shape.
func (p *Parser) expectCur(t token.TokenType) bool {
	if p.curTokenIs(t) {
		return true
	}
	p.errorf("expected %s, got %s", t, p.curToken.Type)
	return false
}

func (p *Parser) span(start token.Span) token.Span {
	return token.Span{Start: start.Start, End: p.curToken.Span.End, FileID: p.fileID}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	*p.errors = append(*p.errors, diagnostics.NewSyntaxError(p.curToken.Span, msg))
}

// postfixPrecedence covers the three infix forms that aren't in
// config.AllOperators (which only lists true binary operators): a call,
// an index, and a field access all bind tighter than any binary
// operator, per config.PrecCall.
func postfixPrecedence(t token.TokenType) (int, bool) {
	switch t {
	case token.LPAREN, token.LBRACKET, token.DOT:
		return config.PrecCall, true
	}
	return 0, false
}

func curPrecedence(p *Parser) int {
	if prec, ok := postfixPrecedence(p.curToken.Type); ok {
		return prec
	}
	if op := config.GetOperator(string(p.curToken.Type)); op != nil {
		return op.Precedence
	}
	return 0
}

func peekPrecedence(p *Parser) int {
	if prec, ok := postfixPrecedence(p.peekToken.Type); ok {
		return prec
	}
	if op := config.GetOperator(string(p.peekToken.Type)); op != nil {
		return op.Precedence
	}
	return 0
}

// ParseProgram parses one full source file into an *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.curToken.Span
	prog := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.STRUCT:
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case token.ENUM:
			prog.Enums = append(prog.Enums, p.parseEnumDecl())
		case token.TRAIT:
			prog.Traits = append(prog.Traits, p.parseTraitDecl())
		case token.IMPL:
			prog.Impls = append(prog.Impls, p.parseImplDecl())
		case token.FN:
			prog.Functions = append(prog.Functions, p.parseFunction())
		default:
			p.errorf("unexpected top-level token %s", p.curToken.Type)
		}
		p.nextToken()
	}

	prog.Pos = p.span(start)
	return prog
}
