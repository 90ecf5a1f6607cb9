package parser

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.curToken.Span
	p.nextToken() // consume 'struct'
	name := p.newIdent()
	p.nextToken() // consume name

	generics := p.parseGenericParams()
	defer p.popGenericScope(generics)
	if generics != nil {
		p.nextToken() // consume '>'
	}

	p.expectCur(token.LBRACE)
	var fields []ast.Param
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		fname := p.newIdent()
		p.expect(token.COLON) // peek is ':'
		p.nextToken()         // move to type
		ty := p.parseType()
		fields = append(fields, ast.Param{Name: fname, Type: ty})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)

	return &ast.StructDecl{Name: name, Generics: generics, Fields: fields, Pos: p.span(start)}
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	start := p.curToken.Span
	p.nextToken() // consume 'enum'
	name := p.newIdent()
	p.nextToken() // consume name

	generics := p.parseGenericParams()
	defer p.popGenericScope(generics)
	if generics != nil {
		p.nextToken() // consume '>'
	}

	p.expectCur(token.LBRACE)
	var variants []ast.EnumVariantDecl
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		vname := p.newIdent()
		var payload []typesystem.Ty
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken() // consume name, now at '('
			p.nextToken() // consume '(', move to first type (or ')')
			for !p.curTokenIs(token.RPAREN) {
				payload = append(payload, p.parseType())
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
					continue
				}
				p.nextToken() // move onto ')'
			}
		}
		variants = append(variants, ast.EnumVariantDecl{Name: vname, Payload: payload})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)

	return &ast.EnumDecl{Name: name, Generics: generics, Variants: variants, Pos: p.span(start)}
}

func (p *Parser) parseTraitDecl() *ast.TraitDecl {
	start := p.curToken.Span
	p.nextToken() // consume 'trait'
	name := p.newIdent()
	p.nextToken() // consume name

	generics := p.parseGenericParams()
	defer p.popGenericScope(generics)
	if generics != nil {
		p.nextToken() // consume '>'
	}

	p.expectCur(token.LBRACE)
	p.nextToken() // move past '{'
	var methods []*ast.Function
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.parseFunction())
		p.nextToken()
	}

	return &ast.TraitDecl{Name: name, Generics: generics, Methods: methods, Pos: p.span(start)}
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.curToken.Span
	p.nextToken() // consume 'impl'

	generics := p.parseGenericParams()
	defer p.popGenericScope(generics)
	if generics != nil {
		p.nextToken() // consume '>'
	}

	traitPath := p.parsePath()
	var traitArgs []typesystem.Ty
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		traitArgs = p.parseTypeArgList()
	}
	p.expect(token.FOR)
	p.nextToken()
	receiver := p.parseType()

	p.expect(token.LBRACE)
	p.nextToken()
	var methods []*ast.Function
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.parseFunction())
		p.nextToken()
	}

	return &ast.ImplDecl{
		Trait:     traitPath,
		TraitArgs: traitArgs,
		Receiver:  receiver,
		Generics:  generics,
		Methods:   methods,
		Pos:       p.span(start),
	}
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.curToken.Span
	p.nextToken() // consume 'fn'
	name := p.newIdent()
	p.nextToken() // consume name

	generics := p.parseGenericParams()
	defer p.popGenericScope(generics)
	if generics != nil {
		p.nextToken() // consume '>'
	}

	p.expectCur(token.LPAREN)
	var params []ast.Param
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		pname := p.newIdent()
		p.expect(token.COLON) // peek is ':'
		p.nextToken()         // move to type
		ty := p.parseType()
		params = append(params, ast.Param{Name: pname, Type: ty})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RPAREN)

	var ret typesystem.Ty = typesystem.TyVoid
	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // consume ')'
		p.nextToken() // consume '->'
		ret = p.parseType()
	}

	var body *ast.Block
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		body = p.parseBlock()
	} else {
		p.expect(token.SEMI)
	}

	return &ast.Function{
		ID:       p.nextID(),
		Name:     name,
		Generics: generics,
		Params:   params,
		Ret:      ret,
		Body:     body,
		Pos:      p.span(start),
	}
}

// parseBlock parses `{ stmt* }`, starting at curToken == '{'.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curToken.Span
	p.nextToken() // consume '{'
	var stmts []ast.Statement
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.nextToken()
	}
	return &ast.Block{Stmts: stmts, Pos: p.span(start)}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseConstDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.MATCH:
		return p.parseMatchStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.EXIT:
		return p.parseExitStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseConstDecl() *ast.ConstDecl {
	start := p.curToken.Span
	p.nextToken() // consume 'let'
	name := p.newIdent()

	var ty typesystem.Ty
	if p.peekTokenIs(token.COLON) {
		p.nextToken() // consume name
		p.nextToken() // consume ':'
		ty = p.parseType()
	}
	p.expect(token.ASSIGN)
	p.nextToken() // move to value
	value := p.parseExpression(0)
	p.expect(token.SEMI)

	return &ast.ConstDecl{Name: name, Type: ty, Value: value, Pos: p.span(start)}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.curToken.Span
	p.nextToken() // consume 'if'
	p.noStructLiteral = true
	cond := p.parseExpression(0)
	p.noStructLiteral = false
	p.expect(token.LBRACE)
	then := p.parseBlock()

	var elseStmt ast.Statement
	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // consume '}'
		p.nextToken() // consume 'else'
		if p.curTokenIs(token.IF) {
			elseStmt = p.parseIfStmt()
		} else {
			p.expect(token.LBRACE)
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Pos: p.span(start)}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.curToken.Span
	p.nextToken() // consume 'while'
	p.noStructLiteral = true
	cond := p.parseExpression(0)
	p.noStructLiteral = false
	p.expect(token.LBRACE)
	body := p.parseBlock()
	return &ast.WhileStmt{Cond: cond, Body: body, Pos: p.span(start)}
}

func (p *Parser) parseMatchStmt() *ast.MatchStmt {
	start := p.curToken.Span
	p.nextToken() // consume 'match'
	p.noStructLiteral = true
	scrutinee := p.parseExpression(0)
	p.noStructLiteral = false
	p.expect(token.LBRACE)
	p.nextToken() // move past '{'

	var arms []ast.MatchArm
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		pat := p.parsePattern()
		p.expect(token.ARROW)
		p.expect(token.LBRACE)
		body := p.parseBlock()
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		p.nextToken() // move past the arm's '}'
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	return &ast.MatchStmt{Scrutinee: scrutinee, Arms: arms, Pos: p.span(start)}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.curToken.Span
	if p.peekTokenIs(token.SEMI) {
		p.nextToken() // consume 'return', now at ';'
		return &ast.ReturnStmt{Pos: p.span(start)}
	}
	p.nextToken() // move to value
	value := p.parseExpression(0)
	p.expect(token.SEMI)
	return &ast.ReturnStmt{Value: value, Pos: p.span(start)}
}

func (p *Parser) parseExitStmt() *ast.ExitStmt {
	start := p.curToken.Span
	p.nextToken() // consume 'exit'
	p.expect(token.LPAREN)
	p.nextToken() // move to code expr
	code := p.parseExpression(0)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return &ast.ExitStmt{Code: code, Pos: p.span(start)}
}

// parseExprOrAssignStmt handles both `lvalue = expr;`/`lvalue += expr;`
// and a bare call-expression statement, since both start with an
// expression and only diverge once an assignment operator is seen.
func (p *Parser) parseExprOrAssignStmt() ast.Statement {
	start := p.curToken.Span
	expr := p.parseExpression(0)

	if compoundOp, ok := compoundAssignOp(p.peekToken.Type); ok {
		p.nextToken() // move onto the compound-assign operator
		p.nextToken() // move to rhs
		value := p.parseExpression(0)
		p.expect(token.SEMI)
		return &ast.CompoundAssignStmt{Op: compoundOp, Target: expr, Value: value, Pos: p.span(start)}
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken() // move onto '='
		p.nextToken() // move to rhs
		value := p.parseExpression(0)
		p.expect(token.SEMI)
		return &ast.AssignStmt{Target: expr, Value: value, Pos: p.span(start)}
	}

	p.expect(token.SEMI)
	return &ast.ExprStmt{Expr: expr, Pos: p.span(start)}
}

func compoundAssignOp(t token.TokenType) (ast.CompoundAssignOp, bool) {
	switch t {
	case token.PLUS_ASSIGN:
		return ast.CompoundAdd, true
	case token.MINUS_ASSIGN:
		return ast.CompoundSub, true
	case token.STAR_ASSIGN:
		return ast.CompoundMul, true
	case token.SLASH_ASSIGN:
		return ast.CompoundDiv, true
	}
	return 0, false
}
