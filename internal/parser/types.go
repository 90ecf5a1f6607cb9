package parser

import (
	"strconv"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// parseGenericParams parses an optional `<T, U: Bound, ...>` list,
// registering each name into the parser's generic scope for the
// duration of the enclosing declaration (the caller must restore the
// scope afterward via popGenericScope).
func (p *Parser) parseGenericParams() []ast.GenericParamDecl {
	if !p.curTokenIs(token.LT) {
		return nil
	}
	var params []ast.GenericParamDecl
	p.nextToken() // consume '<'
	for {
		if !p.curTokenIs(token.IDENT) {
			p.errorf("expected generic parameter name, got %s", p.curToken.Type)
			break
		}
		name := p.newIdent()
		var bound *ast.Path
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // consume name, now at ':'
			p.nextToken() // consume ':', now at bound path
			bound = p.parsePath()
		}
		params = append(params, ast.GenericParamDecl{Name: name, Bound: bound})
		p.genericScope[name.Name] = true

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.GT)
	return params
}

// popGenericScope removes the names introduced by a just-finished
// declaration's generic parameter list, so a later sibling declaration
// doesn't see them as in-scope generics.
func (p *Parser) popGenericScope(params []ast.GenericParamDecl) {
	for _, g := range params {
		delete(p.genericScope, g.Name.Name)
	}
}

func (p *Parser) newIdent() *ast.Identifier {
	id := &ast.Identifier{ID: p.nextID(), Name: p.curToken.Lexeme, Pos: p.curToken.Span}
	if id.Name == "" {
		id.Name = string(p.curToken.Type)
	}
	return id
}

// parsePath parses a `a::b::c` sequence of identifiers, starting at the
// current token (which must be an IDENT).
func (p *Parser) parsePath() *ast.Path {
	start := p.curToken.Span
	segs := []*ast.Identifier{p.newIdent()}
	for p.peekTokenIs(token.DCOLON) {
		p.nextToken() // consume current ident
		p.nextToken() // consume '::'
		segs = append(segs, p.newIdent())
	}
	return &ast.Path{Segments: segs, Pos: p.span(start)}
}

// parseType parses a type starting at the current token, leaving
// curToken on the type's last token.
func (p *Parser) parseType() typesystem.Ty {
	switch p.curToken.Type {
	case token.INT_TY:
		return typesystem.TyInt
	case token.FLOAT_TY:
		return typesystem.TyFloat
	case token.CHAR_TY:
		return typesystem.TyChar
	case token.BOOL_TY:
		return typesystem.TyBool
	case token.STRING_TY:
		return typesystem.TyString
	case token.VOID_TY:
		return typesystem.TyVoid
	case token.ASTERISK:
		p.nextToken() // consume '*'
		return typesystem.Ptr{Elem: p.parseType()}
	case token.LBRACKET:
		p.nextToken() // consume '['
		if !p.curTokenIs(token.INT) {
			p.errorf("expected array size, got %s", p.curToken.Type)
			return typesystem.TyVoid
		}
		size, _ := strconv.Atoi(p.curToken.Lexeme)
		p.expect(token.RBRACKET)
		p.nextToken() // consume ']'
		return typesystem.Array{Size: size, Element: p.parseType()}
	case token.IDENT:
		return p.parseNominalType()
	default:
		p.errorf("expected a type, got %s", p.curToken.Type)
		return typesystem.TyVoid
	}
}

// parseNominalType parses `Name` or `Name::Name` optionally followed by
// `<Args>`. A single bare segment that matches an in-scope generic
// parameter becomes a typesystem.Generic directly; everything else
// becomes a typesystem.PathTy for typecheck.ResolveTy to resolve once
// every struct/enum name is known.
func (p *Parser) parseNominalType() typesystem.Ty {
	path := p.parsePath()

	if len(path.Segments) == 1 && p.genericScope[path.Segments[0].Name] {
		return typesystem.Generic{Name: path.Segments[0].Name}
	}

	segs := make([]string, len(path.Segments))
	for i, s := range path.Segments {
		segs[i] = s.Name
	}

	var args []typesystem.Ty
	if p.peekTokenIs(token.LT) {
		p.nextToken() // consume last path segment
		args = p.parseTypeArgList()
	}
	return typesystem.PathTy{Segments: segs, Args: args}
}

// parseTypeArgList parses `<T1, T2, ...>`, starting at curToken == '<'.
func (p *Parser) parseTypeArgList() []typesystem.Ty {
	var args []typesystem.Ty
	p.nextToken() // consume '<'
	for {
		args = append(args, p.parseType())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.GT)
	return args
}
