package parser

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/token"
)

// parsePattern parses one match-arm pattern, starting at curToken.
// Leaves curToken on the pattern's last token, matching every other
// parse* method's convention in this package.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Pos: p.curToken.Span}
	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.TRUE, token.FALSE:
		return p.parseLiteralPattern()
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.IDENT:
		return p.parseIdentOrEnumPattern()
	default:
		p.errorf("expected a pattern, got %s", p.curToken.Type)
		return &ast.WildcardPattern{Pos: p.curToken.Span}
	}
}

func (p *Parser) parseLiteralPattern() ast.Pattern {
	start := p.curToken.Span
	var lit ast.Expression
	switch p.curToken.Type {
	case token.INT:
		lit = p.parseIntLit()
	case token.FLOAT:
		lit = p.parseFloatLit()
	case token.CHAR:
		lit = p.parseCharLit()
	case token.STRING:
		lit = p.parseStringLit()
	case token.TRUE, token.FALSE:
		lit = p.parseBoolLit()
	}
	return &ast.LiteralPattern{Value: lit, Pos: p.span(start)}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	start := p.curToken.Span
	p.nextToken() // consume '['
	var elems []ast.Pattern
	for !p.curTokenIs(token.RBRACKET) {
		elems = append(elems, p.parsePattern())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken() // move onto ']'
	}
	return &ast.ArrayPattern{Elements: elems, Pos: p.span(start)}
}

// parseIdentOrEnumPattern distinguishes a bare-binding pattern (a plain
// name) from an enum-constructor pattern (Enum::Variant or
// Enum::Variant(sub, sub, ...)); both start with an IDENT.
func (p *Parser) parseIdentOrEnumPattern() ast.Pattern {
	start := p.curToken.Span
	path := p.parsePath()

	if len(path.Segments) == 1 {
		return &ast.BindingPattern{Name: path.Segments[0], Pos: p.span(start)}
	}

	last := path.Segments[len(path.Segments)-1]
	enumPath := &ast.Path{Segments: path.Segments[:len(path.Segments)-1], Pos: path.Pos}

	var subs []ast.Pattern
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // consume variant name, now at '('
		p.nextToken() // consume '(', move to first sub-pattern (or ')')
		for !p.curTokenIs(token.RPAREN) {
			subs = append(subs, p.parsePattern())
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			p.nextToken() // move onto ')'
		}
	}

	return &ast.EnumPattern{Enum: enumPath, Variant: last, Subs: subs, Pos: p.span(start)}
}
