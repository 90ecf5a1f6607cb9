package parser

import (
	"strconv"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/config"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// parseExpression is the Pratt loop: parse one prefix term, then keep
// folding in infix/postfix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMI) && minPrec < peekPrecedence(p) {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) base() ast.BaseExpr {
	return ast.BaseExpr{NodeID: p.nextID(), Pos: p.curToken.Span}
}

func (p *Parser) parseIntLit() ast.Expression {
	v, _ := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	return &ast.IntLit{BaseExpr: p.base(), Value: v}
}

func (p *Parser) parseFloatLit() ast.Expression {
	v, _ := strconv.ParseFloat(p.curToken.Lexeme, 64)
	return &ast.FloatLit{BaseExpr: p.base(), Value: v}
}

func (p *Parser) parseCharLit() ast.Expression {
	r, _ := p.curToken.Literal.(rune)
	return &ast.CharLit{BaseExpr: p.base(), Value: r}
}

func (p *Parser) parseStringLit() ast.Expression {
	return &ast.StringLit{BaseExpr: p.base(), Value: p.curToken.Lexeme}
}

func (p *Parser) parseBoolLit() ast.Expression {
	return &ast.BoolLit{BaseExpr: p.base(), Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken() // consume '('
	expr := p.parseExpression(0)
	p.expect(token.RPAREN)
	return expr
}

// unaryPrecedence matches config.PrecUnary so `-a + b` parses as
// `(-a) + b` rather than `-(a + b)`.
const unaryPrecedence = 9

func (p *Parser) parseUnaryExpr() ast.Expression {
	b := p.base()
	var op ast.UnaryOp
	switch p.curToken.Type {
	case token.MINUS:
		op = ast.UnaryNeg
	case token.BANG:
		op = ast.UnaryNot
	case token.TILDE:
		op = ast.UnaryBitNot
	}
	p.nextToken()
	operand := p.parseExpression(unaryPrecedence)
	return &ast.UnaryExpr{BaseExpr: b, Op: op, Operand: operand}
}

func (p *Parser) parseDerefExpr() ast.Expression {
	b := p.base()
	p.nextToken()
	operand := p.parseExpression(unaryPrecedence)
	return &ast.DerefExpr{BaseExpr: b, Operand: operand}
}

func (p *Parser) parseAddressOfExpr() ast.Expression {
	b := p.base()
	p.nextToken()
	operand := p.parseExpression(unaryPrecedence)
	return &ast.AddressOfExpr{BaseExpr: b, Operand: operand}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	b := ast.BaseExpr{NodeID: p.nextID(), Pos: left.Span()}
	op := opFor(p.curToken.Type)
	prec := curPrecedence(p)
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{BaseExpr: b, Op: op, Left: left, Right: right}
}

// opFor maps a binary operator token to its typesystem.Operator tag.
func opFor(t token.TokenType) typesystem.Operator {
	info := config.GetOperator(string(t))
	if info == nil {
		return typesystem.OpAdd
	}
	return info.Op
}

func (p *Parser) parseArrayInitExpr() ast.Expression {
	b := p.base()
	p.nextToken() // consume '['
	var elems []ast.Expression
	for !p.curTokenIs(token.RBRACKET) {
		elems = append(elems, p.parseExpression(0))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken() // move onto ']'
	}
	return &ast.ArrayInitExpr{BaseExpr: b, Elements: elems}
}

func (p *Parser) parseCallExpr(left ast.Expression) ast.Expression {
	b := ast.BaseExpr{NodeID: p.nextID(), Pos: left.Span()}
	args := p.parseArgList()

	switch callee := left.(type) {
	case *ast.IdentExpr:
		return &ast.CallExpr{BaseExpr: b, Callee: callee.Name, Args: args}
	case *traitCallSite:
		return &ast.TraitCallExpr{BaseExpr: b, Trait: callee.trait, Method: callee.method, Args: args}
	case *enumCallSite:
		return &ast.EnumInitExpr{BaseExpr: b, Enum: callee.enum, Variant: callee.variant, Payload: args}
	default:
		p.errorf("expression is not callable")
		return left
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	p.nextToken() // consume '('
	for !p.curTokenIs(token.RPAREN) {
		args = append(args, p.parseExpression(0))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken() // move onto ')'
	}
	return args
}

func (p *Parser) parseIndexExpr(left ast.Expression) ast.Expression {
	b := ast.BaseExpr{NodeID: p.nextID(), Pos: left.Span()}
	p.nextToken() // consume '['
	idx := p.parseExpression(0)
	p.expect(token.RBRACKET)
	return &ast.IndexExpr{BaseExpr: b, Array: left, Index: idx}
}

func (p *Parser) parseFieldAccessExpr(left ast.Expression) ast.Expression {
	b := ast.BaseExpr{NodeID: p.nextID(), Pos: left.Span()}
	p.nextToken() // consume '.'
	field := p.newIdent()
	return &ast.FieldAccessExpr{BaseExpr: b, Receiver: left, Field: field}
}

// traitCallSite and enumCallSite are intermediate prefix results for a
// two-segment path (Trait::method or Enum::Variant) that hasn't yet
// seen whether it's followed by '(' (a call/constructor). They're
// resolved into real ast.Expression nodes by parseCallExpr, or directly
// by parseIdentifierOrPathExpr for a payload-less enum constructor.
type traitCallSite struct {
	ast.BaseExpr
	trait  *ast.Path
	method *ast.Identifier
}

type enumCallSite struct {
	ast.BaseExpr
	enum    *ast.Path
	variant *ast.Identifier
}

// parseIdentifierOrPathExpr is the prefix parser for any expression
// starting with an identifier: a bare variable, a direct call (deferred
// to the LPAREN infix handler), a two-segment Trait::method or
// Enum::Variant path, or a Name{...}/Name<Args>{...} struct literal.
func (p *Parser) parseIdentifierOrPathExpr() ast.Expression {
	b := p.base()
	path := p.parsePath()

	if len(path.Segments) == 1 {
		name := path.Segments[0]

		var typeArgs []typesystem.Ty
		if p.peekTokenIs(token.LT) && !p.noStructLiteral && p.genericArgsFollowedByBrace() {
			p.nextToken() // move onto '<'
			typeArgs = p.parseTypeArgList()
			// parseTypeArgList leaves curToken on '>'; peekToken is '{',
			// confirmed by genericArgsFollowedByBrace above.
		}

		if p.peekTokenIs(token.LBRACE) && !p.noStructLiteral {
			return p.parseStructInitExpr(b, &ast.Path{Segments: []*ast.Identifier{name}, Pos: name.Pos}, typeArgs)
		}
		return &ast.IdentExpr{BaseExpr: b, Name: name}
	}

	// Two-or-more segment path: Trait::method(...) or Enum::Variant(...).
	last := path.Segments[len(path.Segments)-1]
	headPath := &ast.Path{Segments: path.Segments[:len(path.Segments)-1], Pos: path.Pos}

	if p.enumNames[headPath.Last().Name] {
		if p.peekTokenIs(token.LPAREN) {
			return &enumCallSite{BaseExpr: b, enum: headPath, variant: last}
		}
		return &ast.EnumInitExpr{BaseExpr: b, Enum: headPath, Variant: last}
	}

	return &traitCallSite{BaseExpr: b, trait: headPath, method: last}
}

// genericArgsFollowedByBrace looks ahead, without consuming any tokens,
// to decide whether `Name<` begins a struct literal's explicit type
// arguments (`Name<T>{...}`) rather than a less-than comparison. It
// scans the peeked token window for the matching '>' and checks the
// token right after it is '{'.
func (p *Parser) genericArgsFollowedByBrace() bool {
	const window = 256
	ahead := p.stream.Peek(window)
	// ahead[0] is the token right after peekToken ('<'); depth starts at 1
	// to account for peekToken itself.
	depth := 1
	for i, t := range ahead {
		switch t.Type {
		case token.LT:
			depth++
		case token.GT:
			depth--
			if depth == 0 {
				return i+1 < len(ahead) && ahead[i+1].Type == token.LBRACE
			}
		case token.SEMI, token.LBRACE, token.RPAREN, token.EOF:
			return false
		}
	}
	return false
}

// parseStructInitExpr is called with curToken on the name (or, for an
// explicit-type-arguments literal, on the closing '>') and peekToken on
// the opening '{'.
func (p *Parser) parseStructInitExpr(b ast.BaseExpr, typePath *ast.Path, typeArgs []typesystem.Ty) ast.Expression {
	p.nextToken() // move onto '{'
	p.nextToken() // consume '{', move to first field name (or '}')
	var fields []ast.StructInitField
	for !p.curTokenIs(token.RBRACE) {
		fname := p.newIdent()
		p.expect(token.COLON) // peek is ':'
		p.nextToken()         // move to value
		val := p.parseExpression(0)
		fields = append(fields, ast.StructInitField{Name: fname, Value: val})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken() // move onto '}'
	}
	return &ast.StructInitExpr{BaseExpr: b, Type: typePath, Args: typeArgs, Fields: fields}
}
