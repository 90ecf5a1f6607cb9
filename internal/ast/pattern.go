package ast

import "github.com/funvibe/enumc/internal/token"

// Pattern is a match-arm pattern, per spec.md §4.6's pattern grammar:
// wildcard, bare-binding, literal, enum-constructor, and fixed-size array.
type Pattern interface {
	Node
}

// WildcardPattern is `_`: matches anything, binds nothing.
type WildcardPattern struct {
	Pos token.Span
}

func (w *WildcardPattern) Span() token.Span { return w.Pos }

// BindingPattern is a bare identifier: matches anything, binds Name to
// the scrutinee's type in the arm's scope.
type BindingPattern struct {
	Name *Identifier
	Pos  token.Span
}

func (b *BindingPattern) Span() token.Span { return b.Pos }

// LiteralPattern matches an exact literal value (int, float, char, string,
// bool); binds nothing.
type LiteralPattern struct {
	Value Expression // one of IntLit/FloatLit/CharLit/StringLit/BoolLit
	Pos   token.Span
}

func (l *LiteralPattern) Span() token.Span { return l.Pos }

// EnumPattern is `Enum::Variant(sub, sub, ...)` or a bare `Enum::Variant`;
// each sub-pattern binds against the corresponding payload slot's type.
type EnumPattern struct {
	Enum    *Path
	Variant *Identifier
	Subs    []Pattern
	Pos     token.Span
}

func (e *EnumPattern) Span() token.Span { return e.Pos }

// ArrayPattern is `[p1, p2, p3]`, matching a fixed-size array element-wise;
// the pattern's length must equal the scrutinee array's declared size.
type ArrayPattern struct {
	Elements []Pattern
	Pos      token.Span
}

func (a *ArrayPattern) Span() token.Span { return a.Pos }
