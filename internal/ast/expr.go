package ast

import (
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Expression is any node producing a value. Every concrete variant carries
// an ID: the integer identity spec.md §5 keys expr_ty/mono_expr_ty by,
// allocated once at parse time via NewIDAllocator.
type Expression interface {
	Node
	ID() int
}

// BaseExpr is the common identity+span every expression variant embeds.
// It is exported so the parser, the only place expression nodes are
// constructed, can build one directly.
type BaseExpr struct {
	NodeID int
	Pos    token.Span
}

func (b BaseExpr) ID() int          { return b.NodeID }
func (b BaseExpr) Span() token.Span { return b.Pos }

// IdentExpr is a bare name reference: a local, a const, or a zero-arg
// function used as a value is out of spec.md's scope — this is purely
// variable/constant lookup.
type IdentExpr struct {
	BaseExpr
	Name *Identifier
}

type IntLit struct {
	BaseExpr
	Value int64
}

type FloatLit struct {
	BaseExpr
	Value float64
}

type CharLit struct {
	BaseExpr
	Value rune
}

type StringLit struct {
	BaseExpr
	Value string
}

type BoolLit struct {
	BaseExpr
	Value bool
}

// DerefExpr is `*expr`: one Ptr layer removed, or an lvalue through a Ref.
type DerefExpr struct {
	BaseExpr
	Operand Expression
}

// AddressOfExpr is `&expr`: takes the address of an lvalue, producing Ptr(T).
type AddressOfExpr struct {
	BaseExpr
	Operand Expression
}

// IndexExpr is `expr[expr]` — fixed-array element access.
type IndexExpr struct {
	BaseExpr
	Array Expression
	Index Expression
}

type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
)

type UnaryExpr struct {
	BaseExpr
	Op      UnaryOp
	Operand Expression
}

type BinaryExpr struct {
	BaseExpr
	Op    typesystem.Operator
	Left  Expression
	Right Expression
}

// CallExpr is `name(args...)` — a direct call to a known function.
type CallExpr struct {
	BaseExpr
	Callee *Identifier
	Args   []Expression
}

// TraitCallExpr is the qualified call `Trait::method(args...)`; the parser
// has no `value.method(args...)` method-call form. spec.md's Trait Solver
// resolves Callee against the statically-known receiver's type plus the
// trait's method table.
type TraitCallExpr struct {
	BaseExpr
	Trait  *Path
	Method *Identifier
	Args   []Expression // Args[0] is the receiver
}

type FieldAccessExpr struct {
	BaseExpr
	Receiver Expression
	Field    *Identifier
}

type StructInitField struct {
	Name  *Identifier
	Value Expression
}

type StructInitExpr struct {
	BaseExpr
	Type   *Path
	Args   []typesystem.Ty // explicit type arguments, e.g. Pair<int, bool>{...}
	Fields []StructInitField
}

// EnumInitExpr is `Enum::Variant(args...)` or a bare `Enum::Variant`.
type EnumInitExpr struct {
	BaseExpr
	Enum    *Path
	Variant *Identifier
	Args    []typesystem.Ty
	Payload []Expression
}

// ArrayInitExpr is `[e1, e2, e3]`.
type ArrayInitExpr struct {
	BaseExpr
	Elements []Expression
}
