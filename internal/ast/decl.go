package ast

import (
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Program is the root node: every top-level item in one source file.
type Program struct {
	Structs   []*StructDecl
	Enums     []*EnumDecl
	Traits    []*TraitDecl
	Impls     []*ImplDecl
	Functions []*Function
	Pos       token.Span
}

func (p *Program) Span() token.Span { return p.Pos }

// GenericParamDecl is the syntactic form of a generic parameter:
// `T` or `T: Bound`.
type GenericParamDecl struct {
	Name  *Identifier
	Bound *Path // nil if unbounded
}

// Param is one function/method parameter.
type Param struct {
	Name *Identifier
	Type typesystem.Ty
}

// Function is a top-level `fn` declaration, also used for trait method
// signatures (Body nil) and trait default/impl method bodies (Body set).
type Function struct {
	ID       int
	Name     *Identifier
	Generics []GenericParamDecl
	Params   []Param
	Ret      typesystem.Ty
	Body     *Block // nil for a trait method signature with no default
	Pos      token.Span
}

func (f *Function) Span() token.Span { return f.Pos }

// StructDecl is a `struct Name<T> { field: Type, ... }` declaration.
type StructDecl struct {
	Name     *Identifier
	Generics []GenericParamDecl
	Fields   []Param // reuse Param's {Name, Type} shape for fields
	Pos      token.Span
}

func (s *StructDecl) Span() token.Span { return s.Pos }

// EnumVariantDecl is one `Name(Ty, Ty, ...)` or bare `Name` variant.
type EnumVariantDecl struct {
	Name    *Identifier
	Payload []typesystem.Ty
}

// EnumDecl is an `enum Name<T> { Variant(Ty), Variant, ... }` declaration.
type EnumDecl struct {
	Name     *Identifier
	Generics []GenericParamDecl
	Variants []EnumVariantDecl
	Pos      token.Span
}

func (e *EnumDecl) Span() token.Span { return e.Pos }

// TraitDecl is a `trait Name<T: Bound> { fn method(...) -> Ty; fn method2(...) -> Ty { ... } }`.
type TraitDecl struct {
	Name     *Identifier
	Generics []GenericParamDecl
	Methods  []*Function // Body nil for pure signatures, set for defaults
	Pos      token.Span
}

func (t *TraitDecl) Span() token.Span { return t.Pos }

// ImplDecl is `impl Trait<Args> for Type<Args> { fn method(...) { ... } }`.
type ImplDecl struct {
	Trait      *Path
	TraitArgs  []typesystem.Ty
	Receiver   typesystem.Ty
	Generics   []GenericParamDecl // impl-level generics, e.g. impl<T> Trait for Pair<T>
	Methods    []*Function
	Pos        token.Span
}

func (i *ImplDecl) Span() token.Span { return i.Pos }
