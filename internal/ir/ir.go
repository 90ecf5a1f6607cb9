// Package ir is the typed IR spec.md §6 names as this core's other
// external product besides diagnostics: every generic has been resolved
// to a concrete instantiation, every field access carries a numeric
// index, and every enum pattern/constructor carries a numeric variant
// index. Statement/expression shape is otherwise unchanged from the
// AST — spec.md §1 scopes final code emission out, so the IR's job is
// to finish resolving everything a backend would need, not to lower
// into a different instruction set.
package ir

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/typesystem"
)

type Program struct {
	Structs   []*Struct
	Enums     []*Enum
	Functions []*Function
}

// Struct is one monomorphized struct layout, emitted once per concrete
// instantiation of a generic struct under its mangled Name. A struct
// with no generic parameters gets no Struct entry.
type Struct struct {
	Name   string
	Fields []typesystem.Field
}

type Enum struct {
	Name     string
	Variants []typesystem.Variant
}

type Param struct {
	Name string
	Type typesystem.Ty
}

// Function is one concrete function body: the original generic body's
// AST is reused (Body), but ExprTy, FieldIndex and VariantIndex are
// this instantiation's own substituted tables, since the same source
// expression has a different concrete type per instantiation
// (spec.md §5's mono_expr_ty).
type Function struct {
	Name         string
	Params       []Param
	Ret          typesystem.Ty
	Body         *ast.Block
	ExprTy       map[int]typesystem.Ty
	FieldIndex   map[int]int // FieldAccessExpr node id -> struct field index
	VariantIndex map[int]int // EnumInitExpr node id, or EnumPattern span start offset -> enum variant index

	// CallTarget carries the Monomorphization trait-resolver rewrite of
	// spec.md §4.7 step 5: a TraitCallExpr node id maps to the mangled
	// name of the impl method the Trait Solver selected for it, so a
	// backend can treat the call as a plain call to that name instead of
	// re-solving the trait dispatch itself. The IR holds a Function of
	// that name for every method of an impl without generic parameters of
	// its own; methods of a generic impl are not lowered.
	CallTarget map[int]string
}
