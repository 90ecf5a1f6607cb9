// Package traitsolver implements the Trait Solver (spec.md §4.5):
// resolving a `Trait::method(receiver, ...)` call to the concrete impl
// that provides it, in three steps — find the trait, determine the
// concrete type arguments (receiver type plus any further trait
// generics), and look the impl up in the Context's tuple-keyed impls
// table. A receiver whose type is still a generic parameter at this
// call site is a dependent call: the Trait Solver can only check the
// generic's declared bound names this trait, deferring the exact impl
// to whichever monomorphized instantiation eventually supplies a
// concrete receiver type.
package traitsolver

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Resolution is the outcome of solving one trait call site.
type Resolution struct {
	Impl      *ast.ImplDecl // nil when Dependent
	Dependent bool          // true if resolution waits for monomorphization
}

// Resolve solves one TraitCallExpr against the receiver type Inference
// already recorded for call.Args[0].
func Resolve(ctx *typecheck.Context, call *ast.TraitCallExpr) *Resolution {
	traitName := call.Trait.String()
	if _, ok := ctx.Traits[traitName]; !ok {
		ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, call.Pos, traitName))
		return nil
	}

	if len(call.Args) == 0 {
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrWrongArgCount, call.Pos, call.Method.Name, 1, 0))
		return nil
	}
	receiver := ctx.ExprTy[call.Args[0].ID()]

	if g, ok := receiver.(typesystem.Generic); ok {
		if g.Bound != traitName {
			ctx.AddError(diagnostics.NewGenericError(diagnostics.ErrUnboundGeneric, call.Pos, g.Name))
			return nil
		}
		return &Resolution{Dependent: true}
	}

	key := []typesystem.Ty{receiver}
	impl, ok := ctx.LookupImpl(traitName, key)
	if !ok {
		ctx.AddError(diagnostics.NewGenericError(diagnostics.ErrNoTraitImpl, call.Pos, traitName, receiver.String()))
		return nil
	}
	return &Resolution{Impl: impl}
}

// ResolveAll walks the trait calls in every top-level function and impl
// method body (trait default-method bodies are not walked), recording each
// non-dependent resolution's chosen impl onto the Context's TraitImpls
// table (keyed by the call expression's node id) so Lowering doesn't
// need to re-solve them. A dependent call (receiver still a generic
// parameter at this point) is left unrecorded; Lowering re-resolves
// those once monomorphization substitutes a concrete receiver.
func ResolveAll(ctx *typecheck.Context, prog *ast.Program) {
	for _, fn := range prog.Functions {
		if fn.Body != nil {
			walkBlock(ctx, fn.Body)
		}
	}
	for _, impl := range prog.Impls {
		for _, m := range impl.Methods {
			if m.Body != nil {
				walkBlock(ctx, m.Body)
			}
		}
	}
}

func walkBlock(ctx *typecheck.Context, b *ast.Block) {
	for _, s := range b.Stmts {
		walkStatement(ctx, s)
	}
}

func walkStatement(ctx *typecheck.Context, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		walkExpr(ctx, s.Value)
	case *ast.AssignStmt:
		walkExpr(ctx, s.Target)
		walkExpr(ctx, s.Value)
	case *ast.CompoundAssignStmt:
		walkExpr(ctx, s.Target)
		walkExpr(ctx, s.Value)
	case *ast.ExprStmt:
		walkExpr(ctx, s.Expr)
	case *ast.IfStmt:
		walkExpr(ctx, s.Cond)
		walkBlock(ctx, s.Then)
		if s.Else != nil {
			walkStatement(ctx, s.Else)
		}
	case *ast.WhileStmt:
		walkExpr(ctx, s.Cond)
		walkBlock(ctx, s.Body)
	case *ast.MatchStmt:
		walkExpr(ctx, s.Scrutinee)
		for _, arm := range s.Arms {
			walkBlock(ctx, arm.Body)
		}
	case *ast.ReturnStmt:
		if s.Value != nil {
			walkExpr(ctx, s.Value)
		}
	case *ast.ExitStmt:
		walkExpr(ctx, s.Code)
	case *ast.Block:
		walkBlock(ctx, s)
	}
}

func walkExpr(ctx *typecheck.Context, e ast.Expression) {
	switch e := e.(type) {
	case *ast.DerefExpr:
		walkExpr(ctx, e.Operand)
	case *ast.AddressOfExpr:
		walkExpr(ctx, e.Operand)
	case *ast.IndexExpr:
		walkExpr(ctx, e.Array)
		walkExpr(ctx, e.Index)
	case *ast.UnaryExpr:
		walkExpr(ctx, e.Operand)
	case *ast.BinaryExpr:
		walkExpr(ctx, e.Left)
		walkExpr(ctx, e.Right)
	case *ast.CallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, a)
		}
	case *ast.TraitCallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, a)
		}
		if res := Resolve(ctx, e); res != nil && res.Impl != nil {
			ctx.TraitImpls[e.ID()] = res.Impl
		}
	case *ast.FieldAccessExpr:
		walkExpr(ctx, e.Receiver)
	case *ast.StructInitExpr:
		for _, f := range e.Fields {
			walkExpr(ctx, f.Value)
		}
	case *ast.EnumInitExpr:
		for _, p := range e.Payload {
			walkExpr(ctx, p)
		}
	case *ast.ArrayInitExpr:
		for _, el := range e.Elements {
			walkExpr(ctx, el)
		}
	}
}
