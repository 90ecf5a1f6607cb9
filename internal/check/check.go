// Package check implements the Check pass (spec.md §4.3): walks every
// function's statements, validating assignment/return/argument type
// compatibility against the types Inference already recorded, checking
// if/while conditions are truthy-capable, and that every path through a
// non-void function reaches a return or exit.
//
// Grounded on the teacher's analyzer walker idiom: diagnostics are
// appended to the shared Context rather than returned, so one run
// surfaces every problem instead of stopping at the first.
package check

import (
	"sort"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/pattern"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Function validates one function body. Inference must already have run
// over the same fn so ctx.ExprTy is populated.
func Function(ctx *typecheck.Context, fn *ast.Function) {
	if fn.Body == nil {
		return
	}
	block(ctx, fn, fn.Body)

	if !typesystem.Equal(fn.Ret, typesystem.TyVoid) && !allPathsReturn(fn.Body.Stmts) {
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrNoReturnOnPath, fn.Pos, fn.Name.Name, fn.Ret.String()))
	}
}

func block(ctx *typecheck.Context, fn *ast.Function, b *ast.Block) {
	for _, stmt := range b.Stmts {
		statement(ctx, fn, stmt)
	}
}

func statement(ctx *typecheck.Context, fn *ast.Function, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		if s.Type != nil {
			valTy := ctx.ExprTy[s.Value.ID()]
			if !typesystem.Coerces(valTy, s.Type) {
				ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, s.Pos, s.Type.String(), valTy.String()))
			}
		}

	case *ast.AssignStmt:
		targetTy := ctx.ExprTy[s.Target.ID()]
		valTy := fillEnumGenerics(ctx, s.Pos, targetTy, ctx.ExprTy[s.Value.ID()])
		ctx.ExprTy[s.Value.ID()] = valTy
		if !typesystem.Coerces(valTy, targetTy) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, s.Pos, targetTy.String(), valTy.String()))
		}

	case *ast.CompoundAssignStmt:
		targetTy := ctx.ExprTy[s.Target.ID()]
		valTy := ctx.ExprTy[s.Value.ID()]
		folded, err := typesystem.FoldTy(targetTy, valTy, compoundOp(s.Op))
		if err != nil {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidOperator, s.Pos, compoundSymbol(s.Op), targetTy.String(), valTy.String()))
			break
		}
		if !typesystem.Coerces(folded, targetTy) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, s.Pos, targetTy.String(), folded.String()))
		}

	case *ast.ExprStmt:
		// Nothing further to check: Inference already validated the call.

	case *ast.IfStmt:
		checkCondition(ctx, s.Cond)
		block(ctx, fn, s.Then)
		if s.Else != nil {
			statement(ctx, fn, s.Else)
		}

	case *ast.WhileStmt:
		checkCondition(ctx, s.Cond)
		block(ctx, fn, s.Body)

	case *ast.MatchStmt:
		pattern.CheckMatch(ctx, s, ctx.ExprTy[s.Scrutinee.ID()])
		for _, arm := range s.Arms {
			block(ctx, fn, arm.Body)
		}

	case *ast.ReturnStmt:
		var valTy typesystem.Ty = typesystem.TyVoid
		if s.Value != nil {
			valTy = fillEnumGenerics(ctx, s.Pos, fn.Ret, ctx.ExprTy[s.Value.ID()])
			ctx.ExprTy[s.Value.ID()] = valTy
		}
		if !typesystem.Coerces(valTy, fn.Ret) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, s.Pos, fn.Ret.String(), valTy.String()))
		}

	case *ast.ExitStmt:
		// exit(code) terminates evaluation regardless of fn.Ret.

	case *ast.Block:
		block(ctx, fn, s)
	}
}

// fillEnumGenerics implements spec.md §4.3's generic-argument propagation
// on enum assignments/returns: when actual is Enum{name, gen} and one or
// more of gen's slots still holds the residual Generic placeholder
// Inference leaves behind for a variant whose payload didn't mention
// every declared generic, those slots are filled from declared's
// generics at the same index. A slot that's already concrete but
// disagrees with declared at that index is a type error, not a silent
// override.
func fillEnumGenerics(ctx *typecheck.Context, pos token.Span, declared, actual typesystem.Ty) typesystem.Ty {
	de, ok := declared.(typesystem.Enum)
	if !ok {
		return actual
	}
	ae, ok := actual.(typesystem.Enum)
	if !ok || ae.Name != de.Name || len(ae.Generics) != len(de.Generics) {
		return actual
	}
	filled := make([]typesystem.Ty, len(ae.Generics))
	for i, g := range ae.Generics {
		if !g.Concrete() {
			filled[i] = de.Generics[i]
			continue
		}
		if !typesystem.Equal(g, de.Generics[i]) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, pos, de.Generics[i].String(), g.String()))
		}
		filled[i] = g
	}
	return typesystem.Enum{Name: ae.Name, Generics: filled, Def: ae.Def}
}

func checkCondition(ctx *typecheck.Context, cond ast.Expression) {
	ty := ctx.ExprTy[cond.ID()]
	if !typesystem.Truthy(ty) {
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrConditionNotTruthy, cond.Span(), ty.String()))
	}
}

func compoundOp(op ast.CompoundAssignOp) typesystem.Operator {
	switch op {
	case ast.CompoundAdd:
		return typesystem.OpAdd
	case ast.CompoundSub:
		return typesystem.OpSub
	case ast.CompoundMul:
		return typesystem.OpMul
	default:
		return typesystem.OpDiv
	}
}

func compoundSymbol(op ast.CompoundAssignOp) string {
	switch op {
	case ast.CompoundAdd:
		return "+="
	case ast.CompoundSub:
		return "-="
	case ast.CompoundMul:
		return "*="
	default:
		return "/="
	}
}

// allPathsReturn reports whether every control path through stmts ends
// in a return or exit — spec.md §4.3's "function has return type T but
// no return statement" diagnostic trigger.
func allPathsReturn(stmts []ast.Statement) bool {
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.ReturnStmt, *ast.ExitStmt:
			return true
		case *ast.IfStmt:
			if s.Else == nil {
				continue
			}
			thenReturns := allPathsReturn(s.Then.Stmts)
			var elseReturns bool
			switch e := s.Else.(type) {
			case *ast.Block:
				elseReturns = allPathsReturn(e.Stmts)
			case *ast.IfStmt:
				elseReturns = allPathsReturn([]ast.Statement{e})
			}
			if thenReturns && elseReturns {
				return true
			}
		case *ast.MatchStmt:
			allArms := len(s.Arms) > 0
			for _, arm := range s.Arms {
				if !allPathsReturn(arm.Body.Stmts) {
					allArms = false
					break
				}
			}
			if allArms {
				return true
			}
		case *ast.Block:
			if allPathsReturn(s.Stmts) {
				return true
			}
		}
	}
	return false
}

// EmitUnusedWarnings reports every local binding Inference never saw a
// read for. Called once after Inference has run over the whole program,
// since ctx.UnusedVars accumulates across every function's scope.
func EmitUnusedWarnings(ctx *typecheck.Context) {
	ids := make([]int, 0, len(ctx.UnusedVars))
	for id := range ctx.UnusedVars {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		name := ctx.UnusedVars[id]
		ctx.AddWarning(diagnostics.NewWarning(diagnostics.WarnUnusedVariable, name.Pos, name.Name))
	}
}
