// Package pattern implements the Pattern Checker (spec.md §4.6):
// type-directed validation that every match arm's pattern actually fits
// the scrutinee's type, plus enum match exhaustiveness.
package pattern

import (
	"strings"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// CheckMatch validates every arm's pattern against scrutinee's type and,
// when scrutinee is an enum, that every variant is covered by some arm
// (directly, or via a catch-all wildcard/binding pattern).
func CheckMatch(ctx *typecheck.Context, m *ast.MatchStmt, scrutinee typesystem.Ty) {
	covered := make(map[string]bool)
	catchAll := false

	for _, arm := range m.Arms {
		Check(ctx, arm.Pattern, scrutinee)
		switch p := arm.Pattern.(type) {
		case *ast.EnumPattern:
			covered[p.Variant.Name] = true
		case *ast.WildcardPattern, *ast.BindingPattern:
			catchAll = true
		}
	}

	if catchAll {
		return
	}
	enumTy, ok := scrutinee.(typesystem.Enum)
	if !ok {
		return
	}
	var missing []string
	for _, v := range enumTy.Def.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrNonExhaustiveMatch, m.Pos, strings.Join(missing, ", ")))
	}
}

// Check validates one pattern against the type it's matched against,
// recursing into enum payloads and array elements.
func Check(ctx *typecheck.Context, pat ast.Pattern, ty typesystem.Ty) {
	switch p := pat.(type) {
	case *ast.WildcardPattern, *ast.BindingPattern:
		// Matches anything.

	case *ast.LiteralPattern:
		litTy := literalType(p.Value)
		if !typesystem.Equal(litTy, ty) && !typesystem.Coerces(litTy, ty) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidMatchType, p.Pos, ty.String()))
		}

	case *ast.EnumPattern:
		enumTy, ok := ty.(typesystem.Enum)
		if !ok {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidMatchType, p.Pos, ty.String()))
			return
		}
		variant, _, ok := enumTy.Def.Variant(p.Variant.Name)
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUnknownVariant, p.Pos, enumTy.Name, p.Variant.Name))
			return
		}
		subst := typesystem.Subst{}
		for i, g := range enumTy.Def.Generics {
			if i < len(enumTy.Generics) {
				subst[g.Name] = enumTy.Generics[i]
			}
		}
		for i, sub := range p.Subs {
			if i >= len(variant.Payload) {
				break
			}
			Check(ctx, sub, variant.Payload[i].Apply(subst))
		}

	case *ast.ArrayPattern:
		arr, ok := ty.(typesystem.Array)
		if !ok || arr.Size != len(p.Elements) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidMatchType, p.Pos, ty.String()))
			return
		}
		for _, sub := range p.Elements {
			Check(ctx, sub, arr.Element)
		}
	}
}

func literalType(e ast.Expression) typesystem.Ty {
	switch e.(type) {
	case *ast.IntLit:
		return typesystem.TyInt
	case *ast.FloatLit:
		return typesystem.TyFloat
	case *ast.CharLit:
		return typesystem.TyChar
	case *ast.StringLit:
		return typesystem.TyString
	case *ast.BoolLit:
		return typesystem.TyBool
	}
	return typesystem.TyVoid
}
