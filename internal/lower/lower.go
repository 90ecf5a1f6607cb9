// Package lower implements Lowering and Monomorphization (spec.md §4.7):
// non-generic functions, and the methods of impls that declare no generic
// parameters of their own, lower directly; generic functions, structs and
// enums lower once per concrete instantiation the Generic Resolver
// discovered, each instantiation getting its own mangled name and its
// own substituted expr-type table. Field accesses are resolved to
// numeric indices and enum patterns/constructors to numeric variant
// indices along the way.
//
// The descent is a worklist, not a single recursive pass: lowering a
// generic function's body can reveal a call to another generic
// function (or another instantiation of the same one), which pushes a
// new entry onto the Generic Resolver's queue. This mirrors the
// malphas-lang mir/monomorphize.go fixed-point Monomorphize() loop.
package lower

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/generic"
	"github.com/funvibe/enumc/internal/ir"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Lower runs the full Lowering + Monomorphization pass.
func Lower(ctx *typecheck.Context, resolver *generic.Resolver, prog *ast.Program) *ir.Program {
	out := &ir.Program{}

	for _, fn := range prog.Functions {
		if len(fn.Generics) == 0 {
			out.Functions = append(out.Functions, lowerFunction(ctx, resolver, fn, fn.Name.Name, nil))
		}
	}
	for _, impl := range prog.Impls {
		if len(impl.Generics) > 0 {
			continue
		}
		for _, m := range impl.Methods {
			name := MangleName(m.Name.Name, []typesystem.Ty{impl.Receiver})
			out.Functions = append(out.Functions, lowerFunction(ctx, resolver, m, name, nil))
		}
	}

	for {
		id, inst, ok := resolver.Next()
		if !ok {
			break
		}
		if resolver.IsResolved(id) {
			continue
		}
		resolver.MarkResolved(id)

		if fn, ok := ctx.Functions[inst.Item]; ok && len(fn.Generics) > 0 {
			subst := substFor(fn.Generics, inst.Args)
			name := MangleName(fn.Name.Name, inst.Args)
			out.Functions = append(out.Functions, lowerFunction(ctx, resolver, fn, name, subst))
			continue
		}
		if def, ok := ctx.Structs[inst.Item]; ok {
			subst := substForParams(def.Generics, inst.Args)
			out.Structs = append(out.Structs, &ir.Struct{
				Name:   MangleName(def.Name, inst.Args),
				Fields: applyFields(def.Fields, subst),
			})
			continue
		}
		if def, ok := ctx.Enums[inst.Item]; ok {
			subst := substForParams(def.Generics, inst.Args)
			out.Enums = append(out.Enums, &ir.Enum{
				Name:     MangleName(def.Name, inst.Args),
				Variants: applyVariants(def.Variants, subst),
			})
		}
	}

	return out
}

func substFor(generics []ast.GenericParamDecl, args []typesystem.Ty) typesystem.Subst {
	s := typesystem.Subst{}
	for i, g := range generics {
		if i < len(args) {
			s[g.Name.Name] = args[i]
		}
	}
	return s
}

func substForParams(params []typesystem.GenericParam, args []typesystem.Ty) typesystem.Subst {
	s := typesystem.Subst{}
	for i, g := range params {
		if i < len(args) {
			s[g.Name] = args[i]
		}
	}
	return s
}

func applyFields(fields []typesystem.Field, s typesystem.Subst) []typesystem.Field {
	out := make([]typesystem.Field, len(fields))
	for i, f := range fields {
		out[i] = typesystem.Field{Name: f.Name, Type: f.Type.Apply(s)}
	}
	return out
}

func applyVariants(variants []typesystem.Variant, s typesystem.Subst) []typesystem.Variant {
	out := make([]typesystem.Variant, len(variants))
	for i, v := range variants {
		payload := make([]typesystem.Ty, len(v.Payload))
		for j, p := range v.Payload {
			payload[j] = p.Apply(s)
		}
		out[i] = typesystem.Variant{Name: v.Name, Payload: payload}
	}
	return out
}

func lowerFunction(ctx *typecheck.Context, resolver *generic.Resolver, fn *ast.Function, name string, subst typesystem.Subst) *ir.Function {
	params := make([]ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		ty := p.Type
		if subst != nil {
			ty = ty.Apply(subst)
		}
		params[i] = ir.Param{Name: p.Name.Name, Type: ty}
	}
	ret := fn.Ret
	if subst != nil {
		ret = ret.Apply(subst)
	}

	irFn := &ir.Function{
		Name:         name,
		Params:       params,
		Ret:          ret,
		Body:         fn.Body,
		ExprTy:       make(map[int]typesystem.Ty),
		FieldIndex:   make(map[int]int),
		VariantIndex: make(map[int]int),
		CallTarget:   make(map[int]string),
	}
	if fn.Body != nil {
		walkBlock(ctx, resolver, subst, irFn, fn.Body)
	}
	return irFn
}

func walkBlock(ctx *typecheck.Context, resolver *generic.Resolver, subst typesystem.Subst, out *ir.Function, b *ast.Block) {
	for _, s := range b.Stmts {
		walkStatement(ctx, resolver, subst, out, s)
	}
}

func walkStatement(ctx *typecheck.Context, resolver *generic.Resolver, subst typesystem.Subst, out *ir.Function, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		walkExpr(ctx, resolver, subst, out, s.Value)
	case *ast.AssignStmt:
		walkExpr(ctx, resolver, subst, out, s.Target)
		walkExpr(ctx, resolver, subst, out, s.Value)
	case *ast.CompoundAssignStmt:
		walkExpr(ctx, resolver, subst, out, s.Target)
		walkExpr(ctx, resolver, subst, out, s.Value)
	case *ast.ExprStmt:
		walkExpr(ctx, resolver, subst, out, s.Expr)
	case *ast.IfStmt:
		walkExpr(ctx, resolver, subst, out, s.Cond)
		walkBlock(ctx, resolver, subst, out, s.Then)
		if s.Else != nil {
			walkStatement(ctx, resolver, subst, out, s.Else)
		}
	case *ast.WhileStmt:
		walkExpr(ctx, resolver, subst, out, s.Cond)
		walkBlock(ctx, resolver, subst, out, s.Body)
	case *ast.MatchStmt:
		walkExpr(ctx, resolver, subst, out, s.Scrutinee)
		scrutTy := exprType(ctx, subst, s.Scrutinee)
		for _, arm := range s.Arms {
			walkPattern(out, scrutTy, arm.Pattern)
			walkBlock(ctx, resolver, subst, out, arm.Body)
		}
	case *ast.ReturnStmt:
		if s.Value != nil {
			walkExpr(ctx, resolver, subst, out, s.Value)
		}
	case *ast.ExitStmt:
		walkExpr(ctx, resolver, subst, out, s.Code)
	case *ast.Block:
		walkBlock(ctx, resolver, subst, out, s)
	}
}

func exprType(ctx *typecheck.Context, subst typesystem.Subst, e ast.Expression) typesystem.Ty {
	ty := ctx.ExprTy[e.ID()]
	if ty == nil {
		return typesystem.TyVoid
	}
	if subst != nil {
		ty = ty.Apply(subst)
	}
	return ty
}

func walkPattern(out *ir.Function, scrutinee typesystem.Ty, pat ast.Pattern) {
	if p, ok := pat.(*ast.EnumPattern); ok {
		if e, ok := scrutinee.(typesystem.Enum); ok {
			if _, idx, ok := e.Def.Variant(p.Variant.Name); ok {
				out.VariantIndex[p.Span().Start] = idx
			}
		}
	}
}

func walkExpr(ctx *typecheck.Context, resolver *generic.Resolver, subst typesystem.Subst, out *ir.Function, e ast.Expression) {
	ty := exprType(ctx, subst, e)
	out.ExprTy[e.ID()] = ty

	switch e := e.(type) {
	case *ast.DerefExpr:
		walkExpr(ctx, resolver, subst, out, e.Operand)
	case *ast.AddressOfExpr:
		walkExpr(ctx, resolver, subst, out, e.Operand)
	case *ast.IndexExpr:
		walkExpr(ctx, resolver, subst, out, e.Array)
		walkExpr(ctx, resolver, subst, out, e.Index)
	case *ast.UnaryExpr:
		walkExpr(ctx, resolver, subst, out, e.Operand)
	case *ast.BinaryExpr:
		walkExpr(ctx, resolver, subst, out, e.Left)
		walkExpr(ctx, resolver, subst, out, e.Right)
	case *ast.CallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, resolver, subst, out, a)
		}
		if fn, ok := ctx.FuncRefs[e.ID()]; ok && len(fn.Generics) > 0 && subst != nil {
			if args, ok := reresolveCallArgs(ctx, subst, fn, e); ok {
				resolver.Request(fn.Name.Name, args)
			}
		}
	case *ast.TraitCallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, resolver, subst, out, a)
		}
		if target, ok := resolveTraitCallTarget(ctx, subst, e); ok {
			out.CallTarget[e.ID()] = target
		}
	case *ast.FieldAccessExpr:
		walkExpr(ctx, resolver, subst, out, e.Receiver)
		recvTy := exprType(ctx, subst, e.Receiver)
		if def, ok := structDefOf(recvTy); ok {
			if idx, ok := def.FieldIndex(e.Field.Name); ok {
				out.FieldIndex[e.ID()] = idx
			}
		}
	case *ast.StructInitExpr:
		for _, f := range e.Fields {
			walkExpr(ctx, resolver, subst, out, f.Value)
		}
	case *ast.EnumInitExpr:
		for _, p := range e.Payload {
			walkExpr(ctx, resolver, subst, out, p)
		}
		if en, ok := ty.(typesystem.Enum); ok {
			if _, idx, ok := en.Def.Variant(e.Variant.Name); ok {
				out.VariantIndex[e.ID()] = idx
			}
		}
	case *ast.ArrayInitExpr:
		for _, el := range e.Elements {
			walkExpr(ctx, resolver, subst, out, el)
		}
	}
}

// resolveTraitCallTarget implements the Monomorphization trait-resolver
// rewrite of spec.md §4.7 step 5: replace a trait call by a plain call
// whose path is the mangled impl name. The Trait Solver already recorded
// a non-dependent resolution on ctx.TraitImpls; a dependent call (one
// whose receiver was still a generic parameter at solve time) is
// re-resolved here now that subst supplies this instantiation's concrete
// receiver type.
func resolveTraitCallTarget(ctx *typecheck.Context, subst typesystem.Subst, e *ast.TraitCallExpr) (string, bool) {
	impl, ok := ctx.TraitImpls[e.ID()]
	if !ok {
		if len(e.Args) == 0 {
			return "", false
		}
		receiver := exprType(ctx, subst, e.Args[0])
		impl, ok = ctx.LookupImpl(e.Trait.String(), []typesystem.Ty{receiver})
		if !ok {
			return "", false
		}
	}
	method := implMethod(impl, e.Method.Name)
	if method == nil {
		return "", false
	}
	receiver := impl.Receiver
	if subst != nil {
		receiver = receiver.Apply(subst)
	}
	return MangleName(method.Name.Name, []typesystem.Ty{receiver}), true
}

func implMethod(impl *ast.ImplDecl, name string) *ast.Function {
	for _, m := range impl.Methods {
		if m.Name.Name == name {
			return m
		}
	}
	return nil
}

func structDefOf(t typesystem.Ty) (*typesystem.StructDef, bool) {
	switch t := t.(type) {
	case typesystem.Struct:
		return t.Def, true
	case typesystem.Ref:
		return structDefOf(t.Elem)
	case typesystem.Ptr:
		return structDefOf(t.Elem)
	}
	return nil, false
}

// reresolveCallArgs recomputes a nested generic call's concrete type
// arguments once the enclosing function's own generics are already
// substituted, so a call like `inner::<T>(x)` inside `outer<T>` becomes
// `inner::<int>(x)` once outer is instantiated at T=int.
func reresolveCallArgs(ctx *typecheck.Context, outerSubst typesystem.Subst, fn *ast.Function, call *ast.CallExpr) ([]typesystem.Ty, bool) {
	bound := make(map[string]typesystem.Ty)
	for i, param := range fn.Params {
		if i >= len(call.Args) {
			break
		}
		actual := exprType(ctx, outerSubst, call.Args[i])
		if concrete, name, ok := typesystem.PeelOut(actual, param.Type); ok {
			bound[name] = concrete
		}
	}
	args := make([]typesystem.Ty, len(fn.Generics))
	for i, g := range fn.Generics {
		t, ok := bound[g.Name.Name]
		if !ok {
			return nil, false
		}
		args[i] = t
	}
	return args, true
}
