// Package infer implements the Inference pass (spec.md §4.2): a single
// bottom-up walk over every expression in a function body, assigning
// each one a type in the Type Context's expr_ty table. It does not
// itself enforce assignment/return/condition compatibility — that's the
// Check pass's job, reusing the types Inference already computed.
//
// Grounded on the teacher's analyzer walker (mcgru-funxy/internal/
// analyzer/analyzer.go, patterns.go): a type-switch over AST node kinds,
// collecting diagnostics onto a shared sink instead of returning early.
package infer

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Function runs Inference over one function's body: parameters are
// declared into the root scope, then every statement is walked.
func Function(ctx *typecheck.Context, fn *ast.Function) {
	if fn.Body == nil {
		return
	}
	scope := typecheck.NewScope(nil)
	for _, p := range fn.Params {
		scope.Declare(p.Name, p.Type)
	}
	Block(ctx, scope, fn.Body)
}

func Block(ctx *typecheck.Context, parent *typecheck.Scope, b *ast.Block) {
	scope := typecheck.NewScope(parent)
	for _, stmt := range b.Stmts {
		Statement(ctx, scope, stmt)
	}
}

func Statement(ctx *typecheck.Context, scope *typecheck.Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		valTy := Expr(ctx, scope, s.Value)
		declTy := s.Type
		if declTy == nil {
			declTy = valTy
		} else if resolved, ok := ctx.ResolveTy(declTy, s.Pos); ok {
			declTy = resolved
		}
		scope.Declare(s.Name, declTy)
		ctx.UnusedVars[s.Name.ID] = s.Name

	case *ast.AssignStmt:
		Expr(ctx, scope, s.Target)
		Expr(ctx, scope, s.Value)

	case *ast.CompoundAssignStmt:
		Expr(ctx, scope, s.Target)
		Expr(ctx, scope, s.Value)

	case *ast.ExprStmt:
		Expr(ctx, scope, s.Expr)

	case *ast.IfStmt:
		Expr(ctx, scope, s.Cond)
		Block(ctx, scope, s.Then)
		if s.Else != nil {
			Statement(ctx, scope, s.Else)
		}

	case *ast.WhileStmt:
		Expr(ctx, scope, s.Cond)
		Block(ctx, scope, s.Body)

	case *ast.MatchStmt:
		scrutTy := Expr(ctx, scope, s.Scrutinee)
		for _, arm := range s.Arms {
			armScope := typecheck.NewScope(scope)
			BindPattern(ctx, armScope, arm.Pattern, scrutTy)
			Block(ctx, armScope, arm.Body)
		}

	case *ast.ReturnStmt:
		if s.Value != nil {
			Expr(ctx, scope, s.Value)
		}

	case *ast.ExitStmt:
		Expr(ctx, scope, s.Code)

	case *ast.Block:
		Block(ctx, scope, s)
	}
}

// BindPattern binds the variables a pattern introduces into scope,
// deferring shape-vs-type validation to the Pattern Checker pass —
// Inference only needs to know each binding's type so later expressions
// in the arm resolve correctly.
func BindPattern(ctx *typecheck.Context, scope *typecheck.Scope, pat ast.Pattern, scrutinee typesystem.Ty) {
	switch p := pat.(type) {
	case *ast.BindingPattern:
		scope.Declare(p.Name, scrutinee)
		ctx.UnusedVars[p.Name.ID] = p.Name
	case *ast.EnumPattern:
		def, _, ok := enumDefOf(scrutinee)
		if !ok {
			return
		}
		variant, _, ok := def.Variant(p.Variant.Name)
		if !ok {
			return
		}
		sub := substForEnum(scrutinee, def)
		for i, subPat := range p.Subs {
			if i >= len(variant.Payload) {
				break
			}
			BindPattern(ctx, scope, subPat, variant.Payload[i].Apply(sub))
		}
	case *ast.ArrayPattern:
		arr, ok := scrutinee.(typesystem.Array)
		if !ok {
			return
		}
		for _, subPat := range p.Elements {
			BindPattern(ctx, scope, subPat, arr.Element)
		}
	}
}

func enumDefOf(t typesystem.Ty) (*typesystem.EnumDef, typesystem.Enum, bool) {
	if e, ok := t.(typesystem.Enum); ok {
		return e.Def, e, true
	}
	if r, ok := t.(typesystem.Ref); ok {
		return enumDefOf(r.Elem)
	}
	return nil, typesystem.Enum{}, false
}

func substForEnum(t typesystem.Ty, def *typesystem.EnumDef) typesystem.Subst {
	e, ok := t.(typesystem.Enum)
	if !ok {
		return typesystem.Subst{}
	}
	s := typesystem.Subst{}
	for i, g := range def.Generics {
		if i < len(e.Generics) {
			s[g.Name] = e.Generics[i]
		}
	}
	return s
}

// Expr infers and records the type of e, returning it for the caller to
// use inline (e.g. a binary expression's operand types).
func Expr(ctx *typecheck.Context, scope *typecheck.Scope, e ast.Expression) typesystem.Ty {
	ty := inferExpr(ctx, scope, e)
	if ty == nil {
		ty = typesystem.TyVoid
	}
	ctx.ExprTy[e.ID()] = ty
	return ty
}

func inferExpr(ctx *typecheck.Context, scope *typecheck.Scope, e ast.Expression) typesystem.Ty {
	switch e := e.(type) {
	case *ast.IdentExpr:
		if ty, id, ok := scope.Lookup(e.Name.Name); ok {
			delete(ctx.UnusedVars, id.ID)
			return ty
		}
		if ty, ok := ctx.Globals[e.Name.Name]; ok {
			return ty
		}
		ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredVariable, e.Pos, e.Name.Name))
		return typesystem.TyVoid

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

	case *ast.DerefExpr:
		operand := Expr(ctx, scope, e.Operand)
		if p, ok := operand.(typesystem.Ptr); ok {
			return p.Elem
		}
		if r, ok := operand.(typesystem.Ref); ok {
			return r.Elem
		}
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrNotDereferenceable, e.Pos, operand.String()))
		return typesystem.TyVoid

	case *ast.AddressOfExpr:
		operand := Expr(ctx, scope, e.Operand)
		return typesystem.Ptr{Elem: operand}

	case *ast.IndexExpr:
		arrTy := Expr(ctx, scope, e.Array)
		Expr(ctx, scope, e.Index)
		if arr, ok := arrTy.(typesystem.Array); ok {
			return arr.Element
		}
		ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrNotIndexable, e.Pos, arrTy.String()))
		return typesystem.TyVoid

	case *ast.UnaryExpr:
		return inferUnary(ctx, e, Expr(ctx, scope, e.Operand))

	case *ast.BinaryExpr:
		lhs := Expr(ctx, scope, e.Left)
		rhs := Expr(ctx, scope, e.Right)
		ty, err := typesystem.FoldTy(lhs, rhs, e.Op)
		if err != nil {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidOperator, e.Pos, opSymbol(e.Op), lhs.String(), rhs.String()))
			return typesystem.TyVoid
		}
		return ty

	case *ast.CallExpr:
		argTys := make([]typesystem.Ty, len(e.Args))
		for i, a := range e.Args {
			argTys[i] = Expr(ctx, scope, a)
		}
		fn, ok := ctx.Functions[e.Callee.Name]
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredFunction, e.Pos, e.Callee.Name))
			return typesystem.TyVoid
		}
		ctx.FuncRefs[e.ID()] = fn
		if len(e.Args) != len(fn.Params) {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrWrongArgCount, e.Pos, fn.Name.Name, len(fn.Params), len(e.Args)))
		}
		return substituteCallReturn(fn, argTys)

	case *ast.TraitCallExpr:
		for _, a := range e.Args {
			Expr(ctx, scope, a)
		}
		trait, ok := ctx.Traits[e.Trait.String()]
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, e.Pos, e.Trait.String()))
			return typesystem.TyVoid
		}
		method, ok := trait.Methods[e.Method.Name]
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredFunction, e.Pos, e.Method.Name))
			return typesystem.TyVoid
		}
		return method.Ret

	case *ast.FieldAccessExpr:
		recvTy := Expr(ctx, scope, e.Receiver)
		def, subst, ok := structDefOf(recvTy)
		if !ok {
			ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrNotIndexable, e.Pos, recvTy.String()))
			return typesystem.TyVoid
		}
		idx, ok := def.FieldIndex(e.Field.Name)
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUnknownField, e.Pos, def.Name, e.Field.Name))
			return typesystem.TyVoid
		}
		return def.Fields[idx].Type.Apply(subst)

	case *ast.StructInitExpr:
		def, ok := ctx.Structs[e.Type.String()]
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, e.Pos, e.Type.String()))
			return typesystem.TyVoid
		}
		subst := typesystem.Subst{}
		for i, g := range def.Generics {
			if i < len(e.Args) {
				subst[g.Name] = e.Args[i]
			}
		}
		for _, f := range e.Fields {
			fieldTy := Expr(ctx, scope, f.Value)
			if idx, ok := def.FieldIndex(f.Name.Name); ok {
				declared := def.Fields[idx].Type.Apply(subst)
				if concrete, name, ok := typesystem.PeelOut(fieldTy, declared); ok {
					subst[name] = concrete
				}
			}
		}
		generics := make([]typesystem.Ty, len(def.Generics))
		for i, g := range def.Generics {
			if t, ok := subst[g.Name]; ok {
				generics[i] = t
			} else if i < len(e.Args) {
				generics[i] = e.Args[i]
			} else {
				generics[i] = typesystem.Generic{Name: g.Name, Bound: g.Bound}
			}
		}
		return typesystem.Struct{Name: def.Name, Generics: generics, Def: def}

	case *ast.EnumInitExpr:
		def, ok := ctx.Enums[e.Enum.String()]
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, e.Pos, e.Enum.String()))
			return typesystem.TyVoid
		}
		variant, _, ok := def.Variant(e.Variant.Name)
		if !ok {
			ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUnknownVariant, e.Pos, def.Name, e.Variant.Name))
			return typesystem.TyVoid
		}
		subst := typesystem.Subst{}
		for i, g := range def.Generics {
			if i < len(e.Args) {
				subst[g.Name] = e.Args[i]
			}
		}
		for i, payloadExpr := range e.Payload {
			payloadTy := Expr(ctx, scope, payloadExpr)
			if i < len(variant.Payload) {
				declared := variant.Payload[i].Apply(subst)
				if concrete, name, ok := typesystem.PeelOut(payloadTy, declared); ok {
					subst[name] = concrete
				}
			}
		}
		generics := make([]typesystem.Ty, len(def.Generics))
		for i, g := range def.Generics {
			if t, ok := subst[g.Name]; ok {
				generics[i] = t
			} else if i < len(e.Args) {
				generics[i] = e.Args[i]
			} else {
				generics[i] = typesystem.Generic{Name: g.Name, Bound: g.Bound}
			}
		}
		return typesystem.Enum{Name: def.Name, Generics: generics, Def: def}

	case *ast.ArrayInitExpr:
		var elem typesystem.Ty = typesystem.TyVoid
		for i, el := range e.Elements {
			elTy := Expr(ctx, scope, el)
			if i == 0 {
				elem = elTy
				continue
			}
			if _, err := typesystem.Unify(elem, elTy); err != nil {
				ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrTypeMismatch, e.Pos, elem.String(), elTy.String()))
			}
		}
		return typesystem.Array{Size: len(e.Elements), Element: elem}
	}
	return typesystem.TyVoid
}

// substituteCallReturn implements spec.md §4.2's call inference rule:
// infer missing type arguments from the actual arguments' types by
// peeling each one out against the corresponding declared parameter
// type, then substitute those bindings into the declared return type.
// Grounded on the same peel_out-over-params shape
// generic.inferCallGenericArgs uses to request a monomorphization for
// this same call site.
func substituteCallReturn(fn *ast.Function, argTys []typesystem.Ty) typesystem.Ty {
	if len(fn.Generics) == 0 {
		return fn.Ret
	}
	subst := typesystem.Subst{}
	for i, param := range fn.Params {
		if i >= len(argTys) {
			break
		}
		if concrete, name, ok := typesystem.PeelOut(argTys[i], param.Type); ok {
			subst[name] = concrete
		}
	}
	return fn.Ret.Apply(subst)
}

func structDefOf(t typesystem.Ty) (*typesystem.StructDef, typesystem.Subst, bool) {
	switch t := t.(type) {
	case typesystem.Struct:
		s := typesystem.Subst{}
		for i, g := range t.Def.Generics {
			if i < len(t.Generics) {
				s[g.Name] = t.Generics[i]
			}
		}
		return t.Def, s, true
	case typesystem.Ref:
		return structDefOf(t.Elem)
	case typesystem.Ptr:
		return structDefOf(t.Elem)
	}
	return nil, nil, false
}

func inferUnary(ctx *typecheck.Context, e *ast.UnaryExpr, operand typesystem.Ty) typesystem.Ty {
	p, ok := operand.(typesystem.Primitive)
	switch e.Op {
	case ast.UnaryNeg:
		if ok && (p.Kind == typesystem.Int || p.Kind == typesystem.Float) {
			return operand
		}
	case ast.UnaryNot:
		if ok && p.Kind == typesystem.Bool {
			return operand
		}
	case ast.UnaryBitNot:
		if ok && p.Kind == typesystem.Int {
			return operand
		}
	}
	ctx.AddError(diagnostics.NewTypeError(diagnostics.ErrInvalidOperator, e.Pos, "unary", operand.String(), ""))
	return typesystem.TyVoid
}

func opSymbol(op typesystem.Operator) string {
	names := map[typesystem.Operator]string{
		typesystem.OpAdd: "+", typesystem.OpSub: "-", typesystem.OpMul: "*", typesystem.OpDiv: "/",
		typesystem.OpMod: "%", typesystem.OpBitAnd: "&", typesystem.OpBitOr: "|", typesystem.OpBitXor: "^",
		typesystem.OpShl: "<<", typesystem.OpShr: ">>", typesystem.OpLogAnd: "&&", typesystem.OpLogOr: "||",
		typesystem.OpEq: "==", typesystem.OpNeq: "!=", typesystem.OpLt: "<", typesystem.OpGt: ">",
		typesystem.OpLte: "<=", typesystem.OpGte: ">=",
	}
	return names[op]
}
