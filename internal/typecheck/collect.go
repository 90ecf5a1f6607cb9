package typecheck

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Collect runs spec.md §4.1's declaration-collection pass: register every
// struct, enum, trait, impl and top-level function into the Type
// Context, reporting a duplication error for any name declared twice.
// Grounded on the teacher's analyzer/declarations.go two-pass shape
// (collect signatures first, resolve bodies against the complete table
// second) — collection alone only needs signatures, so Ty resolution
// here is limited to declared shapes, not statement bodies.
func Collect(ctx *Context, prog *ast.Program) {
	for _, s := range prog.Structs {
		collectStruct(ctx, s)
	}
	for _, e := range prog.Enums {
		collectEnum(ctx, e)
	}
	// Struct/enum field and payload types may reference other
	// structs/enums declared anywhere in the file, so resolution happens
	// only after every name is registered.
	for _, s := range prog.Structs {
		resolveStructFields(ctx, s)
	}
	for _, e := range prog.Enums {
		resolveEnumVariants(ctx, e)
	}
	for _, t := range prog.Traits {
		collectTrait(ctx, t)
	}
	for _, fn := range prog.Functions {
		collectFunction(ctx, fn)
	}
	for _, impl := range prog.Impls {
		collectImpl(ctx, impl)
	}
}

func toGenericParams(decls []ast.GenericParamDecl) []typesystem.GenericParam {
	out := make([]typesystem.GenericParam, len(decls))
	for i, d := range decls {
		bound := ""
		if d.Bound != nil {
			bound = d.Bound.String()
		}
		out[i] = typesystem.GenericParam{Name: d.Name.Name, Bound: bound}
	}
	return out
}

func collectStruct(ctx *Context, s *ast.StructDecl) {
	name := s.Name.Name
	if _, dup := ctx.Structs[name]; dup {
		ctx.AddError(diagnostics.NewDuplicateError(diagnostics.ErrDuplicateType, s.Pos, name))
		return
	}
	ctx.Structs[name] = &typesystem.StructDef{
		Name:     name,
		Generics: toGenericParams(s.Generics),
		Pos:      s.Pos,
	}
}

func resolveStructFields(ctx *Context, s *ast.StructDecl) {
	def, ok := ctx.Structs[s.Name.Name]
	if !ok {
		return
	}
	fields := make([]typesystem.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		ty, ok := ctx.ResolveTy(f.Type, s.Pos)
		if !ok {
			continue
		}
		fields = append(fields, typesystem.Field{Name: f.Name.Name, Type: ty})
	}
	def.Fields = fields
}

func collectEnum(ctx *Context, e *ast.EnumDecl) {
	name := e.Name.Name
	if _, dup := ctx.Enums[name]; dup {
		ctx.AddError(diagnostics.NewDuplicateError(diagnostics.ErrDuplicateType, e.Pos, name))
		return
	}
	ctx.Enums[name] = &typesystem.EnumDef{
		Name:     name,
		Generics: toGenericParams(e.Generics),
		Pos:      e.Pos,
	}
}

func resolveEnumVariants(ctx *Context, e *ast.EnumDecl) {
	def, ok := ctx.Enums[e.Name.Name]
	if !ok {
		return
	}
	variants := make([]typesystem.Variant, 0, len(e.Variants))
	for _, v := range e.Variants {
		payload := make([]typesystem.Ty, 0, len(v.Payload))
		for _, p := range v.Payload {
			ty, ok := ctx.ResolveTy(p, e.Pos)
			if !ok {
				continue
			}
			payload = append(payload, ty)
		}
		variants = append(variants, typesystem.Variant{Name: v.Name.Name, Payload: payload})
	}
	def.Variants = variants
}

func collectTrait(ctx *Context, t *ast.TraitDecl) {
	name := t.Name.Name
	if _, dup := ctx.Traits[name]; dup {
		ctx.AddError(diagnostics.NewDuplicateError(diagnostics.ErrDuplicateType, t.Pos, name))
		return
	}
	info := &TraitInfo{
		Name:     name,
		Generics: toGenericParams(t.Generics),
		Methods:  make(map[string]*ast.Function),
		Pos:      t.Pos,
	}
	for _, m := range t.Methods {
		resolveSignature(ctx, m)
		info.Methods[m.Name.Name] = m
	}
	ctx.Traits[name] = info
}

func collectFunction(ctx *Context, fn *ast.Function) {
	name := fn.Name.Name
	if _, dup := ctx.FuncSpans[name]; dup {
		ctx.AddError(diagnostics.NewDuplicateError(diagnostics.ErrDuplicateFunction, fn.Pos, name))
		return
	}
	ctx.FuncSpans[name] = fn.Pos
	ctx.Functions[name] = fn
	resolveSignature(ctx, fn)
}

func resolveSignature(ctx *Context, fn *ast.Function) {
	for i := range fn.Params {
		if ty, ok := ctx.ResolveTy(fn.Params[i].Type, fn.Pos); ok {
			fn.Params[i].Type = ty
		}
	}
	if ty, ok := ctx.ResolveTy(fn.Ret, fn.Pos); ok {
		fn.Ret = ty
	}
}

func collectImpl(ctx *Context, impl *ast.ImplDecl) {
	traitName := impl.Trait.String()
	trait, ok := ctx.Traits[traitName]
	if !ok {
		ctx.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, impl.Pos, traitName))
		return
	}

	traitArgs, ok := ctx.resolveAll(impl.TraitArgs, impl.Pos)
	if !ok {
		return
	}
	if len(traitArgs) != len(trait.Generics) {
		ctx.AddError(diagnostics.NewGenericError(diagnostics.ErrGenericArgMismatch, impl.Pos, len(trait.Generics), len(traitArgs)))
		return
	}

	receiver, ok := ctx.ResolveTy(impl.Receiver, impl.Pos)
	if !ok {
		return
	}
	impl.Receiver = receiver
	for _, m := range impl.Methods {
		resolveSignature(ctx, m)
	}

	// Impls are keyed by [receiver, traitArgs...] so two impls of the
	// same trait for different receiver types don't collide, and a
	// lookup for "trait T applied to type R" is a single map access.
	key := append([]typesystem.Ty{receiver}, traitArgs...)

	if _, dup := ctx.LookupImpl(traitName, key); dup {
		ctx.AddError(diagnostics.NewDuplicateError(diagnostics.ErrDuplicateImpl, impl.Pos, traitName, ImplKey(key)))
		return
	}
	ctx.RegisterImpl(traitName, key, impl)
}
