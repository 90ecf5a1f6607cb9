// Package generic implements the Generic Resolver (spec.md §4.4): it
// discovers every concrete instantiation a generic function, struct or
// enum is used at, assigns each one a stable instance id, and exposes a
// worklist Lowering drains — because lowering a generic function's body
// can itself call another generic function, new instantiations keep
// appearing while Lowering is still consuming old ones, so this is a
// fixed-point worklist rather than a single pass.
//
// Grounded on the malphas-lang mir/monomorphize.go pattern (a
// specializedFuncs/instantiations map pair drained by a fixed-point
// loop), adapted to spec.md's item_generics/build_stack vocabulary. The
// "already lowered" membership set is a golang.org/x/tools/container/
// intsets.Sparse bitset over instance ids — repurposed from the
// teacher's original go/packages-era use of x/tools toward the Generic
// Resolver's instance-id bookkeeping, per SPEC_FULL.md's DOMAIN STACK
// decision.
package generic

import (
	"golang.org/x/tools/container/intsets"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/typecheck"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Instantiation is one concrete use of a generic item: a function,
// struct or enum name paired with the concrete type arguments it was
// used with.
type Instantiation struct {
	Item string
	Args []typesystem.Ty
}

// Resolver is the worklist: Request adds (or finds) an instantiation,
// Next drains it in discovery order, and IsResolved/MarkResolved track
// which instance ids Lowering has already emitted a specialized copy
// for.
type Resolver struct {
	ctx      *typecheck.Context
	seen     map[string]int
	byID     map[int]Instantiation
	order    []int
	cursor   int
	resolved intsets.Sparse
}

func NewResolver(ctx *typecheck.Context) *Resolver {
	return &Resolver{
		ctx:  ctx,
		seen: make(map[string]int),
		byID: make(map[int]Instantiation),
	}
}

// Request registers a concrete instantiation, allocating a fresh
// instance id the first time (item, args) is seen. Non-concrete args
// (still containing a Generic placeholder) are a dependent call site —
// spec.md §4.5 defers those to the Trait Solver / Lowering's own
// resolution once the enclosing generic instantiation is known, so
// Request is a no-op and returns -1.
func (r *Resolver) Request(item string, args []typesystem.Ty) int {
	for _, a := range args {
		if !a.Concrete() {
			return -1
		}
	}
	key := item + "(" + typecheck.ImplKey(args) + ")"
	if id, ok := r.seen[key]; ok {
		return id
	}
	id := r.ctx.NextInstanceID()
	r.seen[key] = id
	r.byID[id] = Instantiation{Item: item, Args: args}
	r.order = append(r.order, id)
	return id
}

// Next pops the next not-yet-drained instantiation in discovery order.
// Lowering calls this in a loop; Request calls made while lowering one
// instantiation's body extend the same order slice, so the loop
// naturally reaches a fixed point once no new instantiation appears.
func (r *Resolver) Next() (int, Instantiation, bool) {
	if r.cursor >= len(r.order) {
		return 0, Instantiation{}, false
	}
	id := r.order[r.cursor]
	r.cursor++
	return id, r.byID[id], true
}

func (r *Resolver) IsResolved(id int) bool { return r.resolved.Has(id) }
func (r *Resolver) MarkResolved(id int)    { r.resolved.Insert(id) }

// InstantiationCounts tallies how many distinct type-argument tuples
// each generic item was requested with, for a driver to compare against
// config.CompilerConfig.MaxInstantiationsPerItem.
func (r *Resolver) InstantiationCounts() map[string]int {
	counts := make(map[string]int, len(r.byID))
	for _, inst := range r.byID {
		counts[inst.Item]++
	}
	return counts
}

// CollectGenericUsage walks every function body recording each
// instantiation of a generic function, struct or enum constructor it
// finds, per spec.md §4.4's collect_generic_usage. Inference and Check
// must already have run so ctx.ExprTy carries concrete types at struct/
// enum construction sites.
func CollectGenericUsage(ctx *typecheck.Context, prog *ast.Program, r *Resolver) {
	for _, fn := range prog.Functions {
		if fn.Body != nil {
			walkBlock(ctx, r, fn.Body)
		}
	}
	for _, impl := range prog.Impls {
		for _, m := range impl.Methods {
			if m.Body != nil {
				walkBlock(ctx, r, m.Body)
			}
		}
	}
	for _, t := range prog.Traits {
		for _, m := range t.Methods {
			if m.Body != nil {
				walkBlock(ctx, r, m.Body)
			}
		}
	}
}

func walkBlock(ctx *typecheck.Context, r *Resolver, b *ast.Block) {
	for _, s := range b.Stmts {
		walkStatement(ctx, r, s)
	}
}

func walkStatement(ctx *typecheck.Context, r *Resolver, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ConstDecl:
		walkExpr(ctx, r, s.Value)
	case *ast.AssignStmt:
		walkExpr(ctx, r, s.Target)
		walkExpr(ctx, r, s.Value)
	case *ast.CompoundAssignStmt:
		walkExpr(ctx, r, s.Target)
		walkExpr(ctx, r, s.Value)
	case *ast.ExprStmt:
		walkExpr(ctx, r, s.Expr)
	case *ast.IfStmt:
		walkExpr(ctx, r, s.Cond)
		walkBlock(ctx, r, s.Then)
		if s.Else != nil {
			walkStatement(ctx, r, s.Else)
		}
	case *ast.WhileStmt:
		walkExpr(ctx, r, s.Cond)
		walkBlock(ctx, r, s.Body)
	case *ast.MatchStmt:
		walkExpr(ctx, r, s.Scrutinee)
		for _, arm := range s.Arms {
			walkBlock(ctx, r, arm.Body)
		}
	case *ast.ReturnStmt:
		if s.Value != nil {
			walkExpr(ctx, r, s.Value)
		}
	case *ast.ExitStmt:
		walkExpr(ctx, r, s.Code)
	case *ast.Block:
		walkBlock(ctx, r, s)
	}
}

func walkExpr(ctx *typecheck.Context, r *Resolver, e ast.Expression) {
	switch e := e.(type) {
	case *ast.DerefExpr:
		walkExpr(ctx, r, e.Operand)
	case *ast.AddressOfExpr:
		walkExpr(ctx, r, e.Operand)
	case *ast.IndexExpr:
		walkExpr(ctx, r, e.Array)
		walkExpr(ctx, r, e.Index)
	case *ast.UnaryExpr:
		walkExpr(ctx, r, e.Operand)
	case *ast.BinaryExpr:
		walkExpr(ctx, r, e.Left)
		walkExpr(ctx, r, e.Right)
	case *ast.CallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, r, a)
		}
		if fn, ok := ctx.FuncRefs[e.ID()]; ok && len(fn.Generics) > 0 {
			if args, missing, ok := inferCallGenericArgs(ctx, fn, e); ok {
				r.Request(fn.Name.Name, args)
			} else {
				ctx.AddError(diagnostics.NewGenericError(diagnostics.ErrUnboundGeneric, e.Pos, missing))
			}
		}
	case *ast.TraitCallExpr:
		for _, a := range e.Args {
			walkExpr(ctx, r, a)
		}
	case *ast.FieldAccessExpr:
		walkExpr(ctx, r, e.Receiver)
	case *ast.StructInitExpr:
		for _, f := range e.Fields {
			walkExpr(ctx, r, f.Value)
		}
		if s, ok := ctx.ExprTy[e.ID()].(typesystem.Struct); ok && len(s.Def.Generics) > 0 {
			r.Request(s.Name, s.Generics)
		}
	case *ast.EnumInitExpr:
		for _, p := range e.Payload {
			walkExpr(ctx, r, p)
		}
		if en, ok := ctx.ExprTy[e.ID()].(typesystem.Enum); ok && len(en.Def.Generics) > 0 {
			r.Request(en.Name, en.Generics)
		}
	case *ast.ArrayInitExpr:
		for _, el := range e.Elements {
			walkExpr(ctx, r, el)
		}
	}
}

// inferCallGenericArgs peels each declared parameter type against the
// corresponding argument's inferred type to recover the concrete
// binding for every one of fn's generic parameters, in declaration
// order (spec.md §4.4's argument-position generic inference — this
// grammar has no explicit `f::<T>(...)` call-site syntax). When a generic
// parameter gets no binding, it returns that parameter's name instead.
func inferCallGenericArgs(ctx *typecheck.Context, fn *ast.Function, call *ast.CallExpr) ([]typesystem.Ty, string, bool) {
	bound := make(map[string]typesystem.Ty)
	for i, param := range fn.Params {
		if i >= len(call.Args) {
			break
		}
		actual := ctx.ExprTy[call.Args[i].ID()]
		if concrete, name, ok := typesystem.PeelOut(actual, param.Type); ok {
			bound[name] = concrete
		}
	}
	args := make([]typesystem.Ty, len(fn.Generics))
	for i, g := range fn.Generics {
		t, ok := bound[g.Name.Name]
		if !ok {
			return nil, g.Name.Name, false
		}
		args[i] = t
	}
	return args, "", true
}
