// Package typecheck implements the Type Context (spec.md §3's TyCheckRes):
// the single mutable structure every later pass reads from and writes
// into. Grounded on the teacher's internal/symbols.SymbolTable — a flat
// struct holding one map per concern (traitMethods, traitTypeParams,
// implementations, variants, ...) rather than a class hierarchy — but
// generalized from funxy's scoped, chained symbol tables to spec.md's
// flatter design: this core has no nested lexical scopes beyond block
// statements, which the Inference pass manages locally with Scope.
package typecheck

import (
	"strings"

	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// TraitInfo is a trait's declared shape: its generic parameters and its
// method table (signature-only methods plus any with a default body).
type TraitInfo struct {
	Name     string
	Generics []typesystem.GenericParam
	Methods  map[string]*ast.Function
	Pos      token.Span
}

// Context is spec.md §3's TyCheckRes, the Type Context threaded through
// every pass.
type Context struct {
	Globals map[string]typesystem.Ty      // name -> type of a global binding; no pass fills it (the parser accepts no top-level `let`)
	Consts  map[string]*ast.ConstDecl     // name -> declaration; no pass fills or reads it

	Functions map[string]*ast.Function
	Structs   map[string]*typesystem.StructDef
	Enums     map[string]*typesystem.EnumDef
	Traits    map[string]*TraitInfo

	// Impls is trait name -> type-argument-tuple key -> impl, per spec.md
	// §4.5's "impls: trait_path → {type-argument-tuple → impl}".
	Impls map[string]map[string]*ast.ImplDecl

	// FuncRefs resolves a call expression's node id to the function
	// declaration it was bound to, computed once and reused by Lowering.
	FuncRefs map[int]*ast.Function

	// TraitImpls resolves a TraitCallExpr node id to the impl the Trait
	// Solver selected for it, for Lowering's Monomorphization rewrite
	// (spec.md §4.7 step 5) to mangle into a plain call target. Absent
	// for a dependent call whose receiver was still a generic parameter
	// at solve time — Lowering re-resolves those once its instantiation
	// substitution supplies a concrete receiver.
	TraitImpls map[int]*ast.ImplDecl

	// FuncSpans records each function name's declaration span, for
	// duplicate-declaration diagnostics without a second declaration pass.
	FuncSpans map[string]token.Span

	// ExprTy is the expression-identity-keyed type table spec.md §5
	// requires: node id -> inferred type, populated by Inference and read
	// by Check, Pattern Checker and Lowering.
	ExprTy map[int]typesystem.Ty

	// MonoExprTy is allocated but no pass writes it: Lowering keeps each
	// instantiation's expression types in its own ir.Function.ExprTy.
	MonoExprTy map[string]typesystem.Ty

	// UnusedVars tracks every local binding id that hasn't been read yet;
	// Inference removes an id the moment it sees a read, and
	// check.EmitUnusedWarnings turns whatever survives every function
	// body into a warning.
	UnusedVars map[int]*ast.Identifier

	Errors   []*diagnostics.DiagnosticError
	poisoned bool

	uniqIDCounter int
}

func NewContext() *Context {
	return &Context{
		Globals:    make(map[string]typesystem.Ty),
		Consts:     make(map[string]*ast.ConstDecl),
		Functions:  make(map[string]*ast.Function),
		Structs:    make(map[string]*typesystem.StructDef),
		Enums:      make(map[string]*typesystem.EnumDef),
		Traits:     make(map[string]*TraitInfo),
		Impls:      make(map[string]map[string]*ast.ImplDecl),
		FuncRefs:   make(map[int]*ast.Function),
		TraitImpls: make(map[int]*ast.ImplDecl),
		FuncSpans:  make(map[string]token.Span),
		ExprTy:     make(map[int]typesystem.Ty),
		MonoExprTy: make(map[string]typesystem.Ty),
		UnusedVars: make(map[int]*ast.Identifier),
	}
}

// AddError appends a non-warning diagnostic and poisons the context:
// spec.md §7's propagation policy is that once an error is recorded,
// dependent downstream passes (Generic Resolver, Trait Solver, Lowering)
// stop running against results that may be incomplete or wrong, while
// the Check pass itself keeps going to surface every error in one run.
func (c *Context) AddError(e *diagnostics.DiagnosticError) {
	c.Errors = append(c.Errors, e)
	if !e.Warning {
		c.poisoned = true
	}
}

func (c *Context) AddWarning(e *diagnostics.DiagnosticError) {
	c.Errors = append(c.Errors, e)
}

// Poisoned reports whether any non-warning diagnostic has been recorded.
func (c *Context) Poisoned() bool { return c.poisoned }

// NextInstanceID hands out a fresh monomorphization instance id. Exposed
// as a method on Context (rather than a free-standing package-level
// counter) so every instance id a run produces is traceable back to one
// TyCheckRes, matching original_source's uniq_id_counter field ownership.
func (c *Context) NextInstanceID() int {
	c.uniqIDCounter++
	return c.uniqIDCounter
}

// ImplKey builds the type-argument-tuple key Impls is keyed by.
func ImplKey(args []typesystem.Ty) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

// LookupImpl finds the impl of trait for the given concrete type
// arguments, if one was registered.
func (c *Context) LookupImpl(trait string, args []typesystem.Ty) (*ast.ImplDecl, bool) {
	byArgs, ok := c.Impls[trait]
	if !ok {
		return nil, false
	}
	impl, ok := byArgs[ImplKey(args)]
	return impl, ok
}

func (c *Context) RegisterImpl(trait string, args []typesystem.Ty, impl *ast.ImplDecl) {
	if c.Impls[trait] == nil {
		c.Impls[trait] = make(map[string]*ast.ImplDecl)
	}
	c.Impls[trait][ImplKey(args)] = impl
}
