// Package typesystem implements the Ty algebra of spec.md §3: the single
// tagged-union type representation shared by the parser (pre-resolution,
// where Path/Generic still appear), the Inference/Check passes, and the
// lowered IR (post-resolution, where they may not).
//
// The shape mirrors the teacher's typesystem.Type interface
// (mcgru-funxy/internal/typesystem/types.go) — an interface plus one
// struct per variant, String()/Apply(Subst) on each — generalized from
// funxy's Hindley-Milner TVar/TCon/TApp lattice to spec.md's simpler,
// structurally-nominal Ty.
package typesystem

import (
	"fmt"
	"strings"
)

// Ty is the interface every type variant implements.
type Ty interface {
	String() string
	// Apply substitutes each generic named in s by its bound type,
	// recursing through Array/Ptr/Ref/Struct/Enum exactly as
	// GenSubstitution (spec.md §4.7) requires.
	Apply(s Subst) Ty
	// Concrete reports whether this type (and everything it contains)
	// is free of Generic and Path — the monomorphization precondition
	// (spec.md §8 invariant 4).
	Concrete() bool
}

// Subst maps a generic parameter name to the concrete type replacing it.
type Subst map[string]Ty

func (s Subst) with(name string, t Ty) Subst {
	out := make(Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = t
	return out
}

// --- Primitives ---

type Primitive struct{ Kind PrimitiveKind }

type PrimitiveKind int

const (
	Int PrimitiveKind = iota
	Float
	Char
	Bool
	String
	Void
)

var primitiveNames = map[PrimitiveKind]string{
	Int: "int", Float: "float", Char: "char", Bool: "bool", String: "string", Void: "void",
}

func (p Primitive) String() string    { return primitiveNames[p.Kind] }
func (p Primitive) Apply(Subst) Ty    { return p }
func (p Primitive) Concrete() bool    { return true }

// Convenience constructors/singletons, used throughout inference/check.
var (
	TyInt    = Primitive{Int}
	TyFloat  = Primitive{Float}
	TyChar   = Primitive{Char}
	TyBool   = Primitive{Bool}
	TyString = Primitive{String}
	TyVoid   = Primitive{Void}
)

// --- Array { size, element } ---

type Array struct {
	Size    int
	Element Ty
}

func (a Array) String() string { return fmt.Sprintf("[%d]%s", a.Size, a.Element.String()) }
func (a Array) Apply(s Subst) Ty {
	return Array{Size: a.Size, Element: a.Element.Apply(s)}
}
func (a Array) Concrete() bool { return a.Element.Concrete() }

// --- Ptr(Ty) — raw pointer, owned indirection at the type level ---

type Ptr struct{ Elem Ty }

func (p Ptr) String() string     { return "*" + p.Elem.String() }
func (p Ptr) Apply(s Subst) Ty   { return Ptr{Elem: p.Elem.Apply(s)} }
func (p Ptr) Concrete() bool     { return p.Elem.Concrete() }

// --- Ref(Ty) — logical dereference layer created by reading an lvalue ---

type Ref struct{ Elem Ty }

func (r Ref) String() string   { return "&" + r.Elem.String() }
func (r Ref) Apply(s Subst) Ty { return Ref{Elem: r.Elem.Apply(s)} }
func (r Ref) Concrete() bool   { return r.Elem.Concrete() }

// --- Struct { name, generics, def } ---

type Struct struct {
	Name     string
	Generics []Ty
	Def      *StructDef
}

func (s Struct) String() string {
	if len(s.Generics) == 0 {
		return s.Name
	}
	return s.Name + "<" + joinTys(s.Generics) + ">"
}
func (s Struct) Apply(sub Subst) Ty {
	return Struct{Name: s.Name, Generics: applyAll(s.Generics, sub), Def: s.Def}
}
func (s Struct) Concrete() bool { return allConcrete(s.Generics) }

// --- Enum { name, generics, def } ---

type Enum struct {
	Name     string
	Generics []Ty
	Def      *EnumDef
}

func (e Enum) String() string {
	if len(e.Generics) == 0 {
		return e.Name
	}
	return e.Name + "<" + joinTys(e.Generics) + ">"
}
func (e Enum) Apply(sub Subst) Ty {
	return Enum{Name: e.Name, Generics: applyAll(e.Generics, sub), Def: e.Def}
}
func (e Enum) Concrete() bool { return allConcrete(e.Generics) }

// --- Generic { name, bound } — unresolved type parameter ---

type Generic struct {
	Name  string
	Bound string // trait path name; "" if unbounded
}

func (g Generic) String() string {
	if g.Bound == "" {
		return g.Name
	}
	return g.Name + ": " + g.Bound
}
func (g Generic) Apply(s Subst) Ty {
	if t, ok := s[g.Name]; ok {
		return t
	}
	return g
}
func (g Generic) Concrete() bool { return false }

// --- Func { name, ret, params } — only used during generic bookkeeping ---

type Func struct {
	Name   string
	Ret    Ty
	Params []Ty
}

func (f Func) String() string {
	return fmt.Sprintf("fn %s(%s) -> %s", f.Name, joinTys(f.Params), f.Ret.String())
}
func (f Func) Apply(s Subst) Ty {
	return Func{Name: f.Name, Ret: f.Ret.Apply(s), Params: applyAll(f.Params, s)}
}
func (f Func) Concrete() bool { return f.Ret.Concrete() && allConcrete(f.Params) }

// --- Path(Path) — unresolved nominal reference, pre-resolution only ---

type PathTy struct {
	Segments []string
	Args     []Ty // type arguments written at the use site, e.g. Pair<int, bool>
}

func (p PathTy) String() string {
	s := strings.Join(p.Segments, "::")
	if len(p.Args) > 0 {
		s += "<" + joinTys(p.Args) + ">"
	}
	return s
}
func (p PathTy) Apply(s Subst) Ty { return PathTy{Segments: p.Segments, Args: applyAll(p.Args, s)} }
func (p PathTy) Concrete() bool   { return false }

// --- helpers ---

func joinTys(ts []Ty) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func applyAll(ts []Ty, s Subst) []Ty {
	if ts == nil {
		return nil
	}
	out := make([]Ty, len(ts))
	for i, t := range ts {
		out[i] = t.Apply(s)
	}
	return out
}

func allConcrete(ts []Ty) bool {
	for _, t := range ts {
		if !t.Concrete() {
			return false
		}
	}
	return true
}

// Equal does structural comparison (used by the Check pass's type
// equality and by the Pattern Checker).
// It does not unify generics; two Generic values are equal only if their
// names match, mirroring spec.md's "identical primitives unify to
// themselves; non-matching constructors fail" unification baseline for
// the already-resolved case.
func Equal(a, b Ty) bool {
	return a.String() == b.String()
}
