package typecheck

import (
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/token"
	"github.com/funvibe/enumc/internal/typesystem"
)

// ResolveTy replaces every typesystem.PathTy produced by the parser (a
// bare nominal reference the parser couldn't yet tell apart from a
// struct or enum name) with the concrete Struct/Enum it names, recursing
// through Array/Ptr/Ref/Struct/Enum so a type nested at any depth gets
// resolved; any other type (primitives, Generic, Func) is returned
// unchanged. Reports ErrUndeclaredType when a path names neither a
// struct nor an enum.
func (c *Context) ResolveTy(t typesystem.Ty, span token.Span) (typesystem.Ty, bool) {
	switch t := t.(type) {
	case typesystem.PathTy:
		name := t.Segments[len(t.Segments)-1]
		args, ok := c.resolveAll(t.Args, span)
		if !ok {
			return nil, false
		}
		if def, ok := c.Structs[name]; ok {
			return typesystem.Struct{Name: name, Generics: args, Def: def}, true
		}
		if def, ok := c.Enums[name]; ok {
			return typesystem.Enum{Name: name, Generics: args, Def: def}, true
		}
		c.AddError(diagnostics.NewResolutionError(diagnostics.ErrUndeclaredType, span, name))
		return nil, false

	case typesystem.Array:
		elem, ok := c.ResolveTy(t.Element, span)
		if !ok {
			return nil, false
		}
		return typesystem.Array{Size: t.Size, Element: elem}, true

	case typesystem.Ptr:
		elem, ok := c.ResolveTy(t.Elem, span)
		if !ok {
			return nil, false
		}
		return typesystem.Ptr{Elem: elem}, true

	case typesystem.Ref:
		elem, ok := c.ResolveTy(t.Elem, span)
		if !ok {
			return nil, false
		}
		return typesystem.Ref{Elem: elem}, true

	case typesystem.Struct:
		args, ok := c.resolveAll(t.Generics, span)
		if !ok {
			return nil, false
		}
		return typesystem.Struct{Name: t.Name, Generics: args, Def: t.Def}, true

	case typesystem.Enum:
		args, ok := c.resolveAll(t.Generics, span)
		if !ok {
			return nil, false
		}
		return typesystem.Enum{Name: t.Name, Generics: args, Def: t.Def}, true

	default:
		return t, true
	}
}

func (c *Context) resolveAll(ts []typesystem.Ty, span token.Span) ([]typesystem.Ty, bool) {
	if ts == nil {
		return nil, true
	}
	out := make([]typesystem.Ty, len(ts))
	for i, t := range ts {
		r, ok := c.ResolveTy(t, span)
		if !ok {
			return nil, false
		}
		out[i] = r
	}
	return out, true
}
