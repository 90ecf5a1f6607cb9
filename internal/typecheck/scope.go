package typecheck

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/typesystem"
)

// Scope is a chained lexical scope for local bindings within one function
// body — params and `let`s. Spec.md's Type Context itself has no notion
// of nested scope (that's purely an Inference/Check-pass concern), so
// this lives beside Context rather than inside it.
type Scope struct {
	vars   map[string]*ast.Identifier
	types  map[string]typesystem.Ty
	parent *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]*ast.Identifier), types: make(map[string]typesystem.Ty), parent: parent}
}

// Declare binds name to ty in this scope, shadowing an outer binding of
// the same name (spec.md's statement grammar allows re-`let` shadowing).
func (s *Scope) Declare(id *ast.Identifier, ty typesystem.Ty) {
	s.vars[id.Name] = id
	s.types[id.Name] = ty
}

func (s *Scope) Lookup(name string) (typesystem.Ty, *ast.Identifier, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ty, ok := cur.types[name]; ok {
			return ty, cur.vars[name], true
		}
	}
	return nil, nil, false
}
