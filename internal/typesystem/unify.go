package typesystem

import "fmt"

// Unify is the limited structural unification spec.md §4.2 asks for: used
// for array-init element types and for checking an inferred type against a
// declared one. Generics unify with anything (recording the binding);
// identical primitives unify to themselves; mismatched constructors fail.
// Grounded on the teacher's typesystem.Unify (mcgru-funxy/internal/typesystem/unify.go),
// narrowed from full HM unification to spec.md's structural comparison —
// spec.md §1 explicitly excludes "full Hindley-Milner inference".
func Unify(a, b Ty) (Subst, error) {
	if g, ok := a.(Generic); ok {
		return Subst{g.Name: b}, nil
	}
	if g, ok := b.(Generic); ok {
		return Subst{g.Name: a}, nil
	}

	switch a := a.(type) {
	case Primitive:
		if bp, ok := b.(Primitive); ok && bp.Kind == a.Kind {
			return Subst{}, nil
		}
		return nil, mismatch(a, b)

	case Array:
		ba, ok := b.(Array)
		if !ok || ba.Size != a.Size {
			return nil, mismatch(a, b)
		}
		return Unify(a.Element, ba.Element)

	case Ptr:
		bp, ok := b.(Ptr)
		if !ok {
			return nil, mismatch(a, b)
		}
		return Unify(a.Elem, bp.Elem)

	case Ref:
		br, ok := b.(Ref)
		if !ok {
			return nil, mismatch(a, b)
		}
		return Unify(a.Elem, br.Elem)

	case Struct:
		bs, ok := b.(Struct)
		if !ok || bs.Name != a.Name || len(bs.Generics) != len(a.Generics) {
			return nil, mismatch(a, b)
		}
		return unifyAll(a.Generics, bs.Generics)

	case Enum:
		be, ok := b.(Enum)
		if !ok || be.Name != a.Name || len(be.Generics) != len(a.Generics) {
			return nil, mismatch(a, b)
		}
		return unifyAll(a.Generics, be.Generics)
	}
	return nil, mismatch(a, b)
}

func unifyAll(as, bs []Ty) (Subst, error) {
	total := Subst{}
	for i := range as {
		s, err := Unify(as[i].Apply(total), bs[i].Apply(total))
		if err != nil {
			return nil, err
		}
		for k, v := range s {
			total = total.with(k, v)
		}
	}
	return total, nil
}

func mismatch(a, b Ty) error {
	return fmt.Errorf("cannot unify %s with %s", a.String(), b.String())
}

// PeelOut implements spec.md §4.2's peel_out: if declared contains a
// generic T at a structural position actual also occupies, return the pair
// (concrete type at that position, T). It recurses through matching
// Array/Ptr/Ref and matching Struct/Enum (by name), skipping positions
// that don't line up, exactly as spec.md prescribes.
func PeelOut(actual, declared Ty) (Ty, string, bool) {
	if g, ok := declared.(Generic); ok {
		return actual, g.Name, true
	}
	switch d := declared.(type) {
	case Array:
		if a, ok := actual.(Array); ok {
			return PeelOut(a.Element, d.Element)
		}
	case Ptr:
		if a, ok := actual.(Ptr); ok {
			return PeelOut(a.Elem, d.Elem)
		}
	case Ref:
		if a, ok := actual.(Ref); ok {
			return PeelOut(a.Elem, d.Elem)
		}
	case Struct:
		if a, ok := actual.(Struct); ok && a.Name == d.Name {
			for i := range d.Generics {
				if i >= len(a.Generics) {
					break
				}
				if t, name, ok := PeelOut(a.Generics[i], d.Generics[i]); ok {
					return t, name, true
				}
			}
		}
	case Enum:
		if a, ok := actual.(Enum); ok && a.Name == d.Name {
			for i := range d.Generics {
				if i >= len(a.Generics) {
					break
				}
				if t, name, ok := PeelOut(a.Generics[i], d.Generics[i]); ok {
					return t, name, true
				}
			}
		}
	}
	return nil, "", false
}
