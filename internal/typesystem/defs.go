package typesystem

import "github.com/funvibe/enumc/internal/token"

// StructDef is the declaration a Struct Ty's Def points back to: an
// ordered field list plus the struct's own generic parameter names.
type StructDef struct {
	Name     string
	Generics []GenericParam
	Fields   []Field
	Pos      token.Span
}

type Field struct {
	Name string
	Type Ty
}

// FieldIndex returns the numeric index lowering resolves field access to
// (spec.md §4.7: "Field accesses are resolved to a numeric field_idx").
func (d *StructDef) FieldIndex(name string) (int, bool) {
	for i, f := range d.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// EnumDef is the declaration an Enum Ty's Def points back to: an ordered
// variant list, each carrying a tuple of payload types.
type EnumDef struct {
	Name     string
	Generics []GenericParam
	Variants []Variant
	Pos      token.Span
}

type Variant struct {
	Name    string
	Payload []Ty
}

// VariantIndex returns the numeric idx a match-arm enum pattern carries
// after lowering (spec.md §4.7).
func (d *EnumDef) VariantIndex(name string) (int, bool) {
	for i, v := range d.Variants {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (d *EnumDef) Variant(name string) (*Variant, int, bool) {
	for i, v := range d.Variants {
		if v.Name == name {
			return &d.Variants[i], i, true
		}
	}
	return nil, 0, false
}

// GenericParam is a declared generic parameter name with an optional
// trait-path bound (spec.md §3: "Generic { name, bound: Option<Path> }").
type GenericParam struct {
	Name  string
	Bound string // trait name, "" if unbounded
}
