package typesystem

import "testing"

func TestPrimitiveApplyIsIdentity(t *testing.T) {
	if got := TyInt.Apply(Subst{"T": TyBool}); got != TyInt {
		t.Fatalf("Primitive.Apply should be a no-op, got %v", got)
	}
	if !TyInt.Concrete() {
		t.Fatal("primitives are always concrete")
	}
}

func TestGenericApply(t *testing.T) {
	g := Generic{Name: "T"}
	if g.Concrete() {
		t.Fatal("an unbound Generic is never concrete")
	}
	got := g.Apply(Subst{"T": TyInt})
	if !Equal(got, TyInt) {
		t.Fatalf("expected substitution to bind T to int, got %s", got.String())
	}
	// Applying a substitution with no entry for this name leaves it unbound.
	if got := g.Apply(Subst{"U": TyInt}); !Equal(got, g) {
		t.Fatalf("expected unrelated substitution to be a no-op, got %s", got.String())
	}
}

func TestStructApplyRecursesIntoGenerics(t *testing.T) {
	def := &StructDef{Name: "Box", Generics: []GenericParam{{Name: "T"}}}
	box := Struct{Name: "Box", Generics: []Ty{Generic{Name: "T"}}, Def: def}
	if box.Concrete() {
		t.Fatal("Box<T> should not be concrete while T is unbound")
	}
	resolved := box.Apply(Subst{"T": TyInt}).(Struct)
	if !resolved.Concrete() {
		t.Fatal("Box<int> should be concrete")
	}
	if resolved.String() != "Box<int>" {
		t.Fatalf("expected Box<int>, got %s", resolved.String())
	}
}

func TestArrayPtrRefConcreteness(t *testing.T) {
	arr := Array{Size: 4, Element: Generic{Name: "T"}}
	if arr.Concrete() {
		t.Fatal("array of an unbound generic is not concrete")
	}
	if (Array{Size: 4, Element: TyInt}).String() != "[4]int" {
		t.Fatal("unexpected Array.String()")
	}
	if (Ptr{Elem: TyInt}).String() != "*int" {
		t.Fatal("unexpected Ptr.String()")
	}
	if (Ref{Elem: TyInt}).String() != "&int" {
		t.Fatal("unexpected Ref.String()")
	}
}

func TestUnifyPrimitives(t *testing.T) {
	if _, err := Unify(TyInt, TyInt); err != nil {
		t.Fatalf("identical primitives should unify: %v", err)
	}
	if _, err := Unify(TyInt, TyBool); err == nil {
		t.Fatal("mismatched primitives should fail to unify")
	}
}

func TestUnifyGenericBindsEitherSide(t *testing.T) {
	g := Generic{Name: "T"}
	s, err := Unify(g, TyInt)
	if err != nil {
		t.Fatalf("unifying a generic should always succeed: %v", err)
	}
	if !Equal(s["T"], TyInt) {
		t.Fatalf("expected T bound to int, got %v", s)
	}
	s, err = Unify(TyInt, g)
	if err != nil || !Equal(s["T"], TyInt) {
		t.Fatalf("unification should be symmetric for generics, got %v, %v", s, err)
	}
}

func TestUnifyStructRequiresMatchingNameAndArity(t *testing.T) {
	def := &StructDef{Name: "Pair"}
	a := Struct{Name: "Pair", Generics: []Ty{TyInt, TyBool}, Def: def}
	b := Struct{Name: "Pair", Generics: []Ty{TyInt, TyBool}, Def: def}
	if _, err := Unify(a, b); err != nil {
		t.Fatalf("identical structs should unify: %v", err)
	}
	other := Struct{Name: "Other", Generics: []Ty{TyInt, TyBool}, Def: def}
	if _, err := Unify(a, other); err == nil {
		t.Fatal("structs with different names should not unify")
	}
}

func TestPeelOutSimpleGeneric(t *testing.T) {
	declared := Generic{Name: "T"}
	actual := TyInt
	got, name, ok := PeelOut(actual, declared)
	if !ok || name != "T" || !Equal(got, TyInt) {
		t.Fatalf("expected to peel T=int, got %v %s %v", got, name, ok)
	}
}

func TestPeelOutThroughArrayAndPtr(t *testing.T) {
	declared := Array{Size: 3, Element: Ptr{Elem: Generic{Name: "T"}}}
	actual := Array{Size: 3, Element: Ptr{Elem: TyFloat}}
	got, name, ok := PeelOut(actual, declared)
	if !ok || name != "T" || !Equal(got, TyFloat) {
		t.Fatalf("expected to peel T=float through array/ptr, got %v %s %v", got, name, ok)
	}
}

func TestPeelOutThroughStructGenerics(t *testing.T) {
	def := &StructDef{Name: "Box"}
	declared := Struct{Name: "Box", Generics: []Ty{Generic{Name: "T"}}, Def: def}
	actual := Struct{Name: "Box", Generics: []Ty{TyString}, Def: def}
	got, name, ok := PeelOut(actual, declared)
	if !ok || name != "T" || !Equal(got, TyString) {
		t.Fatalf("expected to peel T=string through struct generics, got %v %s %v", got, name, ok)
	}
}

func TestPeelOutFailsOnMismatch(t *testing.T) {
	declared := Array{Size: 3, Element: Generic{Name: "T"}}
	actual := TyInt
	if _, _, ok := PeelOut(actual, declared); ok {
		t.Fatal("expected PeelOut to fail when shapes don't line up")
	}
}

func TestFoldTyIntArithmeticAndComparison(t *testing.T) {
	got, err := FoldTy(TyInt, TyInt, OpAdd)
	if err != nil || !Equal(got, TyInt) {
		t.Fatalf("int + int should fold to int, got %v, %v", got, err)
	}
	got, err = FoldTy(TyInt, TyInt, OpLt)
	if err != nil || !Equal(got, TyBool) {
		t.Fatalf("int < int should fold to bool, got %v, %v", got, err)
	}
}

func TestFoldTyPeelsRef(t *testing.T) {
	got, err := FoldTy(Ref{Elem: TyInt}, TyInt, OpAdd)
	if err != nil || !Equal(got, TyInt) {
		t.Fatalf("&int + int should fold to int through the Ref layer, got %v, %v", got, err)
	}
}

func TestFoldTyIntFloatMixRejectsBitwise(t *testing.T) {
	if _, err := FoldTy(TyInt, TyFloat, OpBitAnd); err == nil {
		t.Fatal("bitwise ops should not be defined across an int/float mix")
	}
	got, err := FoldTy(TyInt, TyFloat, OpAdd)
	if err != nil || !Equal(got, TyFloat) {
		t.Fatalf("int + float should widen to float, got %v, %v", got, err)
	}
}

func TestFoldTyCharOnlyComparison(t *testing.T) {
	if _, err := FoldTy(TyChar, TyChar, OpAdd); err == nil {
		t.Fatal("char should only support comparison operators")
	}
	if _, err := FoldTy(TyChar, TyChar, OpEq); err != nil {
		t.Fatal("char == char should be valid")
	}
}

func TestFoldTyMismatchedConstructors(t *testing.T) {
	if _, err := FoldTy(TyInt, TyString, OpAdd); err == nil {
		t.Fatal("int + string should not fold to anything")
	}
}

func TestFoldTyPtrArithmetic(t *testing.T) {
	ptr := Ptr{Elem: TyInt}
	got, err := FoldTy(ptr, TyInt, OpAdd)
	if err != nil || !Equal(got, ptr) {
		t.Fatalf("ptr + int should stay a pointer, got %v, %v", got, err)
	}
	got, err = FoldTy(TyInt, ptr, OpAdd)
	if err != nil || !Equal(got, ptr) {
		t.Fatalf("int + ptr should stay a pointer, got %v, %v", got, err)
	}
}

func TestCoercesNumericAndBool(t *testing.T) {
	cases := []struct {
		from, to Ty
		want     bool
	}{
		{TyInt, TyFloat, true},
		{TyFloat, TyInt, true},
		{TyBool, TyInt, true},
		{TyInt, TyBool, false},
		{TyString, TyInt, false},
		{TyInt, TyInt, true},
	}
	for _, c := range cases {
		if got := Coerces(c.from, c.to); got != c.want {
			t.Errorf("Coerces(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCoercesPointerIntBothWays(t *testing.T) {
	ptr := Ptr{Elem: TyInt}
	if !Coerces(TyInt, ptr) {
		t.Fatal("int should coerce to a pointer (pointer arithmetic)")
	}
	if !Coerces(ptr, TyInt) {
		t.Fatal("a pointer should coerce to int (pointer arithmetic)")
	}
}

func TestTruthy(t *testing.T) {
	truthyTypes := []Ty{TyBool, TyInt, TyFloat, TyChar, TyString, Ptr{Elem: TyInt}, Ref{Elem: TyBool}}
	for _, ty := range truthyTypes {
		if !Truthy(ty) {
			t.Errorf("expected %s to be a valid condition type", ty.String())
		}
	}
	def := &StructDef{Name: "Foo"}
	if Truthy(Struct{Name: "Foo", Def: def}) {
		t.Fatal("a struct should not be a valid condition type")
	}
}

func TestStructDefFieldIndex(t *testing.T) {
	def := &StructDef{
		Name:   "Point",
		Fields: []Field{{Name: "x", Type: TyInt}, {Name: "y", Type: TyInt}},
	}
	if idx, ok := def.FieldIndex("y"); !ok || idx != 1 {
		t.Fatalf("expected field y at index 1, got %d, %v", idx, ok)
	}
	if _, ok := def.FieldIndex("z"); ok {
		t.Fatal("expected FieldIndex to report false for a field that doesn't exist")
	}
}

func TestEnumDefVariantIndex(t *testing.T) {
	def := &EnumDef{
		Name: "Option",
		Variants: []Variant{
			{Name: "None"},
			{Name: "Some", Payload: []Ty{TyInt}},
		},
	}
	v, idx, ok := def.Variant("Some")
	if !ok || idx != 1 || v.Name != "Some" || len(v.Payload) != 1 {
		t.Fatalf("expected Some at index 1 with one payload type, got %v %d %v", v, idx, ok)
	}
	if _, _, ok := def.Variant("Nope"); ok {
		t.Fatal("expected Variant to report false for an unknown variant")
	}
}
