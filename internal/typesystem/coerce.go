package typesystem

// Coerces reports whether a value of type from may stand in for a
// declared type to without an explicit `as` cast — the small table
// spec.md §4.3 allows for assignment/return/argument checks: Int<->Float,
// Bool->Int, Ptr<->Int (pointer arithmetic's integer side).
func Coerces(from, to Ty) bool {
	if Equal(from, to) {
		return true
	}
	fp, fok := from.(Primitive)
	tp, tok := to.(Primitive)
	if fok && tok {
		switch {
		case fp.Kind == Int && tp.Kind == Float:
			return true
		case fp.Kind == Float && tp.Kind == Int:
			return true
		case fp.Kind == Bool && tp.Kind == Int:
			return true
		}
	}
	if fok && fp.Kind == Int {
		if _, ok := to.(Ptr); ok {
			return true
		}
	}
	if tok && tp.Kind == Int {
		if _, ok := from.(Ptr); ok {
			return true
		}
	}
	return false
}

// Truthy reports whether t may appear where the language expects a
// condition (if/while guards): spec.md §4.3 allows Bool, Int, Float,
// Char, String, Ptr and Ref-of-those to stand as conditions.
func Truthy(t Ty) bool {
	if r, ok := t.(Ref); ok {
		return Truthy(r.Elem)
	}
	switch p := t.(type) {
	case Primitive:
		return p.Kind == Bool || p.Kind == Int || p.Kind == Float || p.Kind == Char || p.Kind == String
	case Ptr:
		return true
	}
	return false
}
