package lower

import (
	"fmt"
	"strings"

	"github.com/funvibe/enumc/internal/typesystem"
)

// MangleName builds a deterministic specialized name for base
// instantiated at typeArgs, grounded on the malphas-lang mir/
// monomorphize.go mangleName/mangleType pair — "$"-separated from the
// base name, each argument mangled and "_"-joined.
func MangleName(base string, typeArgs []typesystem.Ty) string {
	var sb strings.Builder
	sb.WriteString(base)
	if len(typeArgs) == 0 {
		return sb.String()
	}
	sb.WriteString("$")
	for i, arg := range typeArgs {
		if i > 0 {
			sb.WriteString("_")
		}
		sb.WriteString(mangleType(arg))
	}
	return sb.String()
}

func mangleType(t typesystem.Ty) string {
	switch t := t.(type) {
	case typesystem.Primitive:
		return t.String()
	case typesystem.Ptr:
		return "ptr_" + mangleType(t.Elem)
	case typesystem.Ref:
		return "ref_" + mangleType(t.Elem)
	case typesystem.Array:
		return fmt.Sprintf("arr%d_%s", t.Size, mangleType(t.Element))
	case typesystem.Struct:
		if len(t.Generics) == 0 {
			return t.Name
		}
		return MangleName(t.Name, t.Generics)
	case typesystem.Enum:
		if len(t.Generics) == 0 {
			return t.Name
		}
		return MangleName(t.Name, t.Generics)
	default:
		return t.String()
	}
}
