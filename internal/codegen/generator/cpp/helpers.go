package cpp

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/intfrr/jankdrone/internal/codegen/common"
	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

// Funcs returns the C++ template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"cpptype":   cppType,
		"cppdecl":   cppDecl,
		"cppstruct": cppStructName,
	}
}

// cppType returns the C++ spelling of t's base type. Array dimensions are
// not included; they belong to the declarator (see cppDecl).
func cppType(t *schema.Type) string {
	base := t.Base()
	switch base.Kind {
	case schema.KindStruct:
		return cppStructName(base.Struct.Name)
	case schema.KindPrimitive:
		return primitiveCppType(base.Prim)
	}
	return "uint8_t"
}

func primitiveCppType(p schema.Primitive) string {
	switch p {
	case schema.U8:
		return "uint8_t"
	case schema.U16:
		return "uint16_t"
	case schema.U32:
		return "uint32_t"
	case schema.U64:
		return "uint64_t"
	case schema.I8:
		return "int8_t"
	case schema.I16:
		return "int16_t"
	case schema.I32:
		return "int32_t"
	case schema.I64:
		return "int64_t"
	case schema.F32:
		return "float"
	case schema.F64:
		return "double"
	case schema.Bool:
		return "bool"
	default:
		return string(p)
	}
}

// cppDecl renders a member declaration without the trailing semicolon,
// e.g. "float pid_gains[3][3]".
func cppDecl(f *schema.Field) string {
	var b strings.Builder
	b.WriteString(cppType(f.Type))
	b.WriteByte(' ')
	b.WriteString(f.Name)
	for _, n := range f.Type.Dims() {
		fmt.Fprintf(&b, "[%d]", n)
	}
	return b.String()
}

func cppStructName(name string) string {
	return common.ToPascalCase(name)
}
