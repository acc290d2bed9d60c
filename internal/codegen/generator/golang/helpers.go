package golang

import (
	"fmt"
	"text/template"

	"github.com/intfrr/jankdrone/internal/codegen/common"
	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

// Funcs returns the Go template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"gotype":   goType,
		"goname":   common.ToGoName,
		"gostruct": common.ToGoName,
	}
}

// goType returns the Go spelling of t, including array dimensions:
// "f32*3*2" -> "[2][3]float32".
func goType(t *schema.Type) string {
	switch t.Kind {
	case schema.KindArray:
		return fmt.Sprintf("[%d]%s", t.Len, goType(t.Elem))
	case schema.KindStruct:
		return common.ToGoName(t.Struct.Name)
	case schema.KindPrimitive:
		return primitiveGoType(t.Prim)
	}
	return "byte"
}

func primitiveGoType(p schema.Primitive) string {
	switch p {
	case schema.U8:
		return "uint8"
	case schema.U16:
		return "uint16"
	case schema.U32:
		return "uint32"
	case schema.U64:
		return "uint64"
	case schema.I8:
		return "int8"
	case schema.I16:
		return "int16"
	case schema.I32:
		return "int32"
	case schema.I64:
		return "int64"
	case schema.F32:
		return "float32"
	case schema.F64:
		return "float64"
	case schema.Bool:
		return "bool"
	default:
		return string(p)
	}
}
