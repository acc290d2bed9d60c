// Package schema describes a shared-memory layout: an ordered set of named,
// typed fields with offsets and sizes fixed by natural-alignment rules.
//
// A Schema is built once from a Definition and is read-only afterwards; the
// renderer and every template share the same value.
package schema

import "fmt"

// Kind classifies a Type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Primitive is one of the fixed-width scalar tokens (u8, i16, f32, bool, ...).
type Primitive string

const (
	U8   Primitive = "u8"
	U16  Primitive = "u16"
	U32  Primitive = "u32"
	U64  Primitive = "u64"
	I8   Primitive = "i8"
	I16  Primitive = "i16"
	I32  Primitive = "i32"
	I64  Primitive = "i64"
	F32  Primitive = "f32"
	F64  Primitive = "f64"
	Bool Primitive = "bool"
)

// Size returns the width in bytes, or 0 for an unknown token.
func (p Primitive) Size() int {
	switch p {
	case U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether p is part of the closed primitive set.
func (p Primitive) Valid() bool { return p.Size() > 0 }

// Type is the resolved type of a field.
type Type struct {
	Kind   Kind
	Prim   Primitive // KindPrimitive
	Elem   *Type     // KindArray
	Len    int       // KindArray
	Struct *Struct   // KindStruct
	Token  string    // token as written in the definition, e.g. "f32*3"
}

// Size returns the number of bytes the type occupies, including any trailing
// padding of struct types.
func (t *Type) Size() int {
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.Size()
	case KindArray:
		return t.Elem.Size() * t.Len
	case KindStruct:
		return t.Struct.Size
	}
	return 0
}

// Align returns the required alignment in bytes.
func (t *Type) Align() int {
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.Size()
	case KindArray:
		return t.Elem.Align()
	case KindStruct:
		return t.Struct.Align
	}
	return 1
}

// Base returns the innermost element type of an array, or t itself.
func (t *Type) Base() *Type {
	for t.Kind == KindArray {
		t = t.Elem
	}
	return t
}

// Dims returns array lengths from outermost to innermost. Empty for
// non-array types.
func (t *Type) Dims() []int {
	var dims []int
	for t.Kind == KindArray {
		dims = append(dims, t.Len)
		t = t.Elem
	}
	return dims
}

func (t *Type) String() string { return t.Token }

// Field is a single member of a Struct.
type Field struct {
	Name   string
	Doc    string
	Type   *Type
	Offset int // byte offset from the start of the enclosing struct
	Pad    int // padding bytes inserted immediately before this field
}

// Size is shorthand for f.Type.Size().
func (f *Field) Size() int { return f.Type.Size() }

// End returns the offset one past the last byte of the field.
func (f *Field) End() int { return f.Offset + f.Type.Size() }

// Struct is an ordered, laid-out group of fields.
type Struct struct {
	Name    string
	Doc     string
	Fields  []*Field
	Size    int
	Align   int
	TailPad int // padding after the last field to round Size up to Align
}

// Field returns the field called name.
func (s *Struct) Field(name string) (*Field, error) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, s.Name, name)
}

// Schema is a complete shared-memory layout: the root struct that maps the
// segment plus the nested struct types it uses, in declaration order.
type Schema struct {
	Root    *Struct
	Structs []*Struct
}

// Name returns the root struct name.
func (s *Schema) Name() string { return s.Root.Name }

// Fields returns the root fields in layout order.
func (s *Schema) Fields() []*Field { return s.Root.Fields }

// Field looks up a root field by name. Templates use it to reference a
// specific field; an unknown name fails the render.
func (s *Schema) Field(name string) (*Field, error) { return s.Root.Field(name) }

// Size returns the size in bytes of the whole segment.
func (s *Schema) Size() int { return s.Root.Size }

// Align returns the alignment of the root struct.
func (s *Schema) Align() int { return s.Root.Align }

// TailPad returns the trailing padding of the root struct.
func (s *Schema) TailPad() int { return s.Root.TailPad }

// Struct returns the nested struct type called name.
func (s *Schema) Struct(name string) (*Struct, error) {
	for _, st := range s.Structs {
		if st.Name == name {
			return st, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
}
