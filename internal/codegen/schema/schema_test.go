package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

type fieldLayout struct {
	Name   string
	Offset int
	Pad    int
	Size   int
}

func layoutOf(s *schema.Struct) []fieldLayout {
	out := make([]fieldLayout, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, fieldLayout{Name: f.Name, Offset: f.Offset, Pad: f.Pad, Size: f.Size()})
	}
	return out
}

func TestBuildLayout(t *testing.T) {
	def := schema.Definition{
		Name: "Shm",
		Structs: []schema.StructDef{
			{Name: "Vec3", Fields: []schema.FieldDef{
				{Name: "x", Type: "f32"},
				{Name: "y", Type: "f32"},
				{Name: "z", Type: "f32"},
			}},
		},
		Fields: []schema.FieldDef{
			{Name: "armed", Type: "bool"},
			{Name: "seq", Type: "u32"},
			{Name: "mode", Type: "u8"},
			{Name: "timestamp", Type: "u64"},
			{Name: "accel", Type: "Vec3"},
			{Name: "motors", Type: "u16*4"},
			{Name: "flag", Type: "i8"},
		},
	}

	s, err := def.Build()
	require.NoError(t, err)

	want := []fieldLayout{
		{Name: "armed", Offset: 0, Pad: 0, Size: 1},
		{Name: "seq", Offset: 4, Pad: 3, Size: 4},
		{Name: "mode", Offset: 8, Pad: 0, Size: 1},
		{Name: "timestamp", Offset: 16, Pad: 7, Size: 8},
		{Name: "accel", Offset: 24, Pad: 0, Size: 12},
		{Name: "motors", Offset: 36, Pad: 0, Size: 8},
		{Name: "flag", Offset: 44, Pad: 0, Size: 1},
	}
	if diff := cmp.Diff(want, layoutOf(s.Root)); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 48, s.Size())
	assert.Equal(t, 8, s.Align())
	assert.Equal(t, 3, s.TailPad())

	vec, err := s.Struct("Vec3")
	require.NoError(t, err)
	assert.Equal(t, 12, vec.Size)
	assert.Equal(t, 4, vec.Align)
	assert.Equal(t, 0, vec.TailPad)
}

func TestBuildPreservesFieldOrder(t *testing.T) {
	def := schema.Definition{Fields: []schema.FieldDef{
		{Name: "c", Type: "u8"},
		{Name: "a", Type: "u8"},
		{Name: "b", Type: "u8"},
	}}
	s, err := def.Build()
	require.NoError(t, err)

	var names []string
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
	assert.Equal(t, schema.DefaultName, s.Name())
}

func TestBuildEmpty(t *testing.T) {
	s, err := schema.Definition{}.Build()
	require.NoError(t, err)
	assert.Empty(t, s.Fields())
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 1, s.Align())
}

func TestTypeTokens(t *testing.T) {
	type testCase struct {
		name  string
		token string
		kind  schema.Kind
		size  int
		align int
		dims  []int
	}

	testCases := []testCase{
		{name: "u8", token: "u8", kind: schema.KindPrimitive, size: 1, align: 1},
		{name: "i16", token: "i16", kind: schema.KindPrimitive, size: 2, align: 2},
		{name: "f64", token: "f64", kind: schema.KindPrimitive, size: 8, align: 8},
		{name: "bool", token: "bool", kind: schema.KindPrimitive, size: 1, align: 1},
		{name: "array", token: "u32*3", kind: schema.KindArray, size: 12, align: 4, dims: []int{3}},
		{name: "matrix", token: "f32*3*2", kind: schema.KindArray, size: 24, align: 4, dims: []int{2, 3}},
		{name: "struct", token: "Pair", kind: schema.KindStruct, size: 16, align: 8},
		{name: "struct array", token: "Pair*2", kind: schema.KindArray, size: 32, align: 8, dims: []int{2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def := schema.Definition{
				Structs: []schema.StructDef{{Name: "Pair", Fields: []schema.FieldDef{
					{Name: "a", Type: "u8"},
					{Name: "b", Type: "u64"},
				}}},
				Fields: []schema.FieldDef{{Name: "v", Type: tc.token}},
			}
			s, err := def.Build()
			require.NoError(t, err)

			f, err := s.Field("v")
			require.NoError(t, err)
			assert.Equal(t, tc.kind, f.Type.Kind)
			assert.Equal(t, tc.size, f.Type.Size())
			assert.Equal(t, tc.align, f.Type.Align())
			assert.Equal(t, tc.dims, f.Type.Dims())
			assert.Equal(t, tc.token, f.Type.String())
		})
	}
}

func TestBuildErrors(t *testing.T) {
	type testCase struct {
		name string
		def  schema.Definition
		want error
	}

	testCases := []testCase{
		{
			name: "duplicate field",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "a", Type: "u8"}, {Name: "a", Type: "u16"}}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "case only duplicate",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "count", Type: "u8"}, {Name: "Count", Type: "u8"}}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "same go name",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "timestamp_us", Type: "u64"}, {Name: "timestampUs", Type: "u64"}}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "cpp keyword",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "class", Type: "u8"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "stdint type name",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "uint32_t", Type: "u32"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "padding member name",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "_pad1", Type: "u8"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "nested struct keyword field",
			def: schema.Definition{Structs: []schema.StructDef{
				{Name: "Vec", Fields: []schema.FieldDef{{Name: "union", Type: "f32"}}},
			}},
			want: schema.ErrReservedName,
		},
		{
			name: "struct named like primitive",
			def:  schema.Definition{Structs: []schema.StructDef{{Name: "u8"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "struct clashes with field table",
			def:  schema.Definition{Structs: []schema.StructDef{{Name: "ShmFieldInfo"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "struct clashes with offset constant",
			def:  schema.Definition{Structs: []schema.StructDef{{Name: "ShmOffsetSeq"}}},
			want: schema.ErrReservedName,
		},
		{
			name: "structs with same cpp name",
			def: schema.Definition{Structs: []schema.StructDef{
				{Name: "imu_raw", Fields: []schema.FieldDef{{Name: "x", Type: "f32"}}},
				{Name: "ImuRaw", Fields: []schema.FieldDef{{Name: "y", Type: "f32"}}},
			}},
			want: schema.ErrDuplicateStruct,
		},
		{
			name: "struct with root go name",
			def:  schema.Definition{Structs: []schema.StructDef{{Name: "shm"}}},
			want: schema.ErrDuplicateStruct,
		},
		{
			name: "unknown type",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "a", Type: "u128"}}},
			want: schema.ErrUnknownType,
		},
		{
			name: "empty type",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "a"}}},
			want: schema.ErrUnknownType,
		},
		{
			name: "zero length array",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "a", Type: "u8*0"}}},
			want: schema.ErrInvalidArray,
		},
		{
			name: "non numeric array",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "a", Type: "u8*count"}}},
			want: schema.ErrInvalidArray,
		},
		{
			name: "invalid field name",
			def:  schema.Definition{Fields: []schema.FieldDef{{Name: "1st", Type: "u8"}}},
			want: schema.ErrInvalidName,
		},
		{
			name: "invalid schema name",
			def:  schema.Definition{Name: "my-shm"},
			want: schema.ErrInvalidName,
		},
		{
			name: "duplicate struct",
			def: schema.Definition{Structs: []schema.StructDef{
				{Name: "Vec", Fields: []schema.FieldDef{{Name: "x", Type: "f32"}}},
				{Name: "Vec", Fields: []schema.FieldDef{{Name: "y", Type: "f32"}}},
			}},
			want: schema.ErrDuplicateStruct,
		},
		{
			name: "struct named like root",
			def:  schema.Definition{Structs: []schema.StructDef{{Name: schema.DefaultName}}},
			want: schema.ErrDuplicateStruct,
		},
		{
			name: "forward reference",
			def: schema.Definition{Structs: []schema.StructDef{
				{Name: "A", Fields: []schema.FieldDef{{Name: "b", Type: "B"}}},
				{Name: "B", Fields: []schema.FieldDef{{Name: "x", Type: "u8"}}},
			}},
			want: schema.ErrUnknownType,
		},
		{
			name: "self reference",
			def: schema.Definition{Structs: []schema.StructDef{
				{Name: "Node", Fields: []schema.FieldDef{{Name: "next", Type: "Node"}}},
			}},
			want: schema.ErrUnknownType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.def.Build()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuildAllowsDistinctMappedNames(t *testing.T) {
	// Different in C++ and in Go, so both are accepted.
	s, err := schema.Definition{Fields: []schema.FieldDef{
		{Name: "aB", Type: "u8"},
		{Name: "ab", Type: "u8"},
		{Name: "type", Type: "u8"},
	}}.Build()
	require.NoError(t, err)
	assert.Len(t, s.Fields(), 3)
}

func TestFieldLookup(t *testing.T) {
	s, err := schema.Definition{Fields: []schema.FieldDef{{Name: "count", Type: "u32"}}}.Build()
	require.NoError(t, err)

	f, err := s.Field("count")
	require.NoError(t, err)
	assert.Equal(t, "count", f.Name)
	assert.Equal(t, 4, f.End())

	_, err = s.Field("missing")
	assert.ErrorIs(t, err, schema.ErrUnknownField)
	assert.Contains(t, err.Error(), `"missing"`)

	_, err = s.Struct("Nope")
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "primitive", schema.KindPrimitive.String())
	assert.Equal(t, "array", schema.KindArray.String())
	assert.Equal(t, "struct", schema.KindStruct.String())
	assert.Equal(t, "Kind(9)", schema.Kind(9).String())
}
