package schema

import (
	"fmt"
	"strings"

	"github.com/intfrr/jankdrone/internal/codegen/common"
)

// DefaultName is the root struct name used when a definition leaves it empty.
const DefaultName = "Shm"

// Definition is the serialized form of a layout, as read from YAML, TOML,
// JSON or HCL. Struct types must be declared before they are referenced.
type Definition struct {
	Name    string      `yaml:"name,omitempty" toml:"name" json:"name,omitempty" hcl:"name,optional"`
	Doc     string      `yaml:"doc,omitempty" toml:"doc" json:"doc,omitempty" hcl:"doc,optional"`
	Structs []StructDef `yaml:"structs,omitempty" toml:"structs" json:"structs,omitempty" hcl:"struct,block"`
	Fields  []FieldDef  `yaml:"fields" toml:"fields" json:"fields" hcl:"field,block"`
}

// StructDef declares a nested struct type.
type StructDef struct {
	Name   string     `yaml:"name" toml:"name" json:"name" hcl:"name,label"`
	Doc    string     `yaml:"doc,omitempty" toml:"doc" json:"doc,omitempty" hcl:"doc,optional"`
	Fields []FieldDef `yaml:"fields" toml:"fields" json:"fields" hcl:"field,block"`
}

// FieldDef declares one field. Type is a type token: a primitive, a
// previously declared struct name, optionally followed by "*N" array markers.
type FieldDef struct {
	Name string `yaml:"name" toml:"name" json:"name" hcl:"name,label"`
	Type string `yaml:"type" toml:"type" json:"type" hcl:"type"`
	Doc  string `yaml:"doc,omitempty" toml:"doc" json:"doc,omitempty" hcl:"doc,optional"`
}

// Build validates the definition and computes the layout.
//
// Besides the identifier rules, names must stay distinct once mapped to
// C++ and Go identifiers. Struct names may not shadow a primitive token or
// the constants and types generated from the root name.
func (d Definition) Build() (*Schema, error) {
	rootName := d.Name
	if rootName == "" {
		rootName = DefaultName
	}
	if !validIdent(rootName) {
		return nil, fmt.Errorf("%w: schema name %q", ErrInvalidName, rootName)
	}

	declared := make(map[string]*Struct, len(d.Structs))
	names := newTypeNames(rootName)
	out := &Schema{Structs: make([]*Struct, 0, len(d.Structs))}

	for _, sd := range d.Structs {
		if !validIdent(sd.Name) {
			return nil, fmt.Errorf("%w: struct name %q", ErrInvalidName, sd.Name)
		}
		if Primitive(sd.Name).Valid() {
			return nil, fmt.Errorf("%w: struct name %q is a primitive type", ErrReservedName, sd.Name)
		}
		if err := names.add(sd.Name); err != nil {
			return nil, err
		}
		st, err := buildStruct(sd.Name, sd.Doc, sd.Fields, declared)
		if err != nil {
			return nil, err
		}
		declared[sd.Name] = st
		out.Structs = append(out.Structs, st)
	}

	root, err := buildStruct(rootName, d.Doc, d.Fields, declared)
	if err != nil {
		return nil, err
	}
	out.Root = root
	return out, nil
}

// typeNames tracks the C++ and Go spellings of every struct type.
type typeNames struct {
	root     string
	cppNames map[string]string
	goNames  map[string]string
}

func newTypeNames(root string) *typeNames {
	return &typeNames{
		root:     root,
		cppNames: map[string]string{common.ToPascalCase(root): root},
		goNames:  map[string]string{common.ToGoName(root): root},
	}
}

func (n *typeNames) add(name string) error {
	cppName, goName := common.ToPascalCase(name), common.ToGoName(name)
	if prev, dup := n.cppNames[cppName]; dup {
		return fmt.Errorf("%w: %q (conflicts with %q as %s)", ErrDuplicateStruct, name, prev, cppName)
	}
	if prev, dup := n.goNames[goName]; dup {
		return fmt.Errorf("%w: %q (conflicts with %q as %s)", ErrDuplicateStruct, name, prev, goName)
	}

	cppRoot, goRoot := common.ToPascalCase(n.root), common.ToGoName(n.root)
	if cppName == cppRoot+"FieldInfo" || goName == goRoot+"Size" || strings.HasPrefix(goName, goRoot+"Offset") {
		return fmt.Errorf("%w: struct name %q clashes with generated declarations", ErrReservedName, name)
	}

	n.cppNames[cppName] = name
	n.goNames[goName] = name
	return nil
}

func buildStruct(name, doc string, defs []FieldDef, declared map[string]*Struct) (*Struct, error) {
	st := &Struct{Name: name, Doc: doc, Fields: make([]*Field, 0, len(defs))}
	seen := make(map[string]string, len(defs))

	for _, fd := range defs {
		if !validIdent(fd.Name) {
			return nil, fmt.Errorf("%s: %w: field name %q", name, ErrInvalidName, fd.Name)
		}
		if cppReserved[fd.Name] || strings.HasPrefix(fd.Name, padPrefix) {
			return nil, fmt.Errorf("%s: %w: field name %q", name, ErrReservedName, fd.Name)
		}
		// Go field names and offset constants are derived from the name.
		key := common.ToGoName(fd.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%s: %w: %q (conflicts with %q as %s)", name, ErrDuplicateField, fd.Name, prev, key)
		}
		seen[key] = fd.Name

		t, err := parseType(fd.Type, declared)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, fd.Name, err)
		}
		st.Fields = append(st.Fields, &Field{Name: fd.Name, Doc: fd.Doc, Type: t})
	}

	layout(st)
	return st, nil
}
