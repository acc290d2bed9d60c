package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Load reads a definition file and builds the schema. The format is chosen
// by extension: .yaml/.yml, .toml, .json or .hcl.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	def, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	s, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("build schema %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a definition. name is only used to select the format and in
// diagnostics.
func Parse(name string, data []byte) (Definition, error) {
	var def Definition
	var err error

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&def)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(&def)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	case ".hcl":
		err = decodeHCL(name, data, &def)
	default:
		return def, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return def, fmt.Errorf("decode schema %s: %w", name, err)
	}
	return def, nil
}

func decodeHCL(name string, data []byte, def *Definition) error {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(file.Body, nil, def); diags.HasErrors() {
		return diags
	}
	return nil
}
