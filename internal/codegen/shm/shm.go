// Package shm holds the canonical layout of the jankdrone shared-memory
// segment. Every generated declaration derives from shm.yaml.
package shm

import (
	_ "embed"
	"fmt"

	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

// SourceName is the name the embedded definition is parsed under.
const SourceName = "shm.yaml"

//go:embed shm.yaml
var definition []byte

// Definition decodes the embedded layout definition.
func Definition() (schema.Definition, error) {
	return schema.Parse(SourceName, definition)
}

// Load builds the canonical schema.
func Load() (*schema.Schema, error) {
	def, err := Definition()
	if err != nil {
		return nil, err
	}
	s, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", SourceName, err)
	}
	return s, nil
}
