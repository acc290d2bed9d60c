package generator

import (
	"fmt"
	"go/format"
	"io/fs"
)

// Format is a post-render step applied to a target's output.
type Format int

const (
	FormatNone Format = iota
	// FormatGo runs gofmt over the output; an unparsable render fails.
	FormatGo
)

func (f Format) apply(src []byte) ([]byte, error) {
	switch f {
	case FormatGo:
		out, err := format.Source(src)
		if err != nil {
			return nil, fmt.Errorf("gofmt: %w", err)
		}
		return out, nil
	default:
		return src, nil
	}
}

// Target pairs a template with the file rendered from it.
type Target struct {
	// Template is a slash path inside the template filesystem.
	Template string
	// Output is a slash path relative to the output root.
	Output string
	Format Format
}

func (t Target) String() string { return t.Template + " -> " + t.Output }

// DefaultTargets returns the artifacts derived from the shared-memory
// schema, in the order they are generated.
func DefaultTargets() []Target {
	return []Target{
		{Template: "shmdef.cpp.tmpl", Output: "copter/src/shmdef.cpp"},
		{Template: "shmdef.h.tmpl", Output: "copter/src/shmdef.h"},
		{Template: "shmdef.go.tmpl", Output: "client/shmdef.go", Format: FormatGo},
	}
}

// ValidateTargets checks a target list before anything is rendered.
func ValidateTargets(targets []Target) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	outputs := make(map[string]Target, len(targets))
	for _, t := range targets {
		if !fs.ValidPath(t.Template) || t.Template == "." {
			return fmt.Errorf("%w: template path %q", ErrInvalidTarget, t.Template)
		}
		if !fs.ValidPath(t.Output) || t.Output == "." {
			return fmt.Errorf("%w: output path %q", ErrInvalidTarget, t.Output)
		}
		if prev, dup := outputs[t.Output]; dup {
			return fmt.Errorf("%w: %q is written by both %s and %s", ErrDuplicateOutput, t.Output, prev.Template, t.Template)
		}
		outputs[t.Output] = t
	}
	return nil
}
