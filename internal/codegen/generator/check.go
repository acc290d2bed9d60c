package generator

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/intfrr/jankdrone/internal/codegen/schema"
)

// Drift describes an output whose contents on disk differ from what the
// current schema and templates produce.
type Drift struct {
	Target Target
	Path   string
	Want   string // BLAKE2b-256 of the freshly rendered output
	Got    string // BLAKE2b-256 of the file on disk, empty when missing
}

// Missing reports whether the output file does not exist yet.
func (d Drift) Missing() bool { return d.Got == "" }

// Check renders every target in memory and compares the result with the
// existing outputs without writing anything. It returns the drifted
// targets in declared order and ErrStale when there is at least one.
// Load and render failures abort the check exactly as they abort Run.
func (g *Generator) Check(ctx context.Context, s *schema.Schema) ([]Drift, error) {
	if err := g.validate(s); err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, t := range g.cfg.Targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		want, err := g.renderTarget(ctx, t, s)
		if err != nil {
			return nil, err
		}

		path := g.outputPath(t)
		got, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			drifts = append(drifts, Drift{Target: t, Path: path, Want: digest(want)})
			g.logger.Warn("Generated file missing", "output", path)
			continue
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		if !bytes.Equal(want, got) {
			d := Drift{Target: t, Path: path, Want: digest(want), Got: digest(got)}
			drifts = append(drifts, d)
			g.logger.Warn("Generated file out of date", "output", path, "want", d.Want, "got", d.Got)
			continue
		}
		g.logger.Debug("Generated file up to date", "output", path)
	}

	if len(drifts) > 0 {
		return drifts, ErrStale
	}
	return nil, nil
}

func digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
