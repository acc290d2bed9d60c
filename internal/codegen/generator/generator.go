package generator

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/intfrr/jankdrone/internal/codegen/render"
	"github.com/intfrr/jankdrone/internal/codegen/schema"
	"github.com/intfrr/jankdrone/internal/log"
)

// Config is everything a run needs besides the schema.
type Config struct {
	// Targets are processed in order; the first failure stops the run.
	Targets []Target
	// Templates resolves Target.Template paths.
	Templates fs.FS
	// OutputRoot is the directory Target.Output paths are relative to.
	OutputRoot string
}

type Generator struct {
	cfg      Config
	renderer *render.Renderer
	logger   *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		renderer: render.New(),
		logger:   logger,
	}
}

// Run renders every target from s and overwrites its output file.
//
// Targets are handled one at a time in declared order. A target's output is
// only written once its template has loaded and rendered successfully, and
// the first error of any stage aborts the run: later targets are not
// touched. Cancellation of ctx is honoured between targets only.
func (g *Generator) Run(ctx context.Context, s *schema.Schema) error {
	if err := g.validate(s); err != nil {
		return err
	}

	g.logger.Info("Generating shared-memory definitions",
		"schema", s.Name(), "size", s.Size(), "fields", len(s.Fields()), "targets", len(g.cfg.Targets))

	for _, t := range g.cfg.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		out, err := g.renderTarget(ctx, t, s)
		if err != nil {
			return err
		}

		path := g.outputPath(t)
		g.logger.Debug("Writing output", "output", path)
		if err := atomicWriteFile(path, out, 0o644); err != nil {
			return &TargetError{Target: t, Stage: StageWrite, Err: err}
		}
		g.logger.Info("Generated file", "template", t.Template, "output", path, "bytes", len(out))
	}

	g.logger.Info("Generation complete", "targets", len(g.cfg.Targets))
	return nil
}

func (g *Generator) validate(s *schema.Schema) error {
	if s == nil || s.Root == nil {
		return errors.New("no schema")
	}
	if g.cfg.Templates == nil {
		return errors.New("no template filesystem")
	}
	return ValidateTargets(g.cfg.Targets)
}

// renderTarget performs the load and render stages of t.
func (g *Generator) renderTarget(ctx context.Context, t Target, s *schema.Schema) ([]byte, error) {
	g.logger.Debug("Loading template", "template", t.Template)
	src, err := fs.ReadFile(g.cfg.Templates, t.Template)
	if err != nil {
		return nil, &TargetError{Target: t, Stage: StageLoad, Err: err}
	}

	g.logger.Debug("Rendering template", "template", t.Template, "bytes", len(src))
	out, err := g.renderer.Render(t.Template, src, render.NewContext(s, t.Output))
	if err != nil {
		return nil, &TargetError{Target: t, Stage: StageRender, Err: err}
	}
	out, err = t.Format.apply(out)
	if err != nil {
		return nil, &TargetError{Target: t, Stage: StageRender, Err: err}
	}
	g.logger.Log(ctx, log.LevelTrace, "Rendered template", "template", t.Template, "content", string(out))
	return out, nil
}

func (g *Generator) outputPath(t Target) string {
	return filepath.Join(g.cfg.OutputRoot, filepath.FromSlash(t.Output))
}
