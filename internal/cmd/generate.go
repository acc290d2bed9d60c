package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/intfrr/jankdrone/internal/codegen/generator"
	"github.com/intfrr/jankdrone/internal/codegen/schema"
	"github.com/intfrr/jankdrone/internal/codegen/shm"
	"github.com/intfrr/jankdrone/internal/codegen/templates"
)

// Options are shared by generate and check.
type Options struct {
	Root      string `help:"Directory the generated paths are relative to" default:"." env:"SHMGEN_ROOT" placeholder:"DIR"`
	Templates string `help:"Load templates from this directory instead of the built-in set" env:"SHMGEN_TEMPLATES" placeholder:"DIR"`
	Schema    string `help:"Layout definition (yaml, toml, json or hcl) replacing the built-in segment" env:"SHMGEN_SCHEMA" placeholder:"FILE"`
}

// newGenerator resolves the schema and template sources selected by o.
func (o Options) newGenerator(logger *slog.Logger) (*generator.Generator, *schema.Schema, error) {
	var (
		s   *schema.Schema
		err error
	)
	if o.Schema != "" {
		logger.Debug("Loading schema", "path", o.Schema)
		s, err = schema.Load(o.Schema)
	} else {
		logger.Debug("Using built-in schema", "source", shm.SourceName)
		s, err = shm.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load schema: %w", err)
	}

	var tmpls fs.FS = templates.FS()
	if o.Templates != "" {
		info, err := os.Stat(o.Templates)
		if err != nil {
			return nil, nil, fmt.Errorf("template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("template directory: %s is not a directory", o.Templates)
		}
		tmpls = os.DirFS(o.Templates)
	}

	gen := generator.New(generator.Config{
		Targets:    generator.DefaultTargets(),
		Templates:  tmpls,
		OutputRoot: o.Root,
	}, logger)
	return gen, s, nil
}

type Generate struct {
	Options `embed:""`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Generate(ctx, logger)
}

func (g *Generate) Generate(ctx context.Context, logger *slog.Logger) error {
	gen, s, err := g.newGenerator(logger)
	if err != nil {
		return err
	}
	return gen.Run(ctx, s)
}
