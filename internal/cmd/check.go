package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/intfrr/jankdrone/internal/codegen/generator"
)

type Check struct {
	Options `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.Check(ctx, logger)
}

func (c *Check) Check(ctx context.Context, logger *slog.Logger) error {
	gen, s, err := c.newGenerator(logger)
	if err != nil {
		return err
	}

	drifts, err := gen.Check(ctx, s)
	if errors.Is(err, generator.ErrStale) {
		missing := 0
		for _, d := range drifts {
			if d.Missing() {
				missing++
			}
		}
		return fmt.Errorf("%d of %d generated files differ (%d missing), run shmgen generate: %w",
			len(drifts), len(generator.DefaultTargets()), missing, err)
	}
	if err != nil {
		return err
	}
	logger.Info("Generated files are up to date", "targets", len(generator.DefaultTargets()))
	return nil
}
