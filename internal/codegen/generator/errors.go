package generator

import (
	"errors"
	"fmt"
)

// Stage identifies the step of a target that failed.
type Stage string

const (
	StageLoad   Stage = "load"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
)

var (
	// ErrResource: a template could not be opened or read.
	ErrResource = errors.New("template unavailable")
	// ErrRender: the template failed to parse or execute against the schema,
	// or its output failed post-render formatting.
	ErrRender = errors.New("render failed")
	// ErrWrite: the output could not be created or written.
	ErrWrite = errors.New("write failed")

	ErrNoTargets       = errors.New("no targets declared")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrDuplicateOutput = errors.New("duplicate output path")
	ErrStale           = errors.New("generated files are out of date")
)

// TargetError reports which target failed, at which stage, and why.
type TargetError struct {
	Target Target
	Stage  Stage
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Target, e.Err)
}

// Unwrap exposes both the stage sentinel and the underlying cause.
func (e *TargetError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *TargetError) sentinel() error {
	switch e.Stage {
	case StageLoad:
		return ErrResource
	case StageRender:
		return ErrRender
	default:
		return ErrWrite
	}
}
