package main

import (
	"context"
	"errors"

	"tractor/internal/reconcile"
	"tractor/internal/runner"
)

const (
	exitFailure     = 1
	exitNoInput     = 66
	exitCantCreate  = 74
	exitInterrupted = 130
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps command errors to process exit statuses.
func exitCode(err error) int {
	var coded *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &coded):
		return coded.code
	case errors.Is(err, reconcile.ErrMissingInput):
		return exitNoInput
	case errors.Is(err, runner.ErrDestinationConflict):
		return exitCantCreate
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitFailure
	}
}
