package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"tractor/internal/logging"
	"tractor/internal/plan"
)

var (
	// ErrDestinationConflict is returned when the album directory path exists
	// and is not a directory.
	ErrDestinationConflict = errors.New("destination exists and is not a directory")
	// ErrLocked is returned when another run holds the lock file.
	ErrLocked = errors.New("another tractor run is in progress")
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Summary counts the outcome of a run.
type Summary struct {
	Planned   int
	Succeeded int
	Failed    int
}

// Runner prints or executes commands.
type Runner struct {
	dryRun   bool
	out      io.Writer
	lockPath string
	logger   *slog.Logger
	run      commandRunner
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDryRun prints commands instead of running them.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithOutput sets the writer dry-run commands are printed to.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLockFile sets the lock held while commands execute. Empty disables locking.
func WithLockFile(path string) Option {
	return func(r *Runner) {
		r.lockPath = path
	}
}

// WithCommandRunner injects a custom command runner (primarily for tests).
func WithCommandRunner(fn commandRunner) Option {
	return func(r *Runner) {
		if fn != nil {
			r.run = fn
		}
	}
}

// New constructs a Runner.
func New(logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		out:    os.Stdout,
		logger: logging.NewComponentLogger(logger, "runner"),
		run:    defaultCommandRunner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run prints or executes every command. dir is the album directory the
// commands write into.
func (r *Runner) Run(ctx context.Context, dir string, commands iter.Seq[plan.Command]) (Summary, error) {
	var summary Summary
	if r.dryRun {
		for cmd := range commands {
			summary.Planned++
			if _, err := fmt.Fprintln(r.out, cmd.String()); err != nil {
				return summary, fmt.Errorf("write command: %w", err)
			}
		}
		return summary, nil
	}

	if err := EnsureDestination(dir); err != nil {
		return summary, err
	}
	unlock, err := r.acquireLock()
	if err != nil {
		return summary, err
	}
	defer unlock()

	for cmd := range commands {
		summary.Planned++
		if len(cmd.Args) == 0 {
			continue
		}
		r.logger.Info("processing track",
			logging.Int(logging.FieldTrack, cmd.Track),
			logging.String("output", cmd.Output),
		)
		runErr := r.run(ctx, cmd.Args[0], cmd.Args[1:]...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}
		if runErr != nil {
			summary.Failed++
			logging.WarnWithContext(r.logger, "track failed", "track_failed",
				logging.Int(logging.FieldTrack, cmd.Track),
				logging.String("output", cmd.Output),
				logging.Error(runErr),
				logging.String(logging.FieldErrorHint, "rerun with --dry-run and execute the command by hand to see encoder output"),
				logging.String(logging.FieldImpact, "track missing from output"),
			)
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

// EnsureDestination creates dir when missing. An existing non-directory at
// dir is an ErrDestinationConflict.
func EnsureDestination(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDestinationConflict, dir)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat destination: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	return nil
}

func (r *Runner) acquireLock() (func(), error) {
	if r.lockPath == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(r.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, r.lockPath)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.String("lock", r.lockPath), logging.Error(err))
		}
	}, nil
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", filepath.Base(name), strings.Join(args, " "), err)
	}
	return nil
}
