package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"tractor/internal/plan"
)

func commands(outDir string, n int) []plan.Command {
	var cmds []plan.Command
	for i := 1; i <= n; i++ {
		out := filepath.Join(outDir, "track.dts")
		cmds = append(cmds, plan.Command{
			Track:  i,
			Args:   []string{"ffmpeg", "-i", "My Source.mkv", "-ss", "0.000", out},
			Output: out,
		})
	}
	return cmds
}

func TestRunDryRunPrintsWithoutSideEffects(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - Album")
	var out bytes.Buffer
	called := false
	r := New(nil,
		WithDryRun(true),
		WithOutput(&out),
		WithLockFile(filepath.Join(t.TempDir(), "lock", "tractor.lock")),
		WithCommandRunner(func(context.Context, string, ...string) error {
			called = true
			return nil
		}),
	)

	summary, err := r.Run(context.Background(), dir, slices.Values(commands(dir, 2)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Fatal("dry run must not execute commands")
	}
	if summary.Planned != 2 || summary.Succeeded != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "ffmpeg -i 'My Source.mkv'") {
		t.Fatalf("unexpected dry-run output %q", out.String())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the destination")
	}
}

func TestRunExecutesSequentiallyAndCountsFailures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - Album")
	var seen []string
	r := New(nil, WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		seen = append(seen, name+" "+args[len(args)-1])
		if len(seen) == 2 {
			return errors.New("exit status 1")
		}
		return nil
	}))

	summary, err := r.Run(context.Background(), dir, slices.Values(commands(dir, 3)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 executions, got %d", len(seen))
	}
	if !strings.HasPrefix(seen[0], "ffmpeg ") {
		t.Fatalf("unexpected binary %q", seen[0])
	}
	if summary.Planned != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected destination directory, got %v", err)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := New(nil, WithCommandRunner(func(context.Context, string, ...string) error {
		calls++
		cancel()
		return errors.New("signal: killed")
	}))
	_, err := r.Run(ctx, dir, slices.Values(commands(dir, 3)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single execution, got %d", calls)
	}
}

func TestRunDestinationConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Artist - Album")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	r := New(nil, WithCommandRunner(func(context.Context, string, ...string) error { return nil }))
	_, err := r.Run(context.Background(), path, slices.Values(commands(path, 1)))
	if !errors.Is(err, ErrDestinationConflict) {
		t.Fatalf("expected ErrDestinationConflict, got %v", err)
	}
}

func TestEnsureDestinationExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDestination(dir); err != nil {
		t.Fatalf("EnsureDestination: %v", err)
	}
	nested := filepath.Join(dir, "Artist", "Album")
	if err := EnsureDestination(nested); err != nil {
		t.Fatalf("EnsureDestination nested: %v", err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Fatalf("expected nested directory, got %v", err)
	}
}

func TestRunRefusesWhenLocked(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "tractor.lock")
	held := flock.New(lockPath)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: %v %v", ok, err)
	}
	defer held.Unlock()

	dir := t.TempDir()
	r := New(nil,
		WithLockFile(lockPath),
		WithCommandRunner(func(context.Context, string, ...string) error { return nil }),
	)
	_, err = r.Run(context.Background(), dir, slices.Values(commands(dir, 1)))
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestDefaultCommandRunnerReportsExitStatus(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fail")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho noisy >&2\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	err := defaultCommandRunner(context.Background(), script, "-i", "x")
	if err == nil || !strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("expected exit status error, got %v", err)
	}
}
