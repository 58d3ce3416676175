package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tractor/internal/reconcile"
	"tractor/internal/runner"
)

const chapterProbeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "codec_long_name": "H.264 / AVC"},
    {"index": 1, "codec_type": "audio", "codec_name": "dts", "codec_long_name": "DCA (DTS Coherent Acoustics)", "channels": 6}
  ],
  "chapters": [
    {"id": 0, "start_time": "0.000000", "end_time": "180.000000", "tags": {"title": "Intro"}},
    {"id": 1, "start_time": "180.000000", "end_time": "360.000000", "tags": {"title": "Middle"}},
    {"id": 2, "start_time": "360.000000", "end_time": "540.000000", "tags": {"title": "Outro"}}
  ]
}`

// cliTestEnv holds stub tool paths. The stub ffmpeg creates ffmpegMarker
// whenever it runs.
type cliTestEnv struct {
	baseDir      string
	configPath   string
	outputDir    string
	ffprobe      string
	ffmpegMarker string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	ffprobe := writeScript(t, binDir, "ffprobe", "cat <<'JSON'\n"+chapterProbeJSON+"\nJSON\n")
	marker := filepath.Join(base, "ffmpeg-ran")
	ffmpeg := writeScript(t, binDir, "ffmpeg", ": > \""+marker+"\"\n")

	outputDir := filepath.Join(base, "out")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir out: %v", err)
	}
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[paths]
output_dir = %q
lock_file = %q

[tools]
ffmpeg = %q
ffprobe = %q

[logging]
level = "error"
`, outputDir, filepath.Join(base, "state", "tractor.lock"), ffmpeg, ffprobe)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:      base,
		configPath:   configPath,
		outputDir:    outputDir,
		ffprobe:      ffprobe,
		ffmpegMarker: marker,
	}
}

// withoutFFprobe points the config at an ffprobe binary that does not exist.
func (env *cliTestEnv) withoutFFprobe(t *testing.T) {
	t.Helper()
	data, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	missing := filepath.Join(env.baseDir, "bin", "no-such-ffprobe")
	updated := strings.Replace(string(data), fmt.Sprintf("%q", env.ffprobe), fmt.Sprintf("%q", missing), 1)
	if err := os.WriteFile(env.configPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeCueSheet(t *testing.T, dir string) string {
	t.Helper()
	sheet := filepath.Join(dir, "disc.cue")
	cue := "PERFORMER \"Band\"\nTITLE \"Live\"\nFILE \"live.dts\" WAVE\n" +
		"  TRACK 01 AUDIO\n    TITLE \"Don't Stop\"\n    INDEX 01 00:00:00\n"
	if err := os.WriteFile(sheet, []byte(cue), 0o644); err != nil {
		t.Fatalf("write cue: %v", err)
	}
	return sheet
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDryRunPrintsCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "Artist - Album.mkv")

	stdout, _, err := runCLI(t, []string{"-n", "-s", source}, env.configPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 command lines, got %d:\n%s", len(lines), stdout)
	}
	pairs := []string{"-ss 0.000 -t 180.000", "-ss 180.000 -t 180.000", "-ss 360.000 -t 180.000"}
	for i, line := range lines {
		if !strings.Contains(line, pairs[i]) {
			t.Fatalf("line %d missing %q: %s", i, pairs[i], line)
		}
		if !strings.Contains(line, "-map 0:1 -c:a copy") {
			t.Fatalf("line %d has unexpected stream mapping: %s", i, line)
		}
	}
	wantOut := "'" + filepath.Join(env.outputDir, "Artist - Album", "01 - Intro.dts") + "'"
	if !strings.HasSuffix(lines[0], wantOut) {
		t.Fatalf("unexpected output path in %s", lines[0])
	}
	if _, err := os.Stat(filepath.Join(env.outputDir, "Artist - Album")); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the album directory")
	}
}

func TestDryRunContainerWithCueAndDisc(t *testing.T) {
	env := setupCLITestEnv(t)
	sheet := writeCueSheet(t, env.baseDir)

	stdout, _, err := runCLI(t, []string{"-n", "-c", "-d", sheet, "--disc", "02", "--genre", "Rock", "-l", "itunes"}, env.configPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	line := strings.TrimSpace(stdout)
	for _, want := range []string{
		`'title=Don\'t Stop'`,
		"genre=Rock",
		"disc=2",
		"artist=Band",
		"'" + filepath.Join(env.outputDir, "Band", "Live", `2-01 Don\'t Stop.mka`) + "'",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %s", want, line)
		}
	}
	if strings.Contains(line, " -t ") {
		t.Fatalf("single open-ended track must not carry -t: %s", line)
	}
}

func TestExecuteCreatesDestination(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "Artist - Album.mkv")

	stdout, _, err := runCLI(t, []string{"-s", source}, env.configPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected no stdout when executing, got %q", stdout)
	}
	info, err := os.Stat(filepath.Join(env.outputDir, "Artist - Album"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected album directory, got %v", err)
	}
	if _, err := os.Stat(env.ffmpegMarker); err != nil {
		t.Fatalf("expected ffmpeg to run: %v", err)
	}
}

func TestExecuteCueWithoutFFprobe(t *testing.T) {
	env := setupCLITestEnv(t)
	env.withoutFFprobe(t)
	sheet := writeCueSheet(t, env.baseDir)

	if _, _, err := runCLI(t, []string{"-d", sheet}, env.configPath); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.outputDir, "Band - Live")); err != nil {
		t.Fatalf("expected album directory: %v", err)
	}
	if _, err := os.Stat(env.ffmpegMarker); err != nil {
		t.Fatalf("expected ffmpeg to run: %v", err)
	}
}

func TestMissingInputExitCode(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"-n"}, env.configPath)
	if !errors.Is(err, reconcile.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if code := exitCode(err); code != 66 {
		t.Fatalf("expected exit code 66, got %d", code)
	}
}

func TestDestinationConflictExitCode(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(filepath.Join(env.outputDir, "Artist - Album"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	source := filepath.Join(env.baseDir, "Artist - Album.mkv")
	_, _, err := runCLI(t, []string{"-s", source}, env.configPath)
	if !errors.Is(err, runner.ErrDestinationConflict) {
		t.Fatalf("expected ErrDestinationConflict, got %v", err)
	}
	if code := exitCode(err); code != 74 {
		t.Fatalf("expected exit code 74, got %d", code)
	}
	if _, err := os.Stat(env.ffmpegMarker); !os.IsNotExist(err) {
		t.Fatalf("expected no encoder command to run, stat err %v", err)
	}
}

func TestDestinationConflictWithoutFFprobe(t *testing.T) {
	env := setupCLITestEnv(t)
	env.withoutFFprobe(t)
	sheet := writeCueSheet(t, env.baseDir)
	if err := os.WriteFile(filepath.Join(env.outputDir, "Band - Live"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	_, _, err := runCLI(t, []string{"-d", sheet}, env.configPath)
	if code := exitCode(err); code != 74 {
		t.Fatalf("expected exit code 74, got %d (%v)", code, err)
	}
	if _, err := os.Stat(env.ffmpegMarker); !os.IsNotExist(err) {
		t.Fatalf("expected no encoder command to run, stat err %v", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{fmt.Errorf("wrapped: %w", reconcile.ErrMissingInput), 66},
		{fmt.Errorf("wrapped: %w", runner.ErrDestinationConflict), 74},
		{withExitCode(3, errors.New("custom")), 3},
	}
	for _, tc := range tests {
		if got := exitCode(tc.err); got != tc.code {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.code)
		}
	}
}

func TestShowRendersSchedule(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "Artist - Album.mkv")
	if err := os.WriteFile(source, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"show", "-s", source}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Artist:    Artist", "Album:     Album", "2.0 kB", "01 - Intro.dts", "3:00.000", "Outro"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestShowJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "Artist - Album.mkv")
	stdout, _, err := runCLI(t, []string{"show", "--json", "-s", source}, env.configPath)
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	if !strings.Contains(stdout, `"audio_codec": "dts"`) || !strings.Contains(stdout, `"title": "Middle"`) {
		t.Fatalf("unexpected JSON output:\n%s", stdout)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "tractor", "config.toml")
	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target path in output, got %q", stdout)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err != nil {
		t.Fatalf("validate sample: %v", err)
	}
}

func TestDoctorReportsProblems(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "FFmpeg:") || !strings.Contains(stdout, "[OK] Ready") {
		t.Fatalf("unexpected doctor output:\n%s", stdout)
	}

	broken := filepath.Join(env.baseDir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[tools]\nffmpeg = \"definitely-not-installed-ffmpeg\"\n[paths]\noutput_dir = \""+env.outputDir+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	stdout, _, err = runCLI(t, []string{"doctor"}, broken)
	if err == nil {
		t.Fatal("expected doctor to fail with a missing binary")
	}
	if !strings.Contains(stdout, "Missing dependencies") {
		t.Fatalf("expected missing dependency summary:\n%s", stdout)
	}
}
