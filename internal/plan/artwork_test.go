package plan

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestResolveArtworkDetectsMIMEType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.bin")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatalf("write artwork: %v", err)
	}
	art := ResolveArtwork(path, "mka", true, nil)
	if art == nil {
		t.Fatal("expected artwork")
	}
	if art.MIMEType != "image/png" || art.Path != path {
		t.Fatalf("unexpected artwork %#v", art)
	}
}

func TestResolveArtworkJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folder.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, 0o644); err != nil {
		t.Fatalf("write artwork: %v", err)
	}
	art := ResolveArtwork(path, "mka", true, nil)
	if art == nil || art.MIMEType != "image/jpeg" {
		t.Fatalf("unexpected artwork %#v", art)
	}
}

func TestResolveArtworkMissingWarns(t *testing.T) {
	logger, buf := captureLogger()
	art := ResolveArtwork(filepath.Join(t.TempDir(), "nope.png"), "mka", true, logger)
	if art != nil {
		t.Fatalf("expected nil artwork, got %#v", art)
	}
	if !strings.Contains(buf.String(), "artwork_not_found") {
		t.Fatalf("expected artwork_not_found warning, got %q", buf.String())
	}
}

func TestResolveArtworkUnsupportedContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatalf("write artwork: %v", err)
	}
	logger, buf := captureLogger()
	if art := ResolveArtwork(path, "m4a", true, logger); art != nil {
		t.Fatalf("expected nil artwork, got %#v", art)
	}
	if !strings.Contains(buf.String(), "unsupported_artwork_container") {
		t.Fatalf("expected unsupported container warning, got %q", buf.String())
	}
}

func TestResolveArtworkIgnoredForRawOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatalf("write artwork: %v", err)
	}
	if art := ResolveArtwork(path, "dts", false, nil); art != nil {
		t.Fatalf("expected nil artwork, got %#v", art)
	}
	if art := ResolveArtwork("", "mka", true, nil); art != nil {
		t.Fatalf("expected nil for empty path, got %#v", art)
	}
}
