package cue

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"tractor/internal/album"
)

const sampleSheet = `REM GENRE "Progressive Rock"
REM DATE 1979
REM DISCNUMBER "1/2"
PERFORMER "Pink Floyd"
TITLE "The Wall"
FILE "The Wall.dts" WAVE
  TRACK 01 AUDIO
    TITLE "In the Flesh?"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "The Thin Ice"
    PERFORMER "Roger Waters"
    INDEX 00 03:15:00
    INDEX 01 03:19:30
  TRACK 05 AUDIO
    TITLE "Another Brick in the Wall, Part 1"
    INDEX 01 05:46:12
`

func TestParseSheet(t *testing.T) {
	p, err := Parse(sampleSheet)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := album.Merge(p)
	if a.AudioCodec != album.CodecDTS {
		t.Fatalf("expected dts codec, got %q", a.AudioCodec)
	}
	if a.Genre != "Progressive Rock" || a.DateReleased != "1979" || a.Disc != "1/2" {
		t.Fatalf("unexpected REM fields: genre=%q date=%q disc=%q", a.Genre, a.DateReleased, a.Disc)
	}
	if a.Artist != "Pink Floyd" || a.Album != "The Wall" {
		t.Fatalf("unexpected album fields: %q / %q", a.Artist, a.Album)
	}
	if a.MediaSource != "The Wall.dts" {
		t.Fatalf("unexpected media source %q", a.MediaSource)
	}
	if len(a.Tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(a.Tracks))
	}

	wantNumbers := []int{1, 2, 5}
	wantStarts := []float64{0, 3*60 + 19 + 30.0/60.0, 5*60 + 46 + 12.0/60.0}
	for i, track := range a.Tracks {
		if track.Number != wantNumbers[i] {
			t.Fatalf("track %d: number %d want %d", i, track.Number, wantNumbers[i])
		}
		if !track.HasStart() || math.Abs(*track.Start-wantStarts[i]) > 1e-9 {
			t.Fatalf("track %d: start %v want %v", i, track.Start, wantStarts[i])
		}
		if track.Duration != nil {
			t.Fatalf("track %d: expected unset duration", i)
		}
	}
	if a.Tracks[1].Artist != "Roger Waters" {
		t.Fatalf("expected per-track performer, got %q", a.Tracks[1].Artist)
	}
	if a.Tracks[0].Artist != "" {
		t.Fatalf("album performer leaked into track: %q", a.Tracks[0].Artist)
	}
	if a.Tracks[2].Title != "Another Brick in the Wall, Part 1" {
		t.Fatalf("unexpected title %q", a.Tracks[2].Title)
	}
}

func TestParseIgnoresUnknownAndOrphanLines(t *testing.T) {
	sheet := "CATALOG 0000\n    TITLE \"orphan\"\nREM COMMENT \"ExactAudioCopy\"\n  TRACK 01 AUDIO\n    FLAGS DCP\n    INDEX 01 01:00:00\n"
	p, err := Parse(sheet)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Artist != nil || p.Album != nil {
		t.Fatalf("unexpected album-level fields: %+v", p)
	}
	if len(p.Tracks) != 1 || p.Tracks[0].Title != "" || *p.Tracks[0].Start != 60 {
		t.Fatalf("unexpected tracks: %+v", p.Tracks)
	}
}

func TestParseHandlesCRLFAndTabs(t *testing.T) {
	sheet := "PERFORMER \"Can\"\r\nTITLE \"Tago Mago\"\r\n\tTRACK 01 AUDIO\r\n\t\tTITLE \"Paperhouse\"\r\n\t\tINDEX 01 00:01:30\r\n"
	p, err := Parse(sheet)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *p.Artist != "Can" || *p.Album != "Tago Mago" {
		t.Fatalf("unexpected album fields: %q / %q", *p.Artist, *p.Album)
	}
	if len(p.Tracks) != 1 || p.Tracks[0].Title != "Paperhouse" {
		t.Fatalf("unexpected tracks: %+v", p.Tracks)
	}
	if got := *p.Tracks[0].Start; got != 1.5 {
		t.Fatalf("unexpected start %v", got)
	}
}

func TestParseRejectsMalformedTrack(t *testing.T) {
	if _, err := Parse("  TRACK xx AUDIO\n"); err == nil {
		t.Fatal("expected error for non-numeric track")
	}
	if _, err := Parse("  TRACK 01 AUDIO\n    INDEX 01 00:00\n"); err == nil {
		t.Fatal("expected error for short index time")
	}
}

func TestReadResolvesFileAndDecodesLatin1(t *testing.T) {
	dir := t.TempDir()
	sheet := []byte("PERFORMER \"Bj\xf6rk\"\nTITLE \"Debut\"\nFILE \"debut.wav\" WAVE\n  TRACK 01 AUDIO\n    TITLE \"Human Behaviour\"\n    INDEX 01 00:00:00\n")
	path := filepath.Join(dir, "debut.cue")
	if err := os.WriteFile(path, sheet, 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if *p.Artist != "Björk" {
		t.Fatalf("expected decoded artist, got %q", *p.Artist)
	}
	if want := filepath.Join(dir, "debut.wav"); *p.MediaSource != want {
		t.Fatalf("media source %q, want %q", *p.MediaSource, want)
	}
}

func TestReadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.cue")
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, []byte("TITLE \"X\"\n")...), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Album == nil || *p.Album != "X" {
		t.Fatalf("expected album title after BOM, got %v", p.Album)
	}
}
