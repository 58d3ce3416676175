package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"tractor/internal/album"
	"tractor/internal/cue"
	"tractor/internal/logging"
	"tractor/internal/probe"
)

var (
	// ErrMissingInput is returned when neither a source nor a metadata path is given.
	ErrMissingInput = errors.New("provide either a source or a metadata file")
	// ErrIncomplete is returned when the merged album cannot drive command generation.
	ErrIncomplete = errors.New("incomplete metadata")
)

// Request describes the inputs of one reconciliation.
type Request struct {
	SourcePath   string
	MetadataPath string
	// StreamIndex forces the probed audio stream; zero selects the first one.
	StreamIndex int
	Container   bool
	Overrides   album.Partial
}

type prober interface {
	Read(ctx context.Context, source string, opts probe.Options) (album.Partial, error)
}

// Reconciler merges metadata sources.
type Reconciler struct {
	probe  prober
	logger *slog.Logger
}

// New constructs a reconciler that probes sources with p.
func New(p prober, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		probe:  p,
		logger: logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Scan reads every applicable source and returns the merged, validated album.
func (r *Reconciler) Scan(ctx context.Context, req Request) (album.Album, error) {
	if req.SourcePath == "" && req.MetadataPath == "" {
		return album.Album{}, ErrMissingInput
	}

	partials := []album.Partial{{
		MediaSource: album.String(req.SourcePath),
		StreamIndex: album.Int(0),
	}}

	ext := strings.ToLower(filepath.Ext(req.MetadataPath))
	switch {
	case ext == ".cue":
		p, err := cue.Read(req.MetadataPath)
		if err != nil {
			return album.Album{}, err
		}
		r.logger.Debug("cue sheet read", logging.String("path", req.MetadataPath), logging.Int("tracks", len(p.Tracks)))
		partials = append(partials, p)
	case req.SourcePath != "":
		p, err := r.probe.Read(ctx, req.SourcePath, probe.Options{
			StreamIndex: req.StreamIndex,
			Container:   req.Container,
		})
		if err != nil {
			return album.Album{}, err
		}
		partials = append(partials, p)
	}

	if ext == ".json" {
		p, err := album.Load(req.MetadataPath)
		if err != nil {
			return album.Album{}, err
		}
		r.logger.Debug("metadata document read", logging.String("path", req.MetadataPath))
		partials = append(partials, p)
	}

	partials = append(partials, req.Overrides)
	a := album.Merge(partials...)

	fallback := req.SourcePath
	if fallback == "" {
		fallback = req.MetadataPath
	}
	a.FallbackFromPath(fallback)
	a.FillDurations()

	if err := Validate(a); err != nil {
		return album.Album{}, err
	}
	if len(a.Tracks) == 0 {
		logging.WarnWithContext(r.logger, "no tracks found", "no_tracks",
			logging.String("source", req.SourcePath),
			logging.String("metadata", req.MetadataPath),
			logging.String(logging.FieldErrorHint, "the source has no chapters; supply a CUE or JSON file"),
			logging.String(logging.FieldImpact, "no commands generated"),
		)
	}
	r.logger.Info("metadata reconciled",
		logging.String("artist", a.Artist),
		logging.String("album", a.Album),
		logging.String("codec", string(a.AudioCodec)),
		logging.Int("stream_index", a.StreamIndex),
		logging.Int("tracks", len(a.Tracks)),
	)
	return a, nil
}

// Validate checks the invariants command generation relies on.
func Validate(a album.Album) error {
	var problems []string
	if strings.TrimSpace(a.Artist) == "" {
		problems = append(problems, "artist is missing")
	}
	if strings.TrimSpace(a.Album) == "" {
		problems = append(problems, "album is missing")
	}
	if strings.TrimSpace(a.MediaSource) == "" {
		problems = append(problems, "media source is missing")
	}
	if a.AudioCodec != "" && !a.AudioCodec.Valid() {
		problems = append(problems, fmt.Sprintf("unknown audio codec %q", a.AudioCodec))
	}
	seen := make(map[int]bool, len(a.Tracks))
	for i, t := range a.Tracks {
		if t.Number <= 0 {
			problems = append(problems, fmt.Sprintf("track %d has invalid number %d", i+1, t.Number))
		} else if seen[t.Number] {
			problems = append(problems, fmt.Sprintf("track number %d is repeated", t.Number))
		}
		seen[t.Number] = true
		if !t.HasStart() {
			problems = append(problems, fmt.Sprintf("track %d has no start", t.Number))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(problems, "; "))
	}
	return nil
}
