package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"tractor/internal/album"
	"tractor/internal/config"
	"tractor/internal/plan"
	"tractor/internal/probe"
	"tractor/internal/reconcile"
)

type scheduleFlags struct {
	source    string
	metadata  string
	artwork   string
	container bool
	disc      string
	layout    string
	stream    int
	genre     string
	date      string
	output    string
}

func addScheduleFlags(cmd *cobra.Command, f *scheduleFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.source, "source", "s", "", "Path to the source media file")
	flags.StringVarP(&f.metadata, "metadata", "d", "", "Path to a CUE or JSON file containing metadata")
	flags.StringVarP(&f.artwork, "artwork", "a", "", "Path to a cover image (PNG or JPEG)")
	flags.BoolVarP(&f.container, "container", "c", false, "Put the audio into a container with metadata")
	flags.StringVar(&f.disc, "disc", "", "Disc number")
	flags.StringVarP(&f.layout, "layout", "l", "", "File system layout style (plex, itunes)")
	flags.IntVar(&f.stream, "stream", 1, "Force extraction from a specific stream index")
	flags.StringVar(&f.genre, "genre", "", "Musical genre")
	flags.StringVar(&f.date, "date", "", "Release date")
	flags.StringVarP(&f.output, "output", "o", "", "Root directory for album folders")
}

// schedule is a reconciled album plus everything needed to generate commands.
type schedule struct {
	album album.Album
	opts  plan.Options
}

func (s schedule) albumDir() string {
	return plan.AlbumDir(s.album, s.opts)
}

func buildSchedule(ctx context.Context, cfg *config.Config, logger *slog.Logger, f scheduleFlags) (schedule, error) {
	layoutName := f.layout
	if layoutName == "" {
		layoutName = cfg.Output.Layout
	}
	layout, err := plan.ParseLayout(layoutName)
	if err != nil {
		return schedule{}, err
	}
	container := f.container || cfg.Output.Container

	outputRoot := cfg.Paths.OutputDir
	if f.output != "" {
		if outputRoot, err = config.ExpandPath(f.output); err != nil {
			return schedule{}, err
		}
	}

	rec := reconcile.New(probe.NewReader(cfg.Tools.FFprobe, logger), logger)
	a, err := rec.Scan(ctx, reconcile.Request{
		SourcePath:   f.source,
		MetadataPath: f.metadata,
		StreamIndex:  f.stream,
		Container:    container,
		Overrides:    overrides(f),
	})
	if err != nil {
		return schedule{}, err
	}

	codec, ext := plan.OutputFormat(a.AudioCodec, container)
	a.AudioCodec = codec
	a.FileExtension = ext

	return schedule{
		album: a,
		opts: plan.Options{
			FFmpeg:     cfg.Tools.FFmpeg,
			Layout:     layout,
			Container:  container,
			CoverArt:   plan.ResolveArtwork(f.artwork, ext, container, logger),
			OutputRoot: outputRoot,
		},
	}, nil
}

func overrides(f scheduleFlags) album.Partial {
	var p album.Partial
	if f.genre != "" {
		p.Genre = album.String(f.genre)
	}
	if f.date != "" {
		p.DateReleased = album.String(f.date)
	}
	if disc := strings.TrimLeft(f.disc, "0"); disc != "" {
		p.Disc = album.String(disc)
	}
	return p
}
