// Command tagdts wraps a directory of naked DTS, AC3, or WAV files into MKA
// containers with metadata.
//
// The directory layout is assumed to be:
//
//	Artist - Album/01 - Track Name.dts
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tractor/internal/config"
	"tractor/internal/logging"
	"tractor/internal/plan"
	"tractor/internal/runner"
	"tractor/internal/tagging"
)

const (
	exitFailure    = 1
	exitNoInput    = 66
	exitCantCreate = 74
)

type options struct {
	configPath string
	dryRun     bool
	genre      string
	date       string
	artwork    string
	disc       string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fs.ErrNotExist):
		return exitNoInput
	case errors.Is(err, runner.ErrDestinationConflict):
		return exitCantCreate
	default:
		return exitFailure
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tagdts <source_path>",
		Short: "Embed naked DTS, AC3, or WAV files in MKA containers with metadata",
		Long: `Scans an "Artist - Album" directory for files named "NN - Title.ext"
(ext is dts, ac3 or wav) and writes "NN - Title.mka" next to each one with
artist, album, track and title tags.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Configuration file path")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show the commands that will be run, but do nothing")
	flags.StringVar(&opts.genre, "genre", "", "The musical genre")
	flags.StringVar(&opts.date, "date", "", "The release date")
	flags.StringVarP(&opts.artwork, "artwork", "a", "", "Path to a cover image (PNG or JPEG)")
	flags.StringVar(&opts.disc, "disc", "", "Disc number")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, sourcePath string, opts options) error {
	cfg, _, _, err := config.Load(strings.TrimSpace(opts.configPath))
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "tagdts").With(logging.String(logging.FieldRunID, uuid.NewString()))

	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", sourcePath)
	}
	artist, albumName, err := tagging.AlbumInfo(sourcePath)
	if err != nil {
		return err
	}
	files, err := tagging.Scan(sourcePath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logging.WarnWithContext(logger, "no track files found", "no_tracks",
			logging.String("source", sourcePath),
			logging.String(logging.FieldErrorHint, `name files "NN - Title.dts", ".ac3" or ".wav"`),
			logging.String(logging.FieldImpact, "nothing to tag"),
		)
		return nil
	}

	seq := tagging.Commands(sourcePath, artist, albumName, files, tagging.Options{
		FFmpeg:       cfg.Tools.FFmpeg,
		Genre:        opts.genre,
		DateReleased: opts.date,
		Disc:         opts.disc,
		CoverArt:     plan.ResolveArtwork(opts.artwork, "mka", true, logger),
	})

	r := runner.New(logger,
		runner.WithDryRun(opts.dryRun),
		runner.WithOutput(cmd.OutOrStdout()),
		runner.WithLockFile(cfg.Paths.LockFile),
	)
	summary, err := r.Run(cmd.Context(), sourcePath, seq)
	if err != nil {
		return err
	}
	if !opts.dryRun {
		logger.Info("tagging finished",
			logging.Int("tracks", summary.Planned),
			logging.Int("succeeded", summary.Succeeded),
			logging.Int("failed", summary.Failed),
		)
	}
	return nil
}
