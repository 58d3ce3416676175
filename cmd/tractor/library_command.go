package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tractor/internal/album"
	"tractor/internal/library"
	"tractor/internal/logging"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	var query library.Query
	var player string
	var fudge string
	var output string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Export an album from a media player's track list to metadata.json",
		Long: `Reads the track list of a running MPRIS media player, keeps the entries
matching --artist and --album, and writes them as a JSON metadata document
with start offsets laid end to end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			query.Artist = strings.TrimSpace(query.Artist)
			query.Album = strings.TrimSpace(query.Album)
			if query.Artist == "" || query.Album == "" {
				return fmt.Errorf("--artist and --album are required")
			}
			extra, err := library.ParseFudge(fudge)
			if err != nil {
				return err
			}
			if player == "" {
				player = cfg.Library.Player
			}

			source, err := library.Connect(player, logger)
			if err != nil {
				return err
			}
			defer source.Close()

			entries, err := source.Entries(cmd.Context())
			if err != nil {
				return err
			}
			p := library.Build(query, entries, extra)
			if len(p.Tracks) == 0 {
				return fmt.Errorf("no tracks for %q by %q in %s", query.Album, query.Artist, source.Service())
			}
			if err := album.SavePartial(output, p); err != nil {
				return err
			}
			logger.Info("library export written",
				logging.String("path", output),
				logging.String("player", source.Service()),
				logging.Int("tracks", len(p.Tracks)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tracks to %s\n", len(p.Tracks), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&query.Artist, "artist", "", "Album artist to export")
	cmd.Flags().StringVar(&query.Album, "album", "", "Album title to export")
	cmd.Flags().StringVar(&query.Genre, "genre", "", "Genre written to the document")
	cmd.Flags().StringVar(&query.DateReleased, "date", "", "Release date written to the document")
	cmd.Flags().StringVar(&player, "player", "", "MPRIS player name (defaults to library.player)")
	cmd.Flags().StringVar(&fudge, "fudge", "", "Comma-separated seconds added to each track's length")
	cmd.Flags().StringVarP(&output, "output", "o", "metadata.json", "Path of the JSON document to write")
	return cmd
}
