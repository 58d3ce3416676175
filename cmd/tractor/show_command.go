package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tractor/internal/album"
	"tractor/internal/plan"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var flags scheduleFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the reconciled track schedule without running anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			s, err := buildSchedule(cmd.Context(), cfg, logger, flags)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, s.album)
			}
			renderSchedule(cmd, s)
			return nil
		},
	}

	addScheduleFlags(cmd, &flags)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the merged metadata as JSON")
	return cmd
}

func renderSchedule(cmd *cobra.Command, s schedule) {
	out := cmd.OutOrStdout()
	a := s.album

	fmt.Fprintf(out, "Artist:    %s\n", a.Artist)
	fmt.Fprintf(out, "Album:     %s\n", a.Album)
	if a.Disc != "" {
		fmt.Fprintf(out, "Disc:      %s\n", a.Disc)
	}
	if a.Genre != "" {
		fmt.Fprintf(out, "Genre:     %s\n", a.Genre)
	}
	if a.DateReleased != "" {
		fmt.Fprintf(out, "Released:  %s\n", a.DateReleased)
	}
	fmt.Fprintf(out, "Source:    %s\n", describeSource(a.MediaSource))
	fmt.Fprintf(out, "Stream:    0:%d (%s -> .%s)\n", a.StreamIndex, a.AudioCodec, a.FileExtension)
	fmt.Fprintf(out, "Container: %s\n", yesNo(s.opts.Container))
	if s.opts.CoverArt != nil {
		fmt.Fprintf(out, "Artwork:   %s (%s)\n", s.opts.CoverArt.Path, s.opts.CoverArt.MIMEType)
	}
	fmt.Fprintf(out, "Directory: %s\n\n", s.albumDir())

	if len(a.Tracks) == 0 {
		fmt.Fprintln(out, "No tracks")
		return
	}

	outputs := make(map[int]string, len(a.Tracks))
	for c := range plan.Build(a, s.opts) {
		outputs[c.Track] = filepath.Base(c.Output)
	}
	rows := make([][]string, 0, len(a.Tracks))
	for _, t := range a.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(t.Number),
			t.Title,
			formatOffset(t.StartSeconds()),
			formatDuration(t),
			outputs[t.Number],
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Start", "Length", "File"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
	))
}

func describeSource(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path + " (not found)"
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
}

// formatOffset renders seconds as m:ss.mmm.
func formatOffset(seconds float64) string {
	minutes := int(seconds) / 60
	return fmt.Sprintf("%d:%06.3f", minutes, seconds-float64(minutes*60))
}

func formatDuration(t album.Track) string {
	if !t.HasDuration() {
		return "to end"
	}
	return formatOffset(*t.Duration)
}
