package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	var flags scheduleFlags
	var dryRun bool

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "tractor",
		Short: "Split album-length audio into tagged tracks",
		Long: `Reads track metadata from a CUE sheet, a JSON document, or the source's
chapters and generates one ffmpeg command per track.

Examples:
  tractor -s "Artist - Album.mkv" -n
  tractor -s disc.dts -d disc.cue -c -a cover.jpg
  tractor -d metadata.json -l itunes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, ctx, flags, dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addScheduleFlags(rootCmd, &flags)
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the commands that will be run, but do nothing")

	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newLibraryCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
