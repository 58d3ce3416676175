package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tractor/internal/deps"
	"tractor/internal/logging"
	"tractor/internal/plan"
	"tractor/internal/runner"
)

func runSplit(cmd *cobra.Command, ctx *commandContext, f scheduleFlags, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	s, err := buildSchedule(cmd.Context(), cfg, logger, f)
	if err != nil {
		return err
	}

	dir := s.albumDir()
	if !dryRun {
		if err := runner.EnsureDestination(dir); err != nil {
			return err
		}
		// ffprobe failures already surface through the reconciler.
		if missing := deps.Missing(deps.CheckBinaries([]deps.Requirement{deps.EncoderRequirement(cfg.Tools.FFmpeg)})); len(missing) > 0 {
			names := make([]string, 0, len(missing))
			for _, m := range missing {
				names = append(names, m.Name+" ("+m.Detail+")")
			}
			return fmt.Errorf("missing dependencies: %s", strings.Join(names, ", "))
		}
	}

	r := runner.New(logger,
		runner.WithDryRun(dryRun),
		runner.WithOutput(cmd.OutOrStdout()),
		runner.WithLockFile(cfg.Paths.LockFile),
	)
	summary, err := r.Run(cmd.Context(), dir, plan.Build(s.album, s.opts))
	if err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	attrs := []logging.Attr{
		logging.String("album_dir", dir),
		logging.Int("tracks", summary.Planned),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
	}
	if summary.Failed > 0 {
		logging.WarnWithContext(logger, "split finished with failed tracks", "split_partial", attrs...)
		return nil
	}
	logger.Info("split finished", logging.Args(attrs...)...)
	return nil
}
