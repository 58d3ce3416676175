package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tractor/internal/deps"
	"tractor/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configMessage := ctx.configPath
			kind := statusOK
			if !ctx.configSeen {
				configMessage += " (not found, using defaults)"
				kind = statusInfo
			}
			lines = append(lines, renderStatusLine("Config", kind, configMessage, colorize))
			lines = append(lines, renderStatusLine("Layout", statusInfo, cfg.Output.Layout, colorize))
			lines = append(lines, renderStatusLine("Container", statusInfo, yesNo(cfg.Output.Container), colorize))
			lines = append(lines, "")

			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")

			results := preflight.RunAll(cfg)
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			lines = append(lines, checkLines(results, colorize)...)

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			problems := len(deps.Missing(statuses)) + len(preflight.Failed(results))
			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			return nil
		},
	}
}
