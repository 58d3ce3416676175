package preflight

import (
	"os"
	"path/filepath"

	"tractor/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	outputDir := cfg.Paths.OutputDir
	if outputDir == "" {
		if wd, err := os.Getwd(); err == nil {
			outputDir = wd
		}
	}
	results = append(results, CheckDirectoryAccess("Output directory", outputDir))

	if cfg.Paths.LockFile != "" {
		results = append(results, CheckCreatableDirectory("Lock directory", filepath.Dir(cfg.Paths.LockFile)))
	}

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
