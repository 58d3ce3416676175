// Package runner executes or prints generated encoder commands.
//
// In dry-run mode each command is written to the output writer and nothing
// else happens. Otherwise the album directory is created, a run lock is
// taken so two invocations never write the same tree, and commands run one
// at a time. A failing track is logged and counted; the batch continues.
package runner
