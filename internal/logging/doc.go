// Package logging assembles structured slog loggers and formatting helpers used
// across tractor commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so warnings carry the same
// event_type/error_hint/impact fields everywhere. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Logs go to stderr by default: stdout is reserved for dry-run command lines
// and tables that users pipe or copy into a shell.
package logging
