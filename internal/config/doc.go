// Package config loads and validates tractor's TOML configuration.
//
// Configuration lives at $XDG_CONFIG_HOME/tractor/config.toml unless a path
// is given explicitly. A missing file is not an error: defaults cover every
// setting, and command-line flags override whatever the file provides.
package config
