package config

import (
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := ValidateLayout(c.Output.Layout); err != nil {
		return fmt.Errorf("output.layout: %w", err)
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateLayout reports whether layout names a supported layout style.
func ValidateLayout(layout string) error {
	if !slices.Contains(Layouts, layout) {
		return fmt.Errorf("unsupported layout %q (choose from %v)", layout, Layouts)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
