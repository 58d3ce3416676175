package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.Output.Layout = strings.ToLower(strings.TrimSpace(c.Output.Layout))
	if c.Output.Layout == "" {
		c.Output.Layout = defaultLayout
	}
	c.Library.Player = strings.TrimSpace(c.Library.Player)
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	// An empty output_dir means the working directory at run time.
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile()
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
