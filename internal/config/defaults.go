package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	defaultLayout    = "plex"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Layouts lists the supported file system layout styles.
var Layouts = []string{"plex", "itunes"}

func defaultLockFile() string {
	return filepath.Join(xdg.StateHome, "tractor", "tractor.lock")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LockFile: defaultLockFile(),
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Output: Output{
			Layout: defaultLayout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
