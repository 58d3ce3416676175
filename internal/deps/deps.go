// Package deps reports whether the external binaries tractor drives are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency tractor relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// EncoderRequirement describes the ffmpeg binary every executed command runs.
func EncoderRequirement(ffmpeg string) Requirement {
	return Requirement{Name: "FFmpeg", Command: ffmpeg, Description: "Splits, tags, and packages audio tracks"}
}

// ToolRequirements lists the binaries the split pipeline can use. FFprobe is
// only invoked when no CUE sheet supplies the track list.
func ToolRequirements(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		EncoderRequirement(ffmpeg),
		{Name: "FFprobe", Command: ffprobe, Description: "Reads streams and chapters from media sources"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
