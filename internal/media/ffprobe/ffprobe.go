package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Chapters []Chapter `json:"chapters"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	CodecType     string `json:"codec_type"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
}

// Chapter describes a chapter marker. Times are decimal seconds as strings.
type Chapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// Args returns the ffprobe arguments used to inspect path.
func Args(path string) []string {
	return []string{"-hide_banner", "-show_streams", "-show_chapters", "-print_format", "json", path}
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, Args(path)...)
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return Parse(output)
}

// Parse decodes raw ffprobe JSON.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if stream.IsAudio() {
			count++
		}
	}
	return count
}

// IsAudio reports whether the stream carries audio.
func (s Stream) IsAudio() bool {
	return strings.EqualFold(s.CodecType, "audio")
}

// StartSeconds parses the chapter start.
func (c Chapter) StartSeconds() (float64, error) {
	return parseSeconds("start_time", c.StartTime)
}

// EndSeconds parses the chapter end.
func (c Chapter) EndSeconds() (float64, error) {
	return parseSeconds("end_time", c.EndTime)
}

// Title returns the chapter's title tag.
func (c Chapter) Title() string {
	for key, value := range c.Tags {
		if strings.EqualFold(key, "title") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func parseSeconds(field, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("chapter %s %q is not a number", field, value)
	}
	return parsed, nil
}
