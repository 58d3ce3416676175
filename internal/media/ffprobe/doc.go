// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no tractor-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and chapters
//   - Stream: individual audio/video/subtitle stream properties
//   - Chapter: chapter boundaries and tags
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
