// Package cue reads CUE sheets into album metadata overlays.
//
// Each line is classified by its prefix into one line kind, then fed to a
// small parser that tracks whether album-level or track-level fields are
// being filled. Sheets that are not valid UTF-8 are decoded as Windows-1252,
// the encoding most ripping tools on Windows emit.
package cue
