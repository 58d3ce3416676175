// Package reconcile merges metadata from CUE sheets, JSON documents, probe
// output, and command-line overrides into one validated album.
//
// Sources are applied in a fixed order: defaults, then the CUE sheet or the
// probed source, then a JSON document, then overrides. Later sources win
// field by field; a track list replaces the previous one as a whole.
// Missing artist and album values fall back to an "Artist - Album" file name,
// and track durations are derived from successive start offsets last.
package reconcile
