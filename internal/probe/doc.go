// Package probe derives album metadata from a media file via ffprobe.
//
// The reader picks the audio stream to extract, maps its codec to one of the
// album codecs and turns chapter markers into a track schedule. Probe
// failures are fatal for a run and are reported wrapped in ErrProbe.
package probe
