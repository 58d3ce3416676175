// Package library builds track schedules from a desktop media player's
// library.
//
// The player is reached over the D-Bus session bus through the MPRIS
// TrackList interface. Entries matching an artist and album become tracks
// laid end to end: each start is the running sum of the previous lengths,
// optionally stretched by a per-track fudge in seconds. The result is
// written as a metadata.json document that the split command accepts with
// --metadata.
package library
