// Package preflight provides readiness checks for the binaries and
// filesystem paths tractor depends on.
//
// The "tractor doctor" command renders these results; the split command
// runs CheckSystemDeps before executing anything so a missing ffmpeg is
// reported once instead of once per track.
package preflight
