// Command tractor splits an album-length media source into tagged tracks.
//
// Metadata comes from a CUE sheet, a JSON document, the source's own
// chapters, or any combination; tractor merges them and prints or runs one
// ffmpeg command per track. Subcommands inspect the merged schedule (show),
// export a media player's library (library), check the environment
// (doctor), and write a sample configuration (config init).
package main
