// Package plan turns a reconciled album into one ffmpeg invocation per
// track.
//
// Commands are produced lazily by Build so a dry run can print each one as
// it is generated. Output paths follow a Layout: "plex" puts every track in
// an "Artist - Album" directory, "itunes" nests the album under the artist.
// Metadata tags, a disc-number file prefix, and cover art attachments are
// only emitted in container mode.
package plan
