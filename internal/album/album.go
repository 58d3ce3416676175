package album

import (
	"path/filepath"
	"strings"
)

// Codec identifies the audio essence carried by the media source.
type Codec string

const (
	CodecDTS  Codec = "dts"
	CodecAC3  Codec = "ac3"
	CodecWAV  Codec = "wav"
	CodecMLP  Codec = "mlp"
	CodecALAC Codec = "alac"
)

// Valid reports whether the codec is one tractor knows how to package.
func (c Codec) Valid() bool {
	switch c {
	case CodecDTS, CodecAC3, CodecWAV, CodecMLP, CodecALAC:
		return true
	default:
		return false
	}
}

// Album is the reconciled metadata record for one disc.
type Album struct {
	Artist        string  `json:"artist"`
	Album         string  `json:"album"`
	Genre         string  `json:"genre,omitempty"`
	DateReleased  string  `json:"date_released,omitempty"`
	Disc          string  `json:"disc,omitempty"`
	Composer      string  `json:"composer,omitempty"`
	MediaSource   string  `json:"media_source,omitempty"`
	AudioCodec    Codec   `json:"audio_codec,omitempty"`
	FileExtension string  `json:"-"`
	StreamIndex   int     `json:"stream_index"`
	Tracks        []Track `json:"tracks"`
}

// Track describes one cut of the media source.
type Track struct {
	Number   int      `json:"track"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist,omitempty"`
	Start    *float64 `json:"start,omitempty"`
	Duration *float64 `json:"duration"`
}

// HasStart reports whether the track carries a start offset.
func (t Track) HasStart() bool {
	return t.Start != nil
}

// StartSeconds returns the start offset, or 0 when unset.
func (t Track) StartSeconds() float64 {
	if t.Start == nil {
		return 0
	}
	return *t.Start
}

// HasDuration reports whether the track has a bounded length. A zero
// duration is treated as open-ended.
func (t Track) HasDuration() bool {
	return t.Duration != nil && *t.Duration != 0
}

// Seconds returns a pointer to v for optional float fields.
func Seconds(v float64) *float64 {
	return &v
}

// FillDurations derives each track's duration from the next track's start.
// It only runs when every track has a start; the last track keeps whatever
// duration it already had.
func (a *Album) FillDurations() {
	if len(a.Tracks) == 0 {
		return
	}
	for _, track := range a.Tracks {
		if !track.HasStart() {
			return
		}
	}
	last := len(a.Tracks) - 1
	for i := 0; i < last; i++ {
		a.Tracks[i].Duration = Seconds(*a.Tracks[i+1].Start - *a.Tracks[i].Start)
	}
}

// FallbackFromPath fills missing artist and album values from an
// "Artist - Album.ext" shaped base name.
func (a *Album) FallbackFromPath(path string) {
	artist, albumName, ok := SplitArtistAlbum(path)
	if !ok {
		return
	}
	if a.Artist == "" {
		a.Artist = artist
	}
	if a.Album == "" {
		a.Album = albumName
	}
}

// SplitArtistAlbum splits the base name of path at the first " - ". The album
// half has its file extension removed.
func SplitArtistAlbum(path string) (string, string, bool) {
	base := filepath.Base(strings.TrimRight(path, `/\`))
	artist, rest, ok := strings.Cut(base, " - ")
	if !ok {
		return "", "", false
	}
	return artist, strings.TrimSuffix(rest, filepath.Ext(rest)), true
}

// DiscPrefix returns the disc number used in file names: the part of the
// disc value before the first "/".
func (a Album) DiscPrefix() string {
	prefix, _, _ := strings.Cut(a.Disc, "/")
	return prefix
}
