package album

import "slices"

// Partial is a metadata overlay produced by a single source. Nil fields are
// absent and leave earlier values untouched when applied.
type Partial struct {
	Artist       *string `json:"artist,omitempty"`
	Album        *string `json:"album,omitempty"`
	Genre        *string `json:"genre,omitempty"`
	DateReleased *string `json:"date_released,omitempty"`
	Disc         *string `json:"disc,omitempty"`
	Composer     *string `json:"composer,omitempty"`
	MediaSource  *string `json:"media_source,omitempty"`
	AudioCodec   *Codec  `json:"audio_codec,omitempty"`
	StreamIndex  *int    `json:"stream_index,omitempty"`
	Tracks       []Track `json:"tracks,omitempty"`
}

// String returns a pointer to v for Partial fields.
func String(v string) *string {
	return &v
}

// Int returns a pointer to v for Partial fields.
func Int(v int) *int {
	return &v
}

// CodecOf returns a pointer to c for Partial fields.
func CodecOf(c Codec) *Codec {
	return &c
}

// Apply overlays the present fields of p onto a. Tracks are replaced as a
// whole, matching a shallow per-key merge.
func (a *Album) Apply(p Partial) {
	setString(&a.Artist, p.Artist)
	setString(&a.Album, p.Album)
	setString(&a.Genre, p.Genre)
	setString(&a.DateReleased, p.DateReleased)
	setString(&a.Disc, p.Disc)
	setString(&a.Composer, p.Composer)
	setString(&a.MediaSource, p.MediaSource)
	if p.AudioCodec != nil {
		a.AudioCodec = *p.AudioCodec
	}
	if p.StreamIndex != nil {
		a.StreamIndex = *p.StreamIndex
	}
	if p.Tracks != nil {
		a.Tracks = cloneTracks(p.Tracks)
	}
}

// Merge applies partials in order onto an empty Album.
func Merge(partials ...Partial) Album {
	var a Album
	for _, p := range partials {
		a.Apply(p)
	}
	return a
}

// Partial converts a full record into an overlay with every field present.
func (a Album) Partial() Partial {
	p := Partial{
		Artist:      String(a.Artist),
		Album:       String(a.Album),
		MediaSource: String(a.MediaSource),
		StreamIndex: Int(a.StreamIndex),
		Tracks:      cloneTracks(a.Tracks),
	}
	if a.Genre != "" {
		p.Genre = String(a.Genre)
	}
	if a.DateReleased != "" {
		p.DateReleased = String(a.DateReleased)
	}
	if a.Disc != "" {
		p.Disc = String(a.Disc)
	}
	if a.Composer != "" {
		p.Composer = String(a.Composer)
	}
	if a.AudioCodec != "" {
		p.AudioCodec = CodecOf(a.AudioCodec)
	}
	if p.Tracks == nil {
		p.Tracks = []Track{}
	}
	return p
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneTracks(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	out := slices.Clone(tracks)
	for i := range out {
		if out[i].Start != nil {
			out[i].Start = Seconds(*out[i].Start)
		}
		if out[i].Duration != nil {
			out[i].Duration = Seconds(*out[i].Duration)
		}
	}
	return out
}
