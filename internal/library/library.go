package library

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tractor/internal/album"
)

// Entry is one track reported by the player.
type Entry struct {
	Number      int
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Length      time.Duration
}

// Query selects the album to export and carries album-level tags that the
// player does not report.
type Query struct {
	Artist       string
	Album        string
	Genre        string
	DateReleased string
}

// Matches reports whether e belongs to the queried album.
func (q Query) Matches(e Entry) bool {
	if e.Album != q.Album {
		return false
	}
	return e.Artist == q.Artist || e.AlbumArtist == q.Artist
}

// Build lays the matching entries end to end. fudge[n-1] seconds are added
// to the length of track n; missing fudge values count as zero.
func Build(q Query, entries []Entry, fudge []float64) album.Partial {
	p := album.Partial{
		Artist: album.String(q.Artist),
		Album:  album.String(q.Album),
		Tracks: []album.Track{},
	}
	if q.Genre != "" {
		p.Genre = album.String(q.Genre)
	}
	if q.DateReleased != "" {
		p.DateReleased = album.String(q.DateReleased)
	}

	start := 0.0
	for _, e := range entries {
		if !q.Matches(e) {
			continue
		}
		length := e.Length.Seconds()
		if e.Number >= 1 && e.Number <= len(fudge) {
			length += fudge[e.Number-1]
		}
		p.Tracks = append(p.Tracks, album.Track{
			Number:   e.Number,
			Title:    e.Title,
			Start:    album.Seconds(round3(start)),
			Duration: album.Seconds(round3(length)),
		})
		start += length
	}
	return p
}

// ParseFudge reads a comma-separated list of per-track extensions in seconds.
func ParseFudge(value string) ([]float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fudge value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
