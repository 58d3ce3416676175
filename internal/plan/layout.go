package plan

import (
	"fmt"
	"path/filepath"
	"strings"

	"tractor/internal/textutil"
)

// Layout selects the file system layout style for generated files.
type Layout string

const (
	LayoutPlex   Layout = "plex"
	LayoutITunes Layout = "itunes"
)

// ParseLayout validates a layout name.
func ParseLayout(name string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(name))); l {
	case LayoutPlex, LayoutITunes:
		return l, nil
	default:
		return "", fmt.Errorf("unsupported layout %q", name)
	}
}

// TrackFileName formats the file name of one track.
func (l Layout) TrackFileName(number int, title, ext string) string {
	title = textutil.SanitizeFileName(title)
	if l == LayoutITunes {
		return fmt.Sprintf("%02d %s.%s", number, title, ext)
	}
	return fmt.Sprintf("%02d - %s.%s", number, title, ext)
}

// AlbumDir formats the album directory relative to the output root.
func (l Layout) AlbumDir(artist, albumName string) string {
	artist = textutil.SanitizeFileName(artist)
	albumName = textutil.SanitizeFileName(albumName)
	if l == LayoutITunes {
		return filepath.Join(artist, albumName)
	}
	return artist + " - " + albumName
}
