// Package tagging wraps a directory of naked audio streams into tagged MKA
// files.
//
// The directory is expected to be named "Artist - Album" and to contain
// files named "NN - Title.ext" where ext is ac3, dts or wav. Each file gets
// one ffmpeg command that copies the stream into a Matroska container next
// to the original.
package tagging

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"tractor/internal/plan"
)

var trackFilePattern = regexp.MustCompile(`^(\d+)\s-\s(.+)\.(?:ac3|dts|wav)$`)

// TrackFile is a naked stream file recognised by its name.
type TrackFile struct {
	Name   string
	Number string
	Title  string
}

// Options carries album-level tags and tools.
type Options struct {
	FFmpeg       string
	Genre        string
	DateReleased string
	Disc         string
	CoverArt     *plan.Artwork
}

// ParseTrackFile matches "NN - Title.ext" file names.
func ParseTrackFile(name string) (TrackFile, bool) {
	m := trackFilePattern.FindStringSubmatch(name)
	if m == nil {
		return TrackFile{}, false
	}
	return TrackFile{Name: name, Number: m[1], Title: m[2]}, true
}

// AlbumInfo splits an "Artist - Album" directory name.
func AlbumInfo(dir string) (string, string, error) {
	base := filepath.Base(filepath.Clean(dir))
	artist, albumName, ok := strings.Cut(base, " - ")
	if !ok || artist == "" || albumName == "" {
		return "", "", fmt.Errorf("directory %q is not named \"Artist - Album\"", base)
	}
	return artist, albumName, nil
}

// Scan lists the track files in dir in name order.
func Scan(dir string) ([]TrackFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var files []TrackFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if tf, ok := ParseTrackFile(entry.Name()); ok {
			files = append(files, tf)
		}
	}
	return files, nil
}

// Commands yields one tagging command per track file. Output files are
// written to dir as "NN - Title.mka".
func Commands(dir, artist, albumName string, files []TrackFile, opts Options) iter.Seq[plan.Command] {
	binary := opts.FFmpeg
	if binary == "" {
		binary = "ffmpeg"
	}
	albumTags := []string{
		"-metadata", "artist=" + artist,
		"-metadata", "album=" + albumName,
	}
	if opts.DateReleased != "" {
		albumTags = append(albumTags, "-metadata", "date_released="+opts.DateReleased)
	}
	if opts.Genre != "" {
		albumTags = append(albumTags, "-metadata", "genre="+opts.Genre)
	}
	if disc := trimZeros(opts.Disc); disc != "" {
		albumTags = append(albumTags, "-metadata", "disc="+disc)
	}

	return func(yield func(plan.Command) bool) {
		for _, tf := range files {
			args := []string{binary, "-i", filepath.Join(dir, tf.Name), "-c:a", "copy"}
			args = append(args, albumTags...)
			args = append(args,
				"-metadata", "track="+trimZeros(tf.Number),
				"-metadata", "title="+tf.Title,
			)
			if opts.CoverArt != nil {
				args = append(args,
					"-attach", opts.CoverArt.Path,
					"-metadata:s:1", "mimetype="+opts.CoverArt.MIMEType,
				)
			}
			out := filepath.Join(dir, tf.Number+" - "+tf.Title+".mka")
			args = append(args, out)
			number, _ := strconv.Atoi(tf.Number)
			if !yield(plan.Command{Track: number, Args: args, Output: out}) {
				return
			}
		}
	}
}

func trimZeros(value string) string {
	return strings.TrimLeft(value, "0")
}
