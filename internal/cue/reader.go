package cue

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"tractor/internal/album"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses the CUE sheet at path. The returned overlay always carries the
// dts codec; a relative FILE entry is resolved against the sheet's directory.
func Read(path string) (album.Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return album.Partial{}, fmt.Errorf("read cue sheet: %w", err)
	}
	text, err := decode(data)
	if err != nil {
		return album.Partial{}, fmt.Errorf("decode cue sheet %s: %w", path, err)
	}
	p, err := Parse(text)
	if err != nil {
		return album.Partial{}, fmt.Errorf("parse cue sheet %s: %w", path, err)
	}
	if p.MediaSource != nil && *p.MediaSource != "" && !filepath.IsAbs(*p.MediaSource) {
		p.MediaSource = album.String(filepath.Join(filepath.Dir(path), *p.MediaSource))
	}
	return p, nil
}

// Parse reads CUE sheet text. FILE entries are returned verbatim.
func Parse(text string) (album.Partial, error) {
	p := parser{
		out: album.Partial{
			AudioCodec: album.CodecOf(album.CodecDTS),
			Tracks:     []album.Track{},
		},
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.feed(normalizeLine(scanner.Text())); err != nil {
			return album.Partial{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return album.Partial{}, err
	}
	return p.out, nil
}

type parser struct {
	out     album.Partial
	current *album.Track
}

func (p *parser) feed(line string) error {
	switch classify(line) {
	case lineGenre:
		p.out.Genre = album.String(remValue(line))
	case lineDate:
		p.out.DateReleased = album.String(remValue(line))
	case lineDiscNumber:
		p.out.Disc = album.String(remValue(line))
	case linePerformer:
		p.out.Artist = album.String(quotedValue(line))
	case lineTitle:
		p.out.Album = album.String(quotedValue(line))
	case lineFile:
		p.out.MediaSource = album.String(fileValue(line))
	case lineTrack:
		return p.openTrack(line)
	case lineTrackTitle:
		if p.current != nil {
			p.current.Title = quotedValue(line)
		}
	case lineTrackPerformer:
		if p.current != nil {
			p.current.Artist = quotedValue(line)
		}
	case lineIndex:
		if p.current == nil {
			return nil
		}
		start, err := indexSeconds(line)
		if err != nil {
			return err
		}
		p.current.Start = album.Seconds(start)
		p.current.Duration = nil
	}
	return nil
}

func (p *parser) openTrack(line string) error {
	parts := fields(strings.TrimSpace(line))
	if len(parts) < 2 {
		return fmt.Errorf("track number missing")
	}
	number, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("track number %q: %w", parts[1], err)
	}
	p.out.Tracks = append(p.out.Tracks, album.Track{Number: number})
	p.current = &p.out.Tracks[len(p.out.Tracks)-1]
	return nil
}

// indexSeconds converts "INDEX 01 mm:ss:ff" to seconds as
// minutes*60 + seconds + frames/60. Standard CUE frames are 1/75 s, but
// schedules produced by earlier runs depend on the /60 divisor.
func indexSeconds(line string) (float64, error) {
	parts := fields(strings.TrimSpace(line))
	if len(parts) < 3 {
		return 0, fmt.Errorf("index time missing")
	}
	stamp := strings.ReplaceAll(strings.Join(parts[2:], " "), `"`, "")
	pieces := strings.Split(stamp, ":")
	if len(pieces) != 3 {
		return 0, fmt.Errorf("index time %q: want mm:ss:ff", stamp)
	}
	var values [3]int
	for i, piece := range pieces {
		v, err := strconv.Atoi(piece)
		if err != nil {
			return 0, fmt.Errorf("index time %q: %w", stamp, err)
		}
		values[i] = v
	}
	return float64(values[0]*60+values[1]) + float64(values[2])/60.0, nil
}

func decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
