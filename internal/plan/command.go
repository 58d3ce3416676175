package plan

import (
	"fmt"
	"iter"
	"path/filepath"
	"strconv"
	"strings"

	"tractor/internal/album"
)

// Artwork is a cover image attached to container outputs.
type Artwork struct {
	Path     string
	MIMEType string
}

// Options controls command generation.
type Options struct {
	FFmpeg     string
	Layout     Layout
	Container  bool
	CoverArt   *Artwork
	OutputRoot string
}

// Command is one ffmpeg invocation. Args[0] is the binary.
type Command struct {
	Track  int
	Args   []string
	Output string
}

// String renders the command as a shell-friendly line.
func (c Command) String() string {
	quoted := make([]string, len(c.Args))
	for i, arg := range c.Args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

// Quote escapes single quotes and wraps arguments containing spaces in
// single quotes.
func Quote(arg string) string {
	arg = strings.ReplaceAll(arg, "'", `\'`)
	if strings.Contains(arg, " ") {
		arg = "'" + arg + "'"
	}
	return arg
}

// OutputFormat maps the source codec to the output codec and file
// extension. Containers use m4a for alac and mka for everything else; raw
// streams keep the codec name as extension.
func OutputFormat(codec album.Codec, container bool) (album.Codec, string) {
	ext := string(codec)
	if container {
		if codec == album.CodecALAC {
			ext = "m4a"
		} else {
			ext = "mka"
		}
	}
	return codec, ext
}

// AlbumDir returns the destination directory for the album.
func AlbumDir(a album.Album, opts Options) string {
	return filepath.Join(opts.OutputRoot, layoutOrDefault(opts.Layout).AlbumDir(a.Artist, a.Album))
}

// Build yields one command per track in track order.
func Build(a album.Album, opts Options) iter.Seq[Command] {
	layout := layoutOrDefault(opts.Layout)
	binary := opts.FFmpeg
	if binary == "" {
		binary = "ffmpeg"
	}
	codec, ext := OutputFormat(a.AudioCodec, opts.Container)
	if a.FileExtension != "" {
		ext = a.FileExtension
	}
	audioCodec := "copy"
	if codec == album.CodecALAC {
		audioCodec = "alac"
	}
	dir := AlbumDir(a, opts)
	base := []string{
		binary,
		"-i", a.MediaSource,
		"-map", "0:" + strconv.Itoa(a.StreamIndex),
		"-c:a", audioCodec,
	}

	return func(yield func(Command) bool) {
		for _, t := range a.Tracks {
			args := append([]string(nil), base...)
			args = append(args, "-ss", seconds(t.StartSeconds()))
			if t.HasDuration() {
				args = append(args, "-t", seconds(*t.Duration))
			}
			filename := layout.TrackFileName(t.Number, t.Title, ext)
			if opts.Container {
				args = append(args, metadataArgs(a, t)...)
				if prefix := a.DiscPrefix(); prefix != "" {
					filename = prefix + "-" + filename
				}
				if opts.CoverArt != nil {
					args = append(args,
						"-attach", opts.CoverArt.Path,
						"-metadata:s:1", "mimetype="+opts.CoverArt.MIMEType,
					)
				}
			}
			out := filepath.Join(dir, filename)
			args = append(args, out)
			if !yield(Command{Track: t.Number, Args: args, Output: out}) {
				return
			}
		}
	}
}

func metadataArgs(a album.Album, t album.Track) []string {
	args := []string{
		"-metadata", "track=" + strconv.Itoa(t.Number),
		"-metadata", "title=" + t.Title,
	}
	fields := []struct {
		key   string
		value string
	}{
		{"genre", a.Genre},
		{"artist", a.Artist},
		{"album", a.Album},
		{"composer", a.Composer},
		{"date_released", a.DateReleased},
		{"disc", a.Disc},
	}
	for _, f := range fields {
		if f.value != "" {
			args = append(args, "-metadata", f.key+"="+f.value)
		}
	}
	return args
}

func seconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func layoutOrDefault(l Layout) Layout {
	if l == "" {
		return LayoutPlex
	}
	return l
}
