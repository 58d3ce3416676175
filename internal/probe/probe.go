package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tractor/internal/album"
	"tractor/internal/logging"
	"tractor/internal/media/ffprobe"
)

// ErrProbe marks failures of the external probe tool.
var ErrProbe = errors.New("probe failed")

// Options controls stream selection and codec mapping.
type Options struct {
	// StreamIndex selects the audio stream by ffprobe index. Zero selects the
	// first audio stream.
	StreamIndex int
	// Container reports whether output goes into a tagged container, which
	// turns stereo PCM into alac.
	Container bool
}

type inspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Reader runs ffprobe and converts its output into an album overlay.
type Reader struct {
	binary  string
	logger  *slog.Logger
	inspect inspectFunc
}

// NewReader constructs a reader that invokes the given ffprobe binary.
func NewReader(binary string, logger *slog.Logger) *Reader {
	return &Reader{
		binary:  binary,
		logger:  logging.NewComponentLogger(logger, "probe"),
		inspect: ffprobe.Inspect,
	}
}

// Read probes source and returns codec, stream and chapter metadata.
func (r *Reader) Read(ctx context.Context, source string, opts Options) (album.Partial, error) {
	result, err := r.inspect(ctx, r.binary, source)
	if err != nil {
		return album.Partial{}, fmt.Errorf("%w: %s: %w", ErrProbe, source, err)
	}
	p, err := FromResult(result, opts)
	if err != nil {
		return album.Partial{}, fmt.Errorf("%w: %s: %w", ErrProbe, source, err)
	}
	if p.StreamIndex == nil {
		logging.WarnWithContext(r.logger, "no matching audio stream", "stream_not_found",
			logging.String("source", source),
			logging.Int("requested_stream", opts.StreamIndex),
			logging.Int("audio_streams", result.AudioStreamCount()),
			logging.String(logging.FieldErrorHint, "pass --stream with an audio stream index"),
			logging.String(logging.FieldImpact, "extracting stream 0 as dts"),
		)
	} else {
		r.logger.Debug("audio stream selected",
			logging.Int("stream_index", *p.StreamIndex),
			logging.String("codec", string(*p.AudioCodec)),
			logging.Int("chapters", len(p.Tracks)),
		)
	}
	return p, nil
}

// FromResult converts parsed ffprobe output into an album overlay.
func FromResult(result ffprobe.Result, opts Options) (album.Partial, error) {
	p := album.Partial{AudioCodec: album.CodecOf(album.CodecDTS)}
	if stream, ok := selectStream(result.Streams, opts.StreamIndex); ok {
		p.StreamIndex = album.Int(stream.Index)
		p.AudioCodec = album.CodecOf(codecFor(stream, opts.Container))
	}
	tracks, err := tracksFromChapters(result.Chapters)
	if err != nil {
		return album.Partial{}, err
	}
	p.Tracks = tracks
	return p, nil
}

// selectStream returns the first audio stream, or the audio stream with the
// requested index. A file with a single stream is treated as raw audio and
// the requested index is ignored.
func selectStream(streams []ffprobe.Stream, requested int) (ffprobe.Stream, bool) {
	if len(streams) == 1 {
		requested = 0
	}
	for _, stream := range streams {
		if !stream.IsAudio() {
			continue
		}
		if requested != 0 && stream.Index != requested {
			continue
		}
		return stream, true
	}
	return ffprobe.Stream{}, false
}

func codecFor(stream ffprobe.Stream, container bool) album.Codec {
	name := stream.CodecLongName
	switch {
	case strings.Contains(name, "AC-3"):
		return album.CodecAC3
	case strings.Contains(name, "PCM"):
		if container && stream.Channels == 2 {
			return album.CodecALAC
		}
		return album.CodecWAV
	case strings.HasPrefix(name, "MLP"):
		return album.CodecMLP
	default:
		return album.CodecDTS
	}
}

func tracksFromChapters(chapters []ffprobe.Chapter) ([]album.Track, error) {
	tracks := make([]album.Track, 0, len(chapters))
	for i, chapter := range chapters {
		number := i + 1
		title := chapter.Title()
		if title == "" {
			title = fmt.Sprintf("Chapter %d", number)
		}
		start, err := chapter.StartSeconds()
		if err != nil {
			return nil, err
		}
		end, err := chapter.EndSeconds()
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, album.Track{
			Number:   number,
			Title:    title,
			Start:    album.Seconds(start),
			Duration: album.Seconds(end - start),
		})
	}
	return tracks, nil
}
