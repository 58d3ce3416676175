package plan

import (
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"tractor/internal/logging"
)

const fallbackMIMEType = "application/octet-stream"

// ResolveArtwork decides whether path can be attached to outputs with the
// given extension. It returns nil, after logging a warning, when the image
// is missing or the container cannot carry attachments.
func ResolveArtwork(path, ext string, container bool, logger *slog.Logger) *Artwork {
	if path == "" {
		return nil
	}
	if !container {
		if logger != nil {
			logger.Debug("artwork ignored for raw stream output", logging.String("artwork", path))
		}
		return nil
	}
	if ext != "mka" {
		logging.WarnWithContext(logger, "cover art is only supported in Matroska containers", "unsupported_artwork_container",
			logging.String("artwork", path),
			logging.String("extension", ext),
			logging.String(logging.FieldImpact, "tracks are written without cover art"),
		)
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		attrs := []logging.Attr{
			logging.String("artwork", path),
			logging.String(logging.FieldErrorHint, "check the --artwork path"),
			logging.String(logging.FieldImpact, "tracks are written without cover art"),
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			attrs = append(attrs, logging.Error(err))
		}
		logging.WarnWithContext(logger, "artwork not found", "artwork_not_found", attrs...)
		return nil
	}
	return &Artwork{Path: path, MIMEType: detectMIMEType(path)}
}

func detectMIMEType(path string) string {
	if mtype, err := mimetype.DetectFile(path); err == nil && !mtype.Is(fallbackMIMEType) {
		return baseMediaType(mtype.String())
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return baseMediaType(byExt)
	}
	return fallbackMIMEType
}

func baseMediaType(value string) string {
	base, _, _ := strings.Cut(value, ";")
	return strings.TrimSpace(base)
}
