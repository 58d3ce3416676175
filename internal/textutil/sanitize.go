package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace
// and never starts with a dot.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	out := strings.TrimSpace(fileNameReplacer.Replace(name))
	return strings.TrimLeft(out, ".")
}

// SanitizePathSegments sanitizes each segment independently and joins them
// with "/". Empty segments are dropped.
func SanitizePathSegments(segments ...string) string {
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		if s := SanitizeFileName(segment); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, "/")
}
