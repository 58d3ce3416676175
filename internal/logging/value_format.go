package logging

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

func consoleTime(ts time.Time) string {
	return ts.In(time.Local).Format(consoleTimeLayout)
}

// formatValue renders a console field value, quoting it when it would
// otherwise split the key=value list.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	var s string
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
			break
		}
		s = v.String()
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
