package cue

import "strings"

type lineKind int

const (
	lineUnknown lineKind = iota
	lineGenre
	lineDate
	lineDiscNumber
	linePerformer
	lineTitle
	lineFile
	lineTrack
	lineTrackTitle
	lineTrackPerformer
	lineIndex
)

// linePrefixes is ordered; the first matching prefix classifies the line.
var linePrefixes = []struct {
	prefix string
	kind   lineKind
}{
	{"REM GENRE ", lineGenre},
	{"REM DATE ", lineDate},
	{"REM DISCNUMBER ", lineDiscNumber},
	{"PERFORMER ", linePerformer},
	{"TITLE ", lineTitle},
	{"FILE ", lineFile},
	{"  TRACK ", lineTrack},
	{"    TITLE ", lineTrackTitle},
	{"    PERFORMER ", lineTrackPerformer},
	{"    INDEX 01 ", lineIndex},
}

func classify(line string) lineKind {
	for _, entry := range linePrefixes {
		if strings.HasPrefix(line, entry.prefix) {
			return entry.kind
		}
	}
	return lineUnknown
}

// normalizeLine trims trailing whitespace and expands leading tabs to two
// spaces so tab-indented sheets classify like space-indented ones.
func normalizeLine(line string) string {
	line = strings.TrimRight(line, " \t\r\n")
	tabs := 0
	for tabs < len(line) && line[tabs] == '\t' {
		tabs++
	}
	if tabs == 0 {
		return line
	}
	return strings.Repeat("  ", tabs) + line[tabs:]
}

// fields splits on single spaces, the way sheets are written by hand.
func fields(line string) []string {
	return strings.Split(line, " ")
}

// remValue returns the words after "REM KEY" with surrounding quotes trimmed.
func remValue(line string) string {
	parts := fields(line)
	if len(parts) < 3 {
		return ""
	}
	return strings.Trim(strings.Join(parts[2:], " "), `"`)
}

// quotedValue returns the words after the keyword with every quote removed.
func quotedValue(line string) string {
	parts := fields(strings.TrimSpace(line))
	if len(parts) < 2 {
		return ""
	}
	return strings.ReplaceAll(strings.Join(parts[1:], " "), `"`, "")
}

// fileValue returns the FILE name without its trailing type token.
func fileValue(line string) string {
	parts := fields(line)
	if len(parts) < 3 {
		return ""
	}
	return strings.ReplaceAll(strings.Join(parts[1:len(parts)-1], " "), `"`, "")
}
