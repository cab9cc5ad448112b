// Package playlist implements the playlist path-rewriting core: line
// classification, Windows prefix detection, the case-insensitive prefix
// rewrite engine, and the permissive decode fallback for files that are not
// valid UTF-8.
package playlist

import "strings"

// DirectiveMarker starts a comment/metadata line (e.g. #EXTM3U, #EXTINF).
const DirectiveMarker = "#"

// LineKind classifies one playlist line.
type LineKind int

const (
	// LineDirective is a comment/metadata line, preserved verbatim.
	LineDirective LineKind = iota
	// LinePathEntry references a media file location.
	LinePathEntry
	// LineBlank is empty after stripping line terminators.
	LineBlank
)

// Classify returns the kind of a single line. The line must not include its
// terminator.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, DirectiveMarker):
		return LineDirective
	case line == "":
		return LineBlank
	default:
		return LinePathEntry
	}
}

// SplitLines splits content into lines without terminators, accepting "\n"
// and "\r\n" endings. A trailing terminator does not produce a final empty
// line, matching line-oriented playlist semantics.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
