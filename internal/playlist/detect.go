package playlist

import (
	"errors"
	"fmt"
	"strings"
)

// musicMarker is the conventional library root segment the detection
// heuristic anchors on.
const musicMarker = "/music/"

// Sentinel errors for prefix detection.
var (
	// ErrNoSamplePath means the sample file held only directives and blank
	// lines, so no path was available to analyze.
	ErrNoSamplePath = errors.New("no path entry found in sample playlist")
	// ErrDetectionAborted means the operator declined both the suggested
	// prefix and manual entry.
	ErrDetectionAborted = errors.New("prefix detection aborted by operator")
)

// Prompter is the minimal interactive surface prefix detection needs.
// The terminal implementation lives in the prompt package; tests use a
// scripted fake.
type Prompter interface {
	Confirm(label string) (bool, error)
	Line(label string) (string, error)
}

// Detection holds the outcome of analyzing a sample playlist for a common
// Windows-style prefix.
type Detection struct {
	Sample       string // Raw sample path line, terminator stripped.
	Suggested    string // Suggested source prefix; empty when no heuristic fired.
	UsedFallback bool   // Sample file needed the Windows-1252 decode fallback.
}

// Analyze reads the playlist at path and runs the prefix heuristics against
// its first path entry. Returns ErrNoSamplePath when the file has no path
// entries; an encoding mismatch is reported via UsedFallback, never as an
// error.
func Analyze(path string) (Detection, error) {
	content, usedFallback, err := ReadFileFallback(path)
	if err != nil {
		return Detection{}, fmt.Errorf("read sample playlist: %w", err)
	}
	sample, err := SamplePath(content)
	if err != nil {
		return Detection{UsedFallback: usedFallback}, err
	}
	suggested, _ := SuggestPrefix(sample)
	return Detection{Sample: sample, Suggested: suggested, UsedFallback: usedFallback}, nil
}

// SamplePath returns the first non-directive, non-blank line of content.
func SamplePath(content string) (string, error) {
	for _, line := range SplitLines(content) {
		if Classify(line) == LinePathEntry {
			return line, nil
		}
	}
	return "", ErrNoSamplePath
}

// SuggestPrefix infers the Windows-style prefix from one sample path.
// Detection operates on a slash-normalized view; the sample itself is not
// mutated. Heuristics, in order:
//
//  1. everything up to and including the last case-insensitive "/music/"
//     segment;
//  2. with more than three slash-delimited segments, all segments except
//     the last three (artist/album/file), with a trailing "/";
//  3. otherwise no suggestion.
func SuggestPrefix(sample string) (string, bool) {
	norm := strings.ReplaceAll(sample, `\`, "/")

	if start, length, ok := lastIndexFold(norm, musicMarker); ok {
		return norm[:start+length], true
	}

	segments := strings.Split(norm, "/")
	if len(segments) > 3 {
		return strings.Join(segments[:len(segments)-3], "/") + "/", true
	}

	return "", false
}

// NormalizePrefix slash-normalizes a manually entered prefix and forces a
// trailing "/" when non-empty.
func NormalizePrefix(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// Resolve turns a Detection into the configured source prefix: the operator
// either accepts the suggestion or types a prefix manually. Declining both
// yields ErrDetectionAborted.
func (d Detection) Resolve(p Prompter) (string, error) {
	if d.Suggested != "" {
		ok, err := p.Confirm(fmt.Sprintf("Use detected prefix %q?", d.Suggested))
		if err != nil {
			return "", err
		}
		if ok {
			return d.Suggested, nil
		}
	}
	manual, err := p.Line("Windows path prefix to strip (e.g. C:/Users/Name/Music/iTunes/iTunes Media/Music/)")
	if err != nil {
		return "", err
	}
	manual = NormalizePrefix(manual)
	if manual == "" {
		return "", ErrDetectionAborted
	}
	return manual, nil
}

// lastIndexFold locates the last case-insensitive occurrence of substr in s,
// returning its start offset and matched byte length.
func lastIndexFold(s, substr string) (start, length int, ok bool) {
	for i := 0; i < len(s); i++ {
		if n, match := foldMatch(s[i:], substr); match {
			start, length, ok = i, n, true
		}
	}
	return start, length, ok
}
