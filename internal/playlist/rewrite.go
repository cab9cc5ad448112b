package playlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rewriter transforms one playlist's contents: slash normalization,
// case-insensitive source-prefix substitution, and canonical "\n" line
// terminators. Directive and blank lines pass through untouched by the path
// transformations; no line is ever reordered or dropped.
type Rewriter struct {
	SourcePrefix string // Matched case-insensitively; empty disables substitution.
	TargetPrefix string // Substituted verbatim for every match.
}

// NewRewriter returns a Rewriter for the given prefix mapping.
func NewRewriter(sourcePrefix, targetPrefix string) *Rewriter {
	return &Rewriter{SourcePrefix: sourcePrefix, TargetPrefix: targetPrefix}
}

// Rewrite transforms content and returns the output text plus the number of
// path entries written. Output always uses "\n" terminators and ends with
// one when any line was emitted.
func (rw *Rewriter) Rewrite(content string) (out string, tracks int) {
	var b strings.Builder
	b.Grow(len(content))
	for _, line := range SplitLines(content) {
		switch Classify(line) {
		case LineDirective:
			b.WriteString(line)
		case LineBlank:
			// emitted as a lone terminator below
		case LinePathEntry:
			b.WriteString(rw.RewritePath(line))
			tracks++
		}
		b.WriteByte('\n')
	}
	return b.String(), tracks
}

// RewritePath transforms a single path entry: every backslash becomes a
// forward slash, then every case-insensitive occurrence of the source
// prefix is replaced with the target prefix. The match is deliberately
// unanchored: a prefix occurring mid-string is rewritten too.
func (rw *Rewriter) RewritePath(line string) string {
	line = strings.ReplaceAll(line, `\`, "/")
	if rw.SourcePrefix != "" {
		line = ReplaceFold(line, rw.SourcePrefix, rw.TargetPrefix)
	}
	return line
}

// ReplaceFold replaces every case-insensitive occurrence of old in s with
// new. Matching is per-rune simple case folding, so byte offsets stay
// correct even when cased runes differ in encoded length. Empty old returns
// s unchanged.
func ReplaceFold(s, old, new string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n, ok := foldMatch(s[i:], old); ok {
			b.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldMatch reports whether s begins with a case-insensitive match of substr
// and returns the number of bytes of s the match consumed.
func foldMatch(s, substr string) (int, bool) {
	i := 0
	for _, pr := range substr {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != pr && unicode.ToLower(sr) != unicode.ToLower(pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}
