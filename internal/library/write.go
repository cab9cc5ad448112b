package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// invalidFilenameChars are replaced when a playlist name becomes a filename.
const invalidFilenameChars = `<>:"/\|?*`

// SanitizeFilename makes a playlist name safe to use as a filename:
// reserved characters become underscores, leading/trailing spaces and
// periods are trimmed, and an empty result falls back to "Untitled".
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidFilenameChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "Untitled"
	}
	return out
}

// WritePlaylist emits pl as <sanitized name>.m3u inside dir: an #EXTM3U
// header, then one #EXTINF directive and one location line per track.
// Returns the written path and the track count.
func WritePlaylist(pl Playlist, dir string) (string, int, error) {
	path := filepath.Join(dir, SanitizeFilename(pl.Name)+".m3u")

	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, t := range pl.Tracks {
		b.WriteString(extinf(t))
		b.WriteString(t.Location)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", 0, err
	}
	return path, len(pl.Tracks), nil
}

// extinf formats the extended info directive: duration in whole seconds
// (-1 when unknown) and "Artist - Track Name" with unknowns substituted.
func extinf(t Track) string {
	seconds := -1
	if t.TotalTime > 0 {
		seconds = t.TotalTime / 1000
	}
	artist := t.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	name := t.Name
	if name == "" {
		name = "Unknown Track"
	}
	return fmt.Sprintf("#EXTINF:%d,%s - %s\n", seconds, artist, name)
}
