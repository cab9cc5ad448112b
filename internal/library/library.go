// Package library parses an iTunes Library.xml export (Apple XML plist)
// into its tracks and user playlists, and emits standard .m3u files for
// them. It is the non-interactive core behind the libraryextract tool.
package library

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"howett.net/plist"
)

// Track is one media file reference from the library's Tracks dictionary.
type Track struct {
	Location  string // Decoded filesystem path.
	Name      string
	Artist    string
	Album     string
	TotalTime int // Milliseconds; 0 when unknown.
}

// Playlist is one user playlist with its resolved tracks, in order.
type Playlist struct {
	Name   string
	Tracks []Track
}

// Library holds the parsed export.
type Library struct {
	Tracks    map[string]Track // Keyed by track ID.
	Playlists []Playlist
}

// ErrNoLibraryDict means the plist did not contain the expected top-level
// dictionary.
var ErrNoLibraryDict = errors.New("no library dictionary found in XML")

// Parse decodes a Library.xml stream and extracts tracks and user
// playlists. Special playlists (Master, Distinguished Kind) and playlists
// without resolvable items are skipped, matching what a human exporting
// playlists actually wants.
func Parse(r io.ReadSeeker) (*Library, error) {
	var root map[string]interface{}
	if err := plist.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse plist: %w", err)
	}
	if root == nil {
		return nil, ErrNoLibraryDict
	}

	lib := &Library{Tracks: extractTracks(root)}
	lib.Playlists = extractPlaylists(root, lib.Tracks)
	return lib, nil
}

// extractTracks maps track IDs to decoded Track records. Entries without a
// usable Location are dropped: a playlist cannot reference what has no path.
func extractTracks(root map[string]interface{}) map[string]Track {
	tracks := make(map[string]Track)
	raw, ok := root["Tracks"].(map[string]interface{})
	if !ok {
		return tracks
	}
	for id, v := range raw {
		info, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		location := DecodeFileURL(asString(info["Location"]))
		if location == "" {
			continue
		}
		tracks[id] = Track{
			Location:  location,
			Name:      asString(info["Name"]),
			Artist:    asString(info["Artist"]),
			Album:     asString(info["Album"]),
			TotalTime: asInt(info["Total Time"]),
		}
	}
	return tracks
}

func extractPlaylists(root map[string]interface{}, tracks map[string]Track) []Playlist {
	raw, ok := root["Playlists"].([]interface{})
	if !ok {
		return nil
	}
	var playlists []Playlist
	for _, v := range raw {
		info, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if asBool(info["Master"]) {
			continue
		}
		if _, distinguished := info["Distinguished Kind"]; distinguished {
			continue
		}
		items, ok := info["Playlist Items"].([]interface{})
		if !ok {
			continue
		}

		name := asString(info["Name"])
		if name == "" {
			name = "Untitled Playlist"
		}

		var resolved []Track
		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			id := strconv.Itoa(asInt(entry["Track ID"]))
			if track, found := tracks[id]; found {
				resolved = append(resolved, track)
			}
		}
		if len(resolved) == 0 {
			continue
		}
		playlists = append(playlists, Playlist{Name: name, Tracks: resolved})
	}
	return playlists
}

// DecodeFileURL converts a file:// URL from a Location entry into a plain
// filesystem path: scheme stripped, percent-escapes decoded, and the
// localhost authority removed.
func DecodeFileURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimPrefix(raw, "file://")
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.TrimPrefix(s, "localhost/")
	return s
}

// asString returns v as a string, or "" for nil/non-string values.
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asBool returns v as a bool, false otherwise.
func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// asInt converts the numeric types the plist decoder produces into an int.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case uint64:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
