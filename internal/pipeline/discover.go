package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for input directory validation.
var (
	ErrNotFound      = errors.New("directory does not exist")
	ErrNotADirectory = errors.New("path is not a directory")
)

// Recognized playlist extensions. The suffix match is case-sensitive on
// these exact lowercase forms, matching the exporters that produce them.
var playlistExtensions = []string{".m3u", ".m3u8"}

// Discover lists the playlist files directly inside inputDir, sorted
// lexicographically for deterministic processing order. An existing
// directory with no matching files yields an empty slice, not an error;
// callers decide whether that is fatal.
func Discover(inputDir string) ([]string, error) {
	fi, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, inputDir)
		}
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, inputDir)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isPlaylistName(entry.Name()) {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isPlaylistName(name string) bool {
	for _, ext := range playlistExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
