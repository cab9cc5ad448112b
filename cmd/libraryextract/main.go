// Command libraryextract reads an iTunes Library.xml export and writes one
// .m3u file per user playlist, ready for playlistfix to convert.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/display"
	"github.com/backmassage/playlistfix/internal/library"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/prompt"
)

var (
	version = "1.0.0"
)

// defaultOutputSubdir is created beside the XML when no output dir is given.
const defaultOutputSubdir = "extracted_playlists"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		xmlPath     string
		outputDir   string
		retries     int
		noColor     bool
		verbose     bool
		showVersion bool
	)
	fs := flag.NewFlagSet("libraryextract", flag.ContinueOnError)
	fs.StringVar(&xmlPath, "xml", "", "Path to iTunes Library.xml (prompted for when omitted)")
	fs.StringVar(&outputDir, "output", "", "Output directory (default: "+defaultOutputSubdir+" beside the XML)")
	fs.StringVar(&outputDir, "o", "", "Same as --output")
	fs.IntVar(&retries, "retries", 3, "Invalid-input retries before a prompt aborts")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "libraryextract v"+version)
		return 0
	}

	mode := config.ColorAuto
	if noColor {
		mode = config.ColorNever
	}
	log, err := logging.New(mode, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "libraryextract: %v\n", err)
		return 1
	}
	defer log.Close()

	log.Info("=== libraryextract v%s ===", version)

	p := prompt.NewTerminal(retries)
	if xmlPath == "" {
		path, err := p.File("Enter the path to your iTunes Library.xml")
		if err != nil {
			log.Warn("Operation cancelled by user.")
			return 1
		}
		xmlPath = path
	}

	lib, err := parseLibrary(xmlPath)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("Found %d track(s)", len(lib.Tracks))
	if len(lib.Playlists) == 0 {
		log.Error("No user playlists found in the library (built-in playlists are excluded)")
		return 1
	}
	log.Info("Found %d user playlist(s):", len(lib.Playlists))
	for i, pl := range lib.Playlists {
		log.Info("  %d. %s (%d tracks)", i+1, pl.Name, len(pl.Tracks))
	}

	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(xmlPath), defaultOutputSubdir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return 1
	}

	failed := writePlaylists(log, lib, outputDir)

	log.Info("==============================")
	log.Info("Done: %d extracted, %d failed", len(lib.Playlists)-failed, failed)
	log.Success("Extracted playlists are in: %s", outputDir)
	log.Info("To convert them for the music server, run: playlistfix %q", outputDir)
	return 0
}

// parseLibrary opens and decodes the Library.xml file.
func parseLibrary(path string) (*library.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()

	lib, err := library.Parse(f)
	if err != nil {
		if errors.Is(err, library.ErrNoLibraryDict) {
			return nil, fmt.Errorf("%s does not look like an iTunes Library.xml export", filepath.Base(path))
		}
		return nil, err
	}
	return lib, nil
}

// writePlaylists emits every playlist with per-playlist progress, returning
// the failure count. A single playlist's failure never aborts the batch.
func writePlaylists(log *logging.Logger, lib *library.Library, outputDir string) (failed int) {
	total := len(lib.Playlists)
	for i, pl := range lib.Playlists {
		progress := display.FormatProgress(i+1, total)
		_, tracks, err := library.WritePlaylist(pl, outputDir)
		if err != nil {
			log.Error("%s %s ... error: %v", progress, pl.Name, err)
			failed++
			continue
		}
		log.Success("%s %s ... %d tracks", progress, pl.Name, tracks)
	}
	return failed
}
