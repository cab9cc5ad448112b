// Command songcopy copies artist folders from a desktop library to the
// music server's library layout using rsync for incremental transfers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/display"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/prompt"
	"github.com/backmassage/playlistfix/internal/rsync"
)

var (
	version = "1.0.0"
)

// previewFolderCount is how many artist folders the pre-copy preview lists.
const previewFolderCount = 10

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inputDir    string
		outputDir   string
		assumeYes   bool
		retries     int
		noColor     bool
		verbose     bool
		showVersion bool
	)
	fs := flag.NewFlagSet("songcopy", flag.ContinueOnError)
	fs.StringVar(&inputDir, "input", "", "Desktop music library folder (prompted for when omitted)")
	fs.StringVar(&inputDir, "i", "", "Same as --input")
	fs.StringVar(&outputDir, "output", "", "Music server library folder (prompted for when omitted)")
	fs.StringVar(&outputDir, "o", "", "Same as --output")
	fs.BoolVar(&assumeYes, "yes", false, "Assume yes on confirmation prompts")
	fs.BoolVar(&assumeYes, "y", false, "Same as --yes")
	fs.IntVar(&retries, "retries", 3, "Invalid-input retries before a prompt aborts")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&verbose, "verbose", false, "Show rsync stderr in real time")
	fs.BoolVar(&verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "songcopy v"+version)
		return 0
	}

	mode := config.ColorAuto
	if noColor {
		mode = config.ColorNever
	}
	log, err := logging.New(mode, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "songcopy: %v\n", err)
		return 1
	}
	defer log.Close()

	log.Info("=== songcopy v%s ===", version)

	// Fail fast when rsync is unavailable; nothing below works without it.
	rsyncVersion, err := rsync.Check()
	if err != nil {
		log.Error("%v", err)
		log.Error("Install rsync via your package manager (e.g. apt install rsync)")
		return 1
	}
	log.Debug(verbose, "Using %s", rsyncVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current folder…")
		cancel()
	}()

	p := prompt.NewTerminal(retries)

	if inputDir == "" {
		dir, err := p.Path("Desktop music library folder (the one containing artist folders)")
		if err != nil {
			log.Warn("Operation cancelled by user.")
			return 1
		}
		inputDir = dir
	}
	inputDir = config.NormalizeDirArg(inputDir)

	if outputDir == "" {
		dir, err := promptOutputDir(p)
		if err != nil {
			log.Warn("Operation cancelled by user.")
			return 1
		}
		outputDir = dir
	}
	outputDir = config.NormalizeDirArg(outputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("Cannot create output folder: %v", err)
		return 1
	}

	folders, err := rsync.ArtistFolders(inputDir)
	if err != nil {
		log.Error("Cannot read input folder: %v", err)
		return 1
	}
	if len(folders) == 0 {
		log.Warn("No artist folders found in %s", inputDir)
		return 1
	}

	if !assumeYes {
		if ok := preview(p, log, folders, inputDir, outputDir); !ok {
			log.Warn("Operation cancelled by user.")
			return 1
		}
	}

	copied, failures := copyFolders(ctx, log, folders, inputDir, outputDir, verbose)

	log.Info("==============================")
	log.Info("Done: %d copied, %d failed", copied, len(failures))
	if len(failures) > 0 {
		log.Info("Error details:")
		for _, f := range failures {
			log.Error("  %s: %s", f.name, f.reason)
		}
	}
	if copied > 0 {
		log.Info("Note: rsync only transferred new or changed files.")
	}
	if ctx.Err() != nil {
		return 1
	}
	return 0
}

// promptOutputDir asks for the destination folder, offering to create it
// when it does not exist yet.
func promptOutputDir(p *prompt.Terminal) (string, error) {
	for {
		dir, err := p.Line("Music server library folder")
		if err != nil {
			return "", err
		}
		if dir == "" {
			return "", prompt.ErrAborted
		}
		fi, err := os.Stat(dir)
		switch {
		case err == nil && fi.IsDir():
			return dir, nil
		case err == nil:
			fmt.Printf("Path is not a directory: %s\n", dir)
		default:
			create, cerr := p.Confirm(fmt.Sprintf("Folder %s does not exist. Create it?", dir))
			if cerr != nil {
				return "", cerr
			}
			if create {
				return dir, nil
			}
		}
		retry, err := p.Confirm("Try again?")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", prompt.ErrAborted
		}
	}
}

// preview lists the first artist folders and asks for confirmation.
func preview(p prompt.Interactor, log *logging.Logger, folders []string, inputDir, outputDir string) bool {
	log.Info("Found %d artist folder(s) to copy", len(folders))
	show := folders
	if len(show) > previewFolderCount {
		show = show[:previewFolderCount]
	}
	for i, name := range show {
		log.Info("  %d. %s", i+1, name)
	}
	if len(folders) > previewFolderCount {
		log.Info("  ... and %d more", len(folders)-previewFolderCount)
	}
	log.Info("Source:      %s", inputDir)
	log.Info("Destination: %s", outputDir)

	ok, err := p.Confirm("Proceed with copy?")
	return err == nil && ok
}

type folderFailure struct {
	name   string
	reason string
}

// copyFolders runs one rsync per artist folder, sequentially, with per-folder
// progress. A failed folder is recorded and the batch continues.
func copyFolders(
	ctx context.Context,
	log *logging.Logger,
	folders []string,
	inputDir, outputDir string,
	verbose bool,
) (copied int, failures []folderFailure) {
	total := len(folders)
	for i, name := range folders {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		progress := display.FormatProgress(i+1, total)

		src := filepath.Join(inputDir, name)
		dst := filepath.Join(outputDir, name)
		existed := false
		if _, err := os.Stat(dst); err == nil {
			existed = true
		}

		res := rsync.Sync(ctx, src, dst, rsync.DefaultTimeout, verbose)
		if res.Err != nil {
			reason := res.FailureReason()
			log.Error("%s %s ... %s", progress, name, reason)
			failures = append(failures, folderFailure{name: name, reason: reason})
			continue
		}

		status := "Copied"
		if existed {
			status = "Updated"
		}
		log.Success("%s %s ... %s", progress, name, status)
		copied++
	}
	return copied, failures
}
