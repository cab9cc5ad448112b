// Package rsync wraps the external rsync utility for incremental
// artist-folder transfers: availability check, per-folder command
// construction, and execution with captured stderr.
package rsync

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// ErrRsyncNotFound is returned by Check when rsync is not on PATH or does
// not respond to --version.
var ErrRsyncNotFound = errors.New("rsync not found on PATH")

// DefaultTimeout bounds one artist-folder transfer.
const DefaultTimeout = time.Hour

// Check verifies rsync is available and returns its version line.
func Check() (string, error) {
	if _, err := exec.LookPath("rsync"); err != nil {
		return "", ErrRsyncNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "rsync", "--version").Output()
	if err != nil {
		return "", ErrRsyncNotFound
	}
	version := string(out)
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return strings.TrimSpace(version), nil
}

// ArtistFolders lists the direct subdirectory names of libraryDir (each one
// an artist folder), sorted lexicographically.
func ArtistFolders(libraryDir string) ([]string, error) {
	entries, err := os.ReadDir(libraryDir)
	if err != nil {
		return nil, err
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)
	return folders, nil
}

// Result holds the outcome of one rsync invocation.
type Result struct {
	Stderr string
	Err    error
}

// Args builds the rsync argument vector for one folder transfer. Archive
// mode with partial-file keep; the trailing separator on src means "copy
// contents", so existing destination folders are updated in place.
func Args(src, dst string) []string {
	return []string{
		"rsync",
		"-av",
		"--partial",
		"--human-readable",
		src + string(os.PathSeparator),
		dst,
	}
}

// Sync copies one folder's contents from src to dst. When verbose, stderr
// is tee'd to os.Stderr in real time; otherwise it is captured silently for
// the error report. Stdout is always discarded to keep batch output to one
// line per folder.
func Sync(ctx context.Context, src, dst string, timeout time.Duration, verbose bool) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := Args(src, dst)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = errors.New("timeout: transfer exceeded " + timeout.String())
	}
	return Result{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// FailureReason condenses a failed Result into one report line.
func (r Result) FailureReason() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return msg
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return "rsync failed"
}
