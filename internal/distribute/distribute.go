// Package distribute copies a finished batch output directory to a
// secondary destination, typically a network share mounted for the music
// server. It is a plain bulk copy: no transformation, overwrite on
// conflict, best-effort metadata preservation.
package distribute

import (
	"context"
	"io"
	"os"
	"path/filepath"

	progressbar "github.com/schollz/progressbar/v3"

	"github.com/backmassage/playlistfix/internal/display"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/pipeline"
)

// Stats aggregates the outcome of one distribution pass.
type Stats struct {
	Copied      int
	Bytes       int64
	Interrupted bool
	Failures    []pipeline.Failure
}

// Copy copies every playlist file from srcDir to dstDir, overwriting
// existing files of the same name. Per-file errors are collected, not
// fatal; only an unusable source or destination directory is.
func Copy(ctx context.Context, srcDir, dstDir string, log *logging.Logger) (Stats, error) {
	var stats Stats

	files, err := pipeline.Discover(srcDir)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		log.Warn("Nothing to distribute: no playlist files in %s", srcDir)
		return stats, nil
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return stats, err
	}

	bar := progressbar.Default(int64(len(files)), "distributing")
	for _, path := range files {
		if ctx.Err() != nil {
			stats.Interrupted = true
			break
		}
		name := filepath.Base(path)
		n, err := copyFile(path, filepath.Join(dstDir, name))
		if err != nil {
			stats.Failures = append(stats.Failures, pipeline.Failure{Name: name, Reason: err.Error()})
		} else {
			stats.Copied++
			stats.Bytes += n
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	log.Success("Distributed %d file(s) (%s) to %s", stats.Copied, display.FormatBytes(stats.Bytes), dstDir)
	for _, f := range stats.Failures {
		log.Error("  %s: %s", f.Name, f.Reason)
	}
	return stats, nil
}

// copyFile copies src to dst, truncating any existing file, and carries the
// source timestamps over where the platform allows.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}

	if fi, serr := os.Stat(src); serr == nil {
		// Best effort; shares often reject chtimes.
		_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())
	}
	return n, nil
}
