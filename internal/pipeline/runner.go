// Package pipeline orchestrates playlist discovery, per-file conversion,
// and batch summary reporting.
package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/display"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/playlist"
)

// Run is the top-level batch entry point. It discovers playlists, ensures
// the output directory exists, converts each file sequentially, and returns
// the aggregate report. Input files are never opened for writing; a single
// file's failure never aborts the batch.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) Report {
	var rep Report

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("Playlist discovery failed: %v", err)
		return rep
	}
	rep.Total = len(files)

	if len(files) == 0 {
		log.Warn("No playlist files to process.")
		return rep
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return rep
	}

	log.Info("Processing %d playlist files...", len(files))
	rw := playlist.NewRewriter(cfg.SourcePrefix, cfg.TargetPrefix)

	for i, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			rep.Interrupted = true
			break
		}
		convertFile(cfg, log, rw, path, i+1, len(files), &rep)
	}

	logSummary(cfg, log, &rep)
	return rep
}

// convertFile rewrites one playlist into the output directory. The output
// is staged as <name>.tmp and renamed into place so an interrupt mid-write
// never leaves a truncated file under the final name.
func convertFile(
	cfg *config.Config,
	log *logging.Logger,
	rw *playlist.Rewriter,
	path string,
	index, total int,
	rep *Report,
) {
	name := filepath.Base(path)
	progress := display.FormatProgress(index, total)

	content, usedFallback, err := playlist.ReadFileFallback(path)
	if err != nil {
		reason := failureReason(err)
		log.Error("%s %s ... %s", progress, name, reason)
		rep.recordFailed(name, reason)
		return
	}
	if usedFallback {
		rep.Fallbacks++
		log.Warn("%s %s: not valid UTF-8, decoded as Windows-1252", progress, name)
	}

	out, tracks := rw.Rewrite(content)

	outPath := filepath.Join(cfg.OutputDir, name)
	if err := writeFileAtomic(outPath, []byte(out)); err != nil {
		reason := failureReason(err)
		log.Error("%s %s ... %s", progress, name, reason)
		rep.recordFailed(name, reason)
		return
	}

	log.Success("%s Fixed: %s (%d tracks)", progress, name, tracks)
	rep.recordConverted(tracks)
}

// failureReason maps an error to the per-file reason recorded in the report.
// Permission failures are surfaced distinctly; everything else is generic.
func failureReason(err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return "permission denied: " + err.Error()
	}
	return "error: " + err.Error()
}

// writeFileAtomic writes data to path via a temporary sibling file and
// rename. The temporary file is removed on failure.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func logSummary(cfg *config.Config, log *logging.Logger, rep *Report) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d failed", rep.Converted, rep.Failed)
	log.Debug(cfg.Verbose, "  Tracks rewritten: %d", rep.Tracks)
	if rep.Fallbacks > 0 {
		log.Info("  Encoding fallback used for %d file(s)", rep.Fallbacks)
	}
	if len(rep.Failures) > 0 {
		log.Info("Error details:")
		for _, f := range rep.Failures {
			log.Error("  %s: %s", f.Name, f.Reason)
		}
	}
	if rep.Converted > 0 {
		log.Success("Converted playlists are in: %s", cfg.OutputDir)
	}
}
