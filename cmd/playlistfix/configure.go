package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/pipeline"
	"github.com/backmassage/playlistfix/internal/playlist"
	"github.com/backmassage/playlistfix/internal/prompt"
)

// previewSampleCount is how many before/after path pairs the preview shows.
const previewSampleCount = 3

// configure resolves everything the flags and environment left open: input
// directory, source prefix (detected from a sample playlist or entered
// manually), target prefix, output directory, and the final confirmation.
// Values already present in cfg are kept and not prompted for again.
func configure(cfg *config.Config, p prompt.Interactor, log *logging.Logger) error {
	files, err := resolveInputDir(cfg, p, log)
	if err != nil {
		return err
	}

	if err := resolveSourcePrefix(cfg, p, log, files); err != nil {
		return err
	}
	if err := resolveTargetPrefix(cfg, p); err != nil {
		return err
	}
	cfg.ResolveOutputDir()

	showPreview(cfg, log, files)

	log.Info("Input folder:  %s", cfg.InputDir)
	log.Info("Output folder: %s", cfg.OutputDir)
	log.Info("Source prefix: %s", cfg.SourcePrefix)
	log.Info("Target prefix: %s", cfg.TargetPrefix)

	if !cfg.AssumeYes {
		ok, err := p.Confirm("Proceed with conversion?")
		if err != nil {
			return err
		}
		if !ok {
			return prompt.ErrAborted
		}
	}
	return nil
}

// resolveInputDir validates (or prompts for) the input directory and
// returns the discovered playlist files. An empty directory is allowed only
// after explicit operator confirmation.
func resolveInputDir(cfg *config.Config, p prompt.Interactor, log *logging.Logger) ([]string, error) {
	if cfg.InputDir == "" {
		dir, err := p.Path("Enter the path to your iTunes playlists folder")
		if err != nil {
			return nil, err
		}
		cfg.InputDir = config.NormalizeDirArg(dir)
	}

	files, err := pipeline.Discover(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		log.Warn("No .m3u or .m3u8 files found in %s", cfg.InputDir)
		if !cfg.AssumeYes {
			ok, err := p.Confirm("Continue anyway?")
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, prompt.ErrAborted
			}
		}
	} else {
		log.Info("Found %d playlist file(s) in %s", len(files), cfg.InputDir)
	}
	return files, nil
}

// resolveSourcePrefix fills cfg.SourcePrefix: a pre-seeded value is only
// normalized; otherwise the first playlist is analyzed and the suggestion
// confirmed (or a prefix entered manually).
func resolveSourcePrefix(cfg *config.Config, p prompt.Interactor, log *logging.Logger, files []string) error {
	if cfg.SourcePrefix != "" {
		cfg.SourcePrefix = playlist.NormalizePrefix(cfg.SourcePrefix)
		return nil
	}

	var det playlist.Detection
	if len(files) > 0 {
		sample := filepath.Base(files[0])
		d, err := playlist.Analyze(files[0])
		switch {
		case errors.Is(err, playlist.ErrNoSamplePath):
			log.Warn("%s has no path entries to analyze", sample)
		case err != nil:
			log.Warn("Cannot analyze %s: %v", sample, err)
		default:
			det = d
			if det.UsedFallback {
				log.Warn("%s is not valid UTF-8, decoded as Windows-1252", sample)
			}
			log.Debug(cfg.Verbose, "Sample path: %s", det.Sample)
		}
	}

	if cfg.AssumeYes && det.Suggested != "" {
		cfg.SourcePrefix = det.Suggested
		return nil
	}

	prefix, err := det.Resolve(p)
	if err != nil {
		return err
	}
	cfg.SourcePrefix = prefix
	return nil
}

// resolveTargetPrefix runs the relative/absolute/custom choice unless the
// target prefix was already given. An empty custom prefix (strip the source
// prefix entirely) requires explicit confirmation.
func resolveTargetPrefix(cfg *config.Config, p prompt.Interactor) error {
	if cfg.TargetPrefixSet || cfg.AssumeYes {
		return nil
	}

	idx, err := p.Choice("Choose Linux path prefix:", []string{
		"Relative path (" + config.TargetRelative + ") - recommended for flexibility",
		"Absolute path (" + config.TargetAbsolute + ") - for a specific Docker setup",
		"Custom prefix",
	}, 0)
	if err != nil {
		return err
	}

	switch idx {
	case 0:
		cfg.TargetPrefix = config.TargetRelative
	case 1:
		cfg.TargetPrefix = config.TargetAbsolute
	case 2:
		custom, err := p.Line("Enter the target prefix")
		if err != nil {
			return err
		}
		custom = strings.TrimSpace(custom)
		if custom == "" {
			ok, err := p.Confirm("Target prefix is empty; strip the source prefix entirely?")
			if err != nil {
				return err
			}
			if !ok {
				return prompt.ErrAborted
			}
		}
		cfg.TargetPrefix = custom
	}
	return nil
}

// showPreview logs up to previewSampleCount before/after pairs from the
// first playlist so the operator can sanity-check the mapping.
func showPreview(cfg *config.Config, log *logging.Logger, files []string) {
	if len(files) == 0 {
		return
	}
	content, _, err := playlist.ReadFileFallback(files[0])
	if err != nil {
		return
	}
	rw := playlist.NewRewriter(cfg.SourcePrefix, cfg.TargetPrefix)
	samples := playlist.PreviewSamples(content, rw, previewSampleCount)
	if len(samples) == 0 {
		return
	}
	log.Info("Preview (%s):", filepath.Base(files[0]))
	for _, s := range samples {
		log.Info("  %s", s.Before)
		log.Info("  -> %s", s.After)
	}
}
