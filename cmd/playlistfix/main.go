// Command playlistfix is the CLI entrypoint for the iTunes-to-Navidrome
// playlist converter.
//
// It layers configuration (defaults, PLAYLISTFIX_* environment, flags,
// interactive prompts), runs the batch conversion, and optionally
// distributes the output to a secondary destination.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/playlistfix/internal/config"
	"github.com/backmassage/playlistfix/internal/display"
	"github.com/backmassage/playlistfix/internal/distribute"
	"github.com/backmassage/playlistfix/internal/logging"
	"github.com/backmassage/playlistfix/internal/pipeline"
	"github.com/backmassage/playlistfix/internal/playlist"
	"github.com/backmassage/playlistfix/internal/prompt"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once logging.New succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.FromEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "playlistfix: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "playlistfix: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "playlistfix: %v\n", err)
		return 1
	}

	log, err := logging.New(cfg.ColorMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "playlistfix: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()
	log.Info("=== playlistfix v%s (%s) ===", version, commit)

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// batch can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Resolve remaining configuration interactively.
	p := prompt.NewTerminal(cfg.PromptRetries)
	if err := configure(&cfg, p, log); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, playlist.ErrDetectionAborted) {
			log.Warn("Operation cancelled by user.")
		} else {
			log.Error("%v", err)
		}
		return 1
	}

	// Phase 5: Run the batch.
	rep := pipeline.Run(ctx, &cfg, log)
	if rep.Interrupted {
		return 1
	}

	// Phase 6: Optional distribution of the finished output directory.
	if rep.Converted > 0 {
		if err := distributeOutput(ctx, &cfg, p, log); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Warn("Distribution skipped.")
			} else {
				log.Error("Distribution failed: %v", err)
				return 1
			}
		}
	}

	if ctx.Err() != nil {
		return 1
	}
	return 0
}

// distributeOutput copies the batch output to cfg.DistDir, prompting for a
// destination when none was configured. Declining the prompt is not an
// error; the converted files already sit in the output directory.
func distributeOutput(ctx context.Context, cfg *config.Config, p prompt.Interactor, log *logging.Logger) error {
	if cfg.DistDir == "" {
		if cfg.AssumeYes {
			return nil
		}
		ok, err := p.Confirm("Copy the converted playlists to another location (e.g. a network share)?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		dest, err := p.Line("Destination path")
		if err != nil {
			return err
		}
		if dest == "" {
			return prompt.ErrAborted
		}
		cfg.DistDir = config.NormalizeDirArg(dest)
	}

	outputAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return err
	}
	distAbs, err := filepath.Abs(cfg.DistDir)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDist(outputAbs, distAbs); err != nil {
		return err
	}

	_, err = distribute.Copy(ctx, cfg.OutputDir, cfg.DistDir, log)
	return err
}
