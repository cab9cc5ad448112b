// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation. Defaults match the behavior
// of the original interactive converter so existing libraries migrate the
// same way.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputSubdir is the fixed subdirectory created under the input directory
// when no explicit output directory is given.
const OutputSubdir = "converted_for_linux"

// Default target prefixes offered during interactive configuration.
const (
	TargetRelative = "../"
	TargetAbsolute = "/music/"
)

// Config holds all runtime settings for the playlist converter. It is
// populated by [DefaultConfig], then [FromEnv], then mutated by [ParseFlags]
// and the interactive configuration flow before being passed (by pointer) to
// the packages that need it. There is deliberately no ambient/global
// configuration: the rewrite engine and batch driver only see this struct.
type Config struct {
	// Paths.
	InputDir  string // Directory holding the exported playlists.
	OutputDir string // Defaults to InputDir/converted_for_linux.
	DistDir   string // Optional secondary destination (e.g. network share).

	// Prefix mapping applied to every path entry.
	SourcePrefix string // Matched case-insensitively; normalized to forward slashes with trailing "/".
	TargetPrefix string // Substituted verbatim.

	// TargetPrefixSet records that TargetPrefix came from a flag or the
	// environment, so the interactive flow skips the prefix choice.
	TargetPrefixSet bool

	// Behavior.
	AssumeYes     bool // Skip confirmation prompts (--yes).
	PromptRetries int  // Invalid-input retries before a prompt aborts. Default: 3.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [FromEnv] and [ParseFlags] layer on overrides.
func DefaultConfig() Config {
	return Config{
		TargetPrefix:  TargetRelative,
		PromptRetries: 3,
		ColorMode:     ColorAuto,
	}
}

// envOverrides mirrors the Config fields that may be seeded from the
// environment (PLAYLISTFIX_* variables). Only non-zero values are applied,
// and CLI flags still win over the environment.
type envOverrides struct {
	InputDir     string `envconfig:"INPUT_DIR"`
	OutputDir    string `envconfig:"OUTPUT_DIR"`
	DistDir      string `envconfig:"DIST_DIR"`
	SourcePrefix string `envconfig:"SOURCE_PREFIX"`
	TargetPrefix string `envconfig:"TARGET_PREFIX"`
	LogFile      string `envconfig:"LOG"`
	Color        string `envconfig:"COLOR"`
}

// FromEnv applies PLAYLISTFIX_* environment overrides to cfg.
func FromEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("playlistfix", &env); err != nil {
		return err
	}
	if env.InputDir != "" {
		cfg.InputDir = NormalizeDirArg(env.InputDir)
	}
	if env.OutputDir != "" {
		cfg.OutputDir = NormalizeDirArg(env.OutputDir)
	}
	if env.DistDir != "" {
		cfg.DistDir = NormalizeDirArg(env.DistDir)
	}
	if env.SourcePrefix != "" {
		cfg.SourcePrefix = env.SourcePrefix
	}
	if env.TargetPrefix != "" {
		cfg.TargetPrefix = env.TargetPrefix
		cfg.TargetPrefixSet = true
	}
	if env.LogFile != "" {
		cfg.LogFile = env.LogFile
	}
	if env.Color != "" {
		cfg.ColorMode = ColorMode(env.Color)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges. Path existence is not
// checked here: missing paths are resolved by the interactive configuration
// flow, which prompts for them.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.PromptRetries < 0 {
		return fmt.Errorf("retries must not be negative (got %d)", c.PromptRetries)
	}
	return nil
}

// ResolveOutputDir fills OutputDir with the fixed subdirectory under
// InputDir when no explicit output directory was configured.
func (c *Config) ResolveOutputDir() {
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, OutputSubdir)
	}
}

// ValidateDist ensures the distribution target is distinct from the batch
// output directory, so the copy step never copies a directory onto itself.
// Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidateDist(outputAbs, distAbs string) error {
	if distAbs == outputAbs {
		return errors.New("distribution target must differ from the output directory")
	}
	return nil
}
