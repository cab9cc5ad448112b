package config

// This file implements CLI flag parsing and help text for playlistfix.
// Flags are grouped into paths, prefixes, behavior, and display/utility.
// Values given as flags pre-seed the interactive flow; any answer already
// present is not prompted for again.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, too many positional args).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("playlistfix", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags

	definePathFlags(fs, cfg)
	definePrefixFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, &util)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &util)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "target-prefix" || f.Name == "t" {
			cfg.TargetPrefixSet = true
		}
	})

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "playlistfix v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// utilityFlags holds flags that are applied after Parse: color overrides and
// the help/version exits.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers -i/--input, -o/--output, --dist.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.InputDir, "input", cfg.InputDir, "Playlist input directory (prompted for when omitted)")
	fs.StringVar(&cfg.InputDir, "i", cfg.InputDir, "Same as --input")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory (default: <input>/"+OutputSubdir+")")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output")
	fs.StringVar(&cfg.DistDir, "dist", cfg.DistDir, "Copy converted playlists to this directory after the batch")
}

// definePrefixFlags registers --source-prefix and --target-prefix.
func definePrefixFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SourcePrefix, "source-prefix", cfg.SourcePrefix, "Windows path prefix to strip (detected when omitted)")
	fs.StringVar(&cfg.SourcePrefix, "s", cfg.SourcePrefix, "Same as --source-prefix")
	fs.StringVar(&cfg.TargetPrefix, "target-prefix", cfg.TargetPrefix, "Replacement prefix (default: "+TargetRelative+")")
	fs.StringVar(&cfg.TargetPrefix, "t", cfg.TargetPrefix, "Same as --target-prefix")
}

// defineBehaviorFlags registers -y/--yes and --retries.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Assume yes on confirmation prompts")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Same as --yes")
	fs.IntVar(&cfg.PromptRetries, "retries", cfg.PromptRetries, "Invalid-input retries before a prompt aborts")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, u *utilityFlags) {
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags copies the color override flags into cfg.
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs accepts an optional single positional input directory,
// equivalent to --input.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("at most one positional argument (input_dir) is accepted, got %d", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "playlistfix v" + version + " — iTunes to Navidrome playlist converter"},
		{"", ""},
		{"  playlistfix [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"Paths", ""},
		{"  -i, --input <dir>", "Playlist input directory (prompted for when omitted)"},
		{"  -o, --output <dir>", "Output directory (default: <input>/" + OutputSubdir + ")"},
		{"  --dist <dir>", "Copy converted playlists to this directory after the batch"},
		{"", ""},
		{"Prefixes", ""},
		{"  -s, --source-prefix <p>", "Windows path prefix to strip (detected when omitted)"},
		{"  -t, --target-prefix <p>", "Replacement prefix (default: " + TargetRelative + ")"},
		{"", ""},
		{"Behavior", ""},
		{"  -y, --yes", "Assume yes on confirmation prompts"},
		{"  --retries <n>", "Invalid-input retries before a prompt aborts (default: 3)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
