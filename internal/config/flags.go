package config

// This file implements CLI flag parsing and help text. Color overrides
// (--color / --no-color) are applied after Parse so the ColorMode default
// holds unless the user passes one of them.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "1.2.0-dev"

// Version returns the build version string.
func Version() string { return version }

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("splitmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var ov overrideFlags

	fs.StringVar(&cfg.TaskFile, "tasks", "", "Run tasks from a JSON file")
	fs.StringVar(&cfg.TaskFile, "t", "", "Same as --tasks")
	fs.StringVar(&cfg.SplitInput, "split", "", "Split a single file by size")
	fs.StringVar(&cfg.SplitInput, "s", "", "Same as --split")
	fs.StringVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "Size budget per piece (e.g. 2GB, 500MB)")
	fs.StringVar(&cfg.OutputName, "name", "", "Output base name (default: derived from input)")
	fs.StringVar(&cfg.OutputName, "n", "", "Same as --name")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for outputs")
	fs.StringVar(&cfg.OutputExt, "ext", cfg.OutputExt, "Output container extension")

	fs.Var(&colorModeValue{&cfg.ColorMode}, "color-mode", "Color mode: auto | always | never")
	fs.BoolVar(&ov.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&ov.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")

	fs.BoolVar(&ov.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&ov.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&ov.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&ov.showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if ov.noColor {
		cfg.ColorMode = ColorNever
	} else if ov.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if ov.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if ov.showVersion {
		fmt.Fprintln(os.Stdout, "splitmaster v"+version)
		os.Exit(0)
	}

	if extra := fs.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument %q", extra[0])
	}
	return nil
}

// overrideFlags holds booleans that are applied after Parse. They either
// override a default (color mode) or trigger exit (help, version).
type overrideFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Splitmaster v" + version + " — size-aware ffmpeg orchestrator"},
		{"", ""},
		{"  splitmaster --tasks tasks.json", ""},
		{"  splitmaster --split video.mp4 --max-size 2GB --name part", ""},
		{"", ""},
		{"Tasks", ""},
		{"  -t, --tasks <file>", "Run tasks from a JSON file"},
		{"  -s, --split <file>", "Split a single file by size"},
		{"  --max-size <size>", "Size budget per piece (default: 2GB)"},
		{"  -n, --name <base>", "Output base name"},
		{"  --output-dir <dir>", "Directory for outputs (default: .)"},
		{"  --ext <ext>", "Output container extension (default: mp4)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  --color-mode <mode>", "auto | always | never (default: auto)"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe)"},
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

// colorModeValue adapts ColorMode to flag.Var for an explicit --color-mode
// style flag, kept for scripts that prefer a single flag over the pair.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
