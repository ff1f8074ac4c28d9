// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/backmassage/splitmaster/internal/units"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [FromEnvironment] (SPLITMASTER_* variables), and then mutated
// by [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Tool paths.
	FfmpegPath  string `envconfig:"FFMPEG_PATH"`
	FfprobePath string `envconfig:"FFPROBE_PATH"`

	// Splitting defaults.
	MaxSize      string  `envconfig:"MAX_SIZE"`      // Default: "2GB".
	SafetyFactor float64 `envconfig:"SAFETY_FACTOR"` // Default: 0.95.
	MaxRounds    int     `envconfig:"MAX_ROUNDS"`    // Default: 2.

	// Output defaults.
	OutputDir  string `envconfig:"OUTPUT_DIR"`  // Default: current directory.
	OutputExt  string `envconfig:"OUTPUT_EXT"`  // Default: "mp4".
	VideoCodec string `envconfig:"VIDEO_CODEC"` // Default: "copy".
	AudioCodec string `envconfig:"AUDIO_CODEC"` // Default: "copy".

	// Single-task mode (set from flags, not the environment).
	TaskFile   string `ignored:"true"` // --tasks path.
	SplitInput string `ignored:"true"` // --split source.
	OutputName string `ignored:"true"` // --name; derived from the input when empty.

	// Display and logging.
	Verbose   bool      `ignored:"true"`
	ColorMode ColorMode `envconfig:"COLOR"`    // Default: "auto".
	LogFile   string    `envconfig:"LOG_FILE"` // Optional log file path.
	CheckOnly bool      `ignored:"true"`       // Run --check diagnostics and exit.

	// Derived in Validate.
	MaxSizeBytes int64 `ignored:"true"`
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [FromEnvironment] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		FfmpegPath:   "ffmpeg",
		FfprobePath:  "ffprobe",
		MaxSize:      "2GB",
		SafetyFactor: 0.95,
		MaxRounds:    2,
		OutputDir:    ".",
		OutputExt:    "mp4",
		VideoCodec:   "copy",
		AudioCodec:   "copy",
		ColorMode:    ColorAuto,
	}
}

// FromEnvironment overlays SPLITMASTER_* environment variables onto cfg.
// Unset variables leave the existing values untouched.
func FromEnvironment(cfg *Config) error {
	if err := envconfig.Process("splitmaster", cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// Validate checks enum and numeric fields, derives MaxSizeBytes, and in
// single-task mode derives the output name from the input when not given.
// CheckOnly mode skips the task requirements.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.FfmpegPath == "" || c.FfprobePath == "" {
		return errors.New("ffmpeg and ffprobe paths must not be empty")
	}
	if c.SafetyFactor <= 0 || c.SafetyFactor > 1 {
		return errors.New("safety factor must be between 0 (exclusive) and 1")
	}
	if c.MaxRounds < 0 {
		return errors.New("max rounds must not be negative")
	}

	size, err := units.ParseSize(c.MaxSize)
	if err != nil {
		return err
	}
	c.MaxSizeBytes = size
	c.OutputExt = units.NormalizeExtension(c.OutputExt)

	if c.CheckOnly {
		return nil
	}
	if c.TaskFile == "" && c.SplitInput == "" {
		return errors.New("need --tasks FILE or --split SOURCE")
	}
	if c.TaskFile != "" && c.SplitInput != "" {
		return errors.New("--tasks and --split are mutually exclusive")
	}

	if c.SplitInput != "" && c.OutputName == "" {
		base := filepath.Base(c.SplitInput)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		c.OutputName = filepath.Join(c.OutputDir, base+"_part")
	}
	return nil
}
