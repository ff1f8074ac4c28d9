package config

import (
	"path/filepath"
	"testing"
)

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "maybe", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip task requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_SafetyFactor(t *testing.T) {
	tests := []struct {
		name    string
		factor  float64
		wantErr bool
	}{
		{"default is valid", 0.95, false},
		{"one is valid", 1.0, false},
		{"zero is invalid", 0, true},
		{"negative is invalid", -0.5, true},
		{"above one is invalid", 1.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.SafetyFactor = tt.factor
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MaxSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.MaxSize = "500MB"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.MaxSizeBytes != 500*1024*1024 {
		t.Errorf("MaxSizeBytes = %d, want %d", cfg.MaxSizeBytes, int64(500*1024*1024))
	}

	cfg.MaxSize = "huge"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with bad max size: want error")
	}
}

func TestValidate_RequiresTaskOrSplit(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without --tasks or --split")
	}

	cfg = DefaultConfig()
	cfg.TaskFile = "tasks.json"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	cfg = DefaultConfig()
	cfg.TaskFile = "tasks.json"
	cfg.SplitInput = "video.mp4"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject --tasks together with --split")
	}
}

func TestValidate_DerivesOutputName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplitInput = "/videos/movie.mp4"
	cfg.OutputDir = "/out"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := filepath.Join("/out", "movie_part")
	if cfg.OutputName != want {
		t.Errorf("OutputName = %q, want %q", cfg.OutputName, want)
	}
}

func TestValidate_KeepsExplicitOutputName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplitInput = "/videos/movie.mp4"
	cfg.OutputName = "custom"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.OutputName != "custom" {
		t.Errorf("OutputName = %q, want custom", cfg.OutputName)
	}
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("SPLITMASTER_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("SPLITMASTER_MAX_SIZE", "1GB")

	cfg := DefaultConfig()
	if err := FromEnvironment(&cfg); err != nil {
		t.Fatalf("FromEnvironment() error = %v", err)
	}
	if cfg.FfmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FfmpegPath = %q", cfg.FfmpegPath)
	}
	if cfg.MaxSize != "1GB" {
		t.Errorf("MaxSize = %q", cfg.MaxSize)
	}
	// Untouched fields keep their defaults.
	if cfg.FfprobePath != "ffprobe" {
		t.Errorf("FfprobePath = %q, want ffprobe", cfg.FfprobePath)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{
		"--split", "video.mp4", "--max-size", "500MB", "--name", "part", "--no-color",
	})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.SplitInput != "video.mp4" || cfg.MaxSize != "500MB" || cfg.OutputName != "part" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--bogus"}); err == nil {
		t.Error("ParseFlags() with unknown flag: want error")
	}
}

func TestParseFlags_RejectsPositionalArgs(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--check", "stray"}); err == nil {
		t.Error("ParseFlags() with stray positional: want error")
	}
}

func TestColorModeValue(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"ALWAYS", ColorAlways, false},
		{"never", ColorNever, false},
		{"rainbow", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m ColorMode
			err := (&colorModeValue{&m}).Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && m != tt.want {
				t.Errorf("Set(%q) = %q, want %q", tt.in, m, tt.want)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FfmpegPath != "ffmpeg" || cfg.FfprobePath != "ffprobe" {
		t.Errorf("tool paths = %q/%q", cfg.FfmpegPath, cfg.FfprobePath)
	}
	if cfg.MaxSize != "2GB" {
		t.Errorf("default MaxSize = %q, want 2GB", cfg.MaxSize)
	}
	if cfg.SafetyFactor != 0.95 {
		t.Errorf("default SafetyFactor = %v, want 0.95", cfg.SafetyFactor)
	}
	if cfg.MaxRounds != 2 {
		t.Errorf("default MaxRounds = %d, want 2", cfg.MaxRounds)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want auto", cfg.ColorMode)
	}
	if cfg.VideoCodec != "copy" || cfg.AudioCodec != "copy" {
		t.Errorf("default codecs = %q/%q, want copy/copy", cfg.VideoCodec, cfg.AudioCodec)
	}
}
