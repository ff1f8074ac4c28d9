// Package tasks defines the JSON task-file format: an ordered list of
// download/split/clip/gif tasks plus global settings that fill in per-task
// gaps. Validation happens up front so a bad entry is reported before any
// work starts.
package tasks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/backmassage/splitmaster/internal/units"
)

// Task types accepted in a task file.
const (
	TypeDownload = "download"
	TypeSplit    = "split"
	TypeClip     = "clip"
	TypeGif      = "gif"
)

// GlobalSettings supplies defaults merged into every task that leaves the
// corresponding field empty.
type GlobalSettings struct {
	OutputDir  string `json:"output_dir,omitempty"`
	OutputExt  string `json:"output_ext,omitempty"`
	MaxSize    string `json:"max_size,omitempty"`
	VideoCodec string `json:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty"`
}

// IntervalSpec is one clip window in timecode form ("90", "1:30", "0:01:30").
type IntervalSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Task is one entry in a task file. Fields are a union across types; only
// those relevant to Type are consulted.
type Task struct {
	Type       string `json:"type"`
	Input      string `json:"input,omitempty"`
	URL        string `json:"url,omitempty"`
	OutputName string `json:"output_name,omitempty"`
	OutputExt  string `json:"output_ext,omitempty"`

	// split
	MaxSize      string  `json:"max_size,omitempty"`
	SafetyFactor float64 `json:"safety_factor,omitempty"`
	MaxRounds    *int    `json:"max_rounds,omitempty"`

	// clip
	Intervals  []IntervalSpec `json:"intervals,omitempty"`
	VideoCodec string         `json:"video_codec,omitempty"`
	AudioCodec string         `json:"audio_codec,omitempty"`

	// gif
	NumClips     int     `json:"num_clips,omitempty"`
	ClipDuration float64 `json:"clip_duration,omitempty"`
	TimeGap      float64 `json:"time_gap,omitempty"`
	FPS          int     `json:"fps,omitempty"`
	ScaleWidth   int     `json:"scale_width,omitempty"`
	HighQuality  bool    `json:"high_quality,omitempty"`
	Thumbnails   bool    `json:"thumbnails,omitempty"`
	Grid         bool    `json:"grid,omitempty"`
	GridColumns  int     `json:"grid_columns,omitempty"`

	// download
	Overwrite bool `json:"overwrite,omitempty"`
}

// File is a parsed task file.
type File struct {
	Global GlobalSettings `json:"global_settings"`
	Tasks  []Task         `json:"tasks"`
}

// Load reads and parses a task file, applies global settings, and validates
// the result.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes raw JSON, applies global settings, and validates.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	f.applyGlobals()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyGlobals copies global defaults into tasks that left the field empty.
func (f *File) applyGlobals() {
	g := &f.Global
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if t.OutputExt == "" {
			t.OutputExt = g.OutputExt
		}
		if t.OutputExt == "" {
			t.OutputExt = "mp4"
		}
		t.OutputExt = units.NormalizeExtension(t.OutputExt)
		if t.MaxSize == "" {
			t.MaxSize = g.MaxSize
		}
		if t.VideoCodec == "" {
			t.VideoCodec = g.VideoCodec
		}
		if t.AudioCodec == "" {
			t.AudioCodec = g.AudioCodec
		}
	}
}

// Validate checks every task; the first failure is returned with a
// "task N (type)" prefix so the offending entry is easy to find.
func (f *File) Validate() error {
	if len(f.Tasks) == 0 {
		return fmt.Errorf("task file contains no tasks")
	}
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if err := t.validate(); err != nil {
			return fmt.Errorf("task %d (%s): %w", i+1, t.Type, err)
		}
	}
	return nil
}

func (t *Task) validate() error {
	switch t.Type {
	case TypeDownload:
		if t.URL == "" {
			return fmt.Errorf("url is required")
		}
	case TypeSplit:
		if t.Input == "" {
			return fmt.Errorf("input is required")
		}
		if t.MaxSize == "" {
			return fmt.Errorf("max_size is required")
		}
		if _, err := units.ParseSize(t.MaxSize); err != nil {
			return err
		}
		// 0 means "use the configured default".
		if t.SafetyFactor < 0 || t.SafetyFactor > 1 {
			return fmt.Errorf("safety_factor must be between 0 and 1")
		}
		if t.MaxRounds != nil && *t.MaxRounds < 0 {
			return fmt.Errorf("max_rounds must not be negative")
		}
	case TypeClip:
		if t.Input == "" {
			return fmt.Errorf("input is required")
		}
		if len(t.Intervals) == 0 {
			return fmt.Errorf("at least one interval is required")
		}
		for j, iv := range t.Intervals {
			start, err := units.ParseTimecode(iv.Start)
			if err != nil {
				return fmt.Errorf("interval %d: %w", j+1, err)
			}
			end, err := units.ParseTimecode(iv.End)
			if err != nil {
				return fmt.Errorf("interval %d: %w", j+1, err)
			}
			if start < 0 || start >= end {
				return fmt.Errorf("interval %d: start must be before end", j+1)
			}
		}
	case TypeGif:
		if t.Input == "" {
			return fmt.Errorf("input is required")
		}
		if t.NumClips < 0 {
			return fmt.Errorf("num_clips must not be negative")
		}
		if t.ClipDuration < 0 {
			return fmt.Errorf("clip_duration must not be negative")
		}
		if t.TimeGap < 0 {
			return fmt.Errorf("time_gap must not be negative")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown type %q", t.Type)
	}
	if t.OutputName == "" {
		return fmt.Errorf("output_name is required")
	}
	return nil
}

// ParsedIntervals converts the task's timecode intervals to seconds. Call
// only after Validate.
func (t *Task) ParsedIntervals() [][2]float64 {
	out := make([][2]float64, 0, len(t.Intervals))
	for _, iv := range t.Intervals {
		start, _ := units.ParseTimecode(iv.Start)
		end, _ := units.ParseTimecode(iv.End)
		out = append(out, [2]float64{start, end})
	}
	return out
}
