package gifgen

import "fmt"

// Options drives the clips-first auto-GIF workflow: NumClips windows of
// ClipDuration seconds, TimeGap seconds apart, are cut from the source,
// concatenated, and encoded as one looping GIF.
type Options struct {
	Source       string
	OutputName   string
	NumClips     int
	ClipDuration float64
	TimeGap      float64

	FPS         int  // default 12
	ScaleWidth  int  // default 480
	HighQuality bool // palette-based encoding
	LoopCount   int  // 0 = loop forever

	Thumbnails  bool
	Grid        bool
	GridColumns int // default 6
}

// Result reports the produced artifacts.
type Result struct {
	GifPath       string
	Thumbnails    []string
	GridPath      string
	TotalDuration float64
}

// ValidationError is a rejected request; nothing was spawned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid gif request: " + e.Reason
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.FPS <= 0 {
		out.FPS = 12
	}
	if out.ScaleWidth <= 0 {
		out.ScaleWidth = 480
	}
	if out.GridColumns <= 0 {
		out.GridColumns = 6
	}
	return out
}

func (o *Options) filters() string {
	return fmt.Sprintf("fps=%d,scale=%d:-1:flags=lanczos", o.FPS, o.ScaleWidth)
}

// AutoSettings picks clip count, clip length, and gap for a source of the
// given duration so the sampled windows spread across the whole file.
func AutoSettings(totalDuration float64) (numClips int, clipDuration, timeGap float64) {
	numClips = 30
	switch {
	case totalDuration <= 30:
		clipDuration = 1.0
	case totalDuration <= 300:
		clipDuration = 2.0
	default:
		clipDuration = 3.0
	}
	if numClips > 1 {
		timeGap = (totalDuration - float64(numClips)*clipDuration) / float64(numClips-1)
		if timeGap < 0 {
			timeGap = 0
		}
	}
	return numClips, clipDuration, timeGap
}
