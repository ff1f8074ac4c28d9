// Package gifgen converts videos to animated GIFs by sampling short clips
// across the whole runtime, merging them, and encoding the merge as one
// looping GIF. Thumbnails and a contact-sheet grid are optional extras.
package gifgen

import (
	"context"
	"fmt"
	"os"

	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/fsutil"
	"github.com/backmassage/splitmaster/internal/probe"
)

// Prober yields a fresh media descriptor for a path.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.MediaInfo, error)
}

// GridRenderer composes extracted thumbnails into one contact-sheet image.
// It is an optional collaborator: a nil renderer disables grid output.
type GridRenderer interface {
	RenderGrid(thumbPaths []string, outputPath string, columns int) error
}

// Logger is the minimal logging surface the converter needs.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

// Converter drives the clips-first GIF workflow.
type Converter struct {
	runner ffmpeg.Invoker
	prober Prober
	grid   GridRenderer
	log    Logger
}

// New returns a Converter. grid may be nil, in which case Options.Grid is
// ignored; log may be nil to disable logging.
func New(runner ffmpeg.Invoker, prober Prober, grid GridRenderer, log Logger) *Converter {
	if log == nil {
		log = nopLogger{}
	}
	return &Converter{runner: runner, prober: prober, grid: grid, log: log}
}

// CreateGif samples opts.NumClips windows from the source, merges them, and
// encodes the merge as a GIF. Temporary clips, the merged intermediate, and
// the palette are removed before returning; thumbnails and the grid persist.
func (c *Converter) CreateGif(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := c.validate(&opts); err != nil {
		return nil, err
	}

	info, err := c.prober.Probe(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	if !info.HasDuration() {
		return nil, &ValidationError{Reason: "source duration is unknown"}
	}

	intervals := sampleIntervals(*info.Duration, opts.NumClips, opts.ClipDuration, opts.TimeGap)
	if len(intervals) == 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"no clip fits: duration %.1fs, clip length %.1fs", *info.Duration, opts.ClipDuration)}
	}
	c.log.Info("Sampling %d clip(s) of %.1fs from %s", len(intervals), opts.ClipDuration, opts.Source)

	clips, thumbs := c.cutClips(ctx, intervals, &opts)
	defer removeAll(clips)
	if len(clips) == 0 {
		return nil, fmt.Errorf("all %d sample clip(s) failed", len(intervals))
	}

	merged := opts.OutputName + "_merged.mp4"
	if err := c.runner.Run(ctx, &ffmpeg.ConcatCommand{Inputs: clips, OutputPath: merged}); err != nil {
		return nil, fmt.Errorf("merge sample clips: %w", err)
	}
	defer os.Remove(merged)

	gifPath := opts.OutputName + ".gif"
	if err := c.encode(ctx, merged, gifPath, &opts); err != nil {
		return nil, err
	}

	res := &Result{
		GifPath:       gifPath,
		Thumbnails:    thumbs,
		TotalDuration: float64(len(clips)) * opts.ClipDuration,
	}

	if opts.Grid && c.grid != nil && len(thumbs) > 0 {
		gridPath := opts.OutputName + "_grid.png"
		if err := c.grid.RenderGrid(thumbs, gridPath, opts.GridColumns); err != nil {
			c.log.Warn("Grid rendering failed: %v", err)
		} else {
			res.GridPath = gridPath
		}
	}
	return res, nil
}

// cutClips stream-copies each interval into a temporary clip and optionally
// grabs its first frame. A failed interval is skipped with a warning.
func (c *Converter) cutClips(ctx context.Context, intervals []interval, opts *Options) (clips, thumbs []string) {
	for i, iv := range intervals {
		clip := fmt.Sprintf("%s_clip_%03d.mp4", opts.OutputName, i+1)
		cmd := &ffmpeg.ClipCommand{
			Input:      opts.Source,
			OutputPath: clip,
			Start:      iv.start,
			End:        iv.end,
			VideoCodec: "copy",
			AudioCodec: "copy",
		}
		if err := c.runner.Run(ctx, cmd); err != nil {
			c.log.Warn("Sample clip %d failed: %v", i+1, err)
			continue
		}
		clips = append(clips, clip)

		if opts.Thumbnails {
			thumb := fmt.Sprintf("%s_thumb_%03d.png", opts.OutputName, i+1)
			if err := c.runner.Run(ctx, &ffmpeg.FrameCommand{Input: clip, OutputPath: thumb}); err != nil {
				c.log.Warn("Thumbnail %d failed: %v", i+1, err)
				continue
			}
			thumbs = append(thumbs, thumb)
		}
	}
	return clips, thumbs
}

// encode turns the merged intermediate into the final GIF, via a palette
// pass when HighQuality is set.
func (c *Converter) encode(ctx context.Context, input, output string, opts *Options) error {
	filters := opts.filters()
	gif := &ffmpeg.GifCommand{
		Input:      input,
		OutputPath: output,
		Filters:    filters,
		LoopCount:  opts.LoopCount,
	}

	if opts.HighQuality {
		palette := opts.OutputName + "_palette.png"
		pal := &ffmpeg.PaletteCommand{Input: input, OutputPath: palette, Filters: filters}
		if err := c.runner.Run(ctx, pal); err != nil {
			return fmt.Errorf("generate palette: %w", err)
		}
		defer os.Remove(palette)
		gif.Palette = palette
	}

	if err := c.runner.Run(ctx, gif); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func (c *Converter) validate(opts *Options) error {
	if !fsutil.Exists(opts.Source) {
		return &ValidationError{Reason: fmt.Sprintf("source file not found: %s", opts.Source)}
	}
	if opts.OutputName == "" {
		return &ValidationError{Reason: "output name is empty"}
	}
	if opts.NumClips <= 0 {
		return &ValidationError{Reason: "clip count must be positive"}
	}
	if opts.ClipDuration <= 0 {
		return &ValidationError{Reason: "clip duration must be positive"}
	}
	if opts.TimeGap < 0 {
		return &ValidationError{Reason: "time gap must not be negative"}
	}
	return nil
}

type interval struct {
	start, end float64
}

// sampleIntervals lays windows of clipDuration seconds, gap seconds apart,
// from the start of the file. Windows that would run past the end are
// dropped rather than truncated.
func sampleIntervals(total float64, numClips int, clipDuration, gap float64) []interval {
	out := make([]interval, 0, numClips)
	start := 0.0
	for i := 0; i < numClips; i++ {
		end := start + clipDuration
		if end > total {
			break
		}
		out = append(out, interval{start: start, end: end})
		start = end + gap
	}
	return out
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
