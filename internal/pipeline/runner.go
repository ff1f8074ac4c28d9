// Package pipeline executes a task list sequentially: each task is
// dispatched to its component, failures are counted without stopping the
// batch, and a summary is logged at the end.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/backmassage/splitmaster/internal/clipper"
	"github.com/backmassage/splitmaster/internal/config"
	"github.com/backmassage/splitmaster/internal/display"
	"github.com/backmassage/splitmaster/internal/download"
	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/fsutil"
	"github.com/backmassage/splitmaster/internal/gifgen"
	"github.com/backmassage/splitmaster/internal/probe"
	"github.com/backmassage/splitmaster/internal/splitter"
	"github.com/backmassage/splitmaster/internal/tasks"
	"github.com/backmassage/splitmaster/internal/units"
)

// Logger is the logging surface the runner needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Component interfaces, satisfied by the concrete packages and by test fakes.
type sizeSplitter interface {
	SplitBySize(ctx context.Context, req splitter.Request) (*splitter.Outcome, error)
}

type intervalClipper interface {
	CreateClips(ctx context.Context, req clipper.Request) (*clipper.Result, error)
}

type gifMaker interface {
	CreateGif(ctx context.Context, opts gifgen.Options) (*gifgen.Result, error)
}

type fetcher interface {
	Fetch(ctx context.Context, req download.Request) (string, error)
}

type prober interface {
	Probe(ctx context.Context, path string) (*probe.MediaInfo, error)
}

// Runner executes tasks against a fixed set of components.
type Runner struct {
	cfg *config.Config
	log Logger

	splitter sizeSplitter
	clipper  intervalClipper
	gif      gifMaker
	fetch    fetcher
	prober   prober
}

// NewRunner wires the real components from cfg.
func NewRunner(cfg *config.Config, log Logger) *Runner {
	exec := ffmpeg.NewExecutor(cfg.FfmpegPath)
	pr := probe.New(cfg.FfprobePath)
	return &Runner{
		cfg:      cfg,
		log:      log,
		splitter: splitter.New(exec, pr, log),
		clipper:  clipper.New(exec, pr),
		gif:      gifgen.New(exec, pr, gifgen.ImagingRenderer{}, log),
		fetch:    download.New(exec),
		prober:   pr,
	}
}

// RunFile executes every task in the file sequentially. A failed task is
// logged and counted; the batch continues. An interrupted context stops the
// batch between tasks.
func (r *Runner) RunFile(ctx context.Context, f *tasks.File) RunStats {
	var stats RunStats
	stats.Total = len(f.Tasks)
	r.log.Info("Running %s", display.FormatCount(stats.Total, "task"))

	for i := range f.Tasks {
		t := &f.Tasks[i]
		stats.Current = i + 1

		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}

		r.log.Info("[%d/%d] %s: %s", stats.Current, stats.Total, t.Type, t.OutputName)
		if err := r.runTask(ctx, t, &stats); err != nil {
			r.log.Error("Task failed: %v", err)
			stats.Failed++
			continue
		}
		stats.Succeeded++
	}

	r.logSummary(&stats)
	return stats
}

// RunSingleSplit covers the --split CLI mode without a task file.
func (r *Runner) RunSingleSplit(ctx context.Context) RunStats {
	var stats RunStats
	stats.Total = 1
	stats.Current = 1

	t := tasks.Task{
		Type:         tasks.TypeSplit,
		Input:        r.cfg.SplitInput,
		OutputName:   r.cfg.OutputName,
		OutputExt:    r.cfg.OutputExt,
		MaxSize:      r.cfg.MaxSize,
		SafetyFactor: r.cfg.SafetyFactor,
	}
	if err := r.runTask(ctx, &t, &stats); err != nil {
		r.log.Error("Split failed: %v", err)
		stats.Failed++
	} else {
		stats.Succeeded++
	}

	r.logSummary(&stats)
	return stats
}

func (r *Runner) runTask(ctx context.Context, t *tasks.Task, stats *RunStats) error {
	switch t.Type {
	case tasks.TypeDownload:
		return r.runDownload(ctx, t, stats)
	case tasks.TypeSplit:
		return r.runSplit(ctx, t, stats)
	case tasks.TypeClip:
		return r.runClip(ctx, t, stats)
	case tasks.TypeGif:
		return r.runGif(ctx, t, stats)
	default:
		return fmt.Errorf("unknown task type %q", t.Type)
	}
}

func (r *Runner) runDownload(ctx context.Context, t *tasks.Task, stats *RunStats) error {
	out, err := r.fetch.Fetch(ctx, download.Request{
		URL:        t.URL,
		OutputName: r.outputBase(t),
		OutputExt:  t.OutputExt,
		Overwrite:  t.Overwrite,
	})
	if err != nil {
		return err
	}
	r.recordOutput(stats, out)
	r.log.Success("Downloaded %s", filepath.Base(out))
	return nil
}

func (r *Runner) runSplit(ctx context.Context, t *tasks.Task, stats *RunStats) error {
	maxSize, err := units.ParseSize(t.MaxSize)
	if err != nil {
		return err
	}
	factor := t.SafetyFactor
	if factor == 0 {
		factor = r.cfg.SafetyFactor
	}
	rounds := r.cfg.MaxRounds
	if t.MaxRounds != nil {
		rounds = *t.MaxRounds
	}

	outcome, err := r.splitter.SplitBySize(ctx, splitter.Request{
		Source:       t.Input,
		OutputName:   r.outputBase(t),
		OutputExt:    t.OutputExt,
		MaxSizeBytes: maxSize,
		SafetyFactor: factor,
		MaxRounds:    rounds,
	})
	if err != nil {
		return err
	}

	for _, p := range outcome.Accepted {
		r.recordOutput(stats, p)
	}
	stats.OversizedFiles += len(outcome.Oversized)

	if outcome.Copied {
		r.log.Success("Already under %s, copied as-is", display.FormatBytes(maxSize))
		return nil
	}
	r.log.Success("Split into %s", display.FormatCount(len(outcome.Accepted), "segment"))
	for _, p := range outcome.Oversized {
		size, _ := fsutil.FileSize(p)
		r.log.Warn("Still over budget: %s (%s)", filepath.Base(p), display.FormatBytes(size))
	}
	return nil
}

func (r *Runner) runClip(ctx context.Context, t *tasks.Task, stats *RunStats) error {
	intervals := make([]clipper.Interval, 0, len(t.Intervals))
	for _, iv := range t.ParsedIntervals() {
		intervals = append(intervals, clipper.Interval{Start: iv[0], End: iv[1]})
	}

	videoCodec := t.VideoCodec
	if videoCodec == "" {
		videoCodec = r.cfg.VideoCodec
	}
	audioCodec := t.AudioCodec
	if audioCodec == "" {
		audioCodec = r.cfg.AudioCodec
	}

	res, err := r.clipper.CreateClips(ctx, clipper.Request{
		Source:     t.Input,
		OutputName: r.outputBase(t),
		OutputExt:  t.OutputExt,
		Intervals:  intervals,
		VideoCodec: videoCodec,
		AudioCodec: audioCodec,
	})
	if err != nil {
		return err
	}

	for _, p := range res.Outputs {
		r.recordOutput(stats, p)
	}
	for _, f := range res.Failed {
		r.log.Warn("Interval %d failed: %s", f.Index, f.Reason)
	}
	r.log.Success("Created %s", display.FormatCount(len(res.Outputs), "clip"))
	return nil
}

func (r *Runner) runGif(ctx context.Context, t *tasks.Task, stats *RunStats) error {
	numClips, clipDur, gap := t.NumClips, t.ClipDuration, t.TimeGap
	if numClips == 0 {
		// Auto mode: derive sampling from the source duration.
		info, err := r.prober.Probe(ctx, t.Input)
		if err != nil {
			return err
		}
		if !info.HasDuration() {
			return fmt.Errorf("cannot auto-configure gif: duration unknown for %s", t.Input)
		}
		numClips, clipDur, gap = gifgen.AutoSettings(*info.Duration)
	}

	res, err := r.gif.CreateGif(ctx, gifgen.Options{
		Source:       t.Input,
		OutputName:   r.outputBase(t),
		NumClips:     numClips,
		ClipDuration: clipDur,
		TimeGap:      gap,
		FPS:          t.FPS,
		ScaleWidth:   t.ScaleWidth,
		HighQuality:  t.HighQuality,
		Thumbnails:   t.Thumbnails,
		Grid:         t.Grid,
		GridColumns:  t.GridColumns,
	})
	if err != nil {
		return err
	}

	r.recordOutput(stats, res.GifPath)
	for _, th := range res.Thumbnails {
		r.recordOutput(stats, th)
	}
	if res.GridPath != "" {
		r.recordOutput(stats, res.GridPath)
	}
	r.log.Success("Created %s (%s of footage)",
		filepath.Base(res.GifPath), units.FormatDuration(res.TotalDuration))
	return nil
}

// outputBase resolves the task's output name against the configured output
// directory; absolute names are kept as-is.
func (r *Runner) outputBase(t *tasks.Task) string {
	if filepath.IsAbs(t.OutputName) {
		return t.OutputName
	}
	return filepath.Join(r.cfg.OutputDir, t.OutputName)
}

func (r *Runner) recordOutput(stats *RunStats, path string) {
	stats.OutputFiles++
	if size, err := fsutil.FileSize(path); err == nil {
		stats.OutputBytes += size
	}
}

func (r *Runner) logSummary(stats *RunStats) {
	r.log.Info("==============================")
	r.log.Info("Done: %d succeeded, %d failed", stats.Succeeded, stats.Failed)
	r.log.Info("  Produced %s (%s)",
		display.FormatCount(stats.OutputFiles, "file"),
		display.FormatBytes(stats.OutputBytes))
	if stats.OversizedFiles > 0 {
		r.log.Warn("  %s still over the size budget",
			display.FormatCount(stats.OversizedFiles, "file"))
	}
}
