// Package clipper extracts time-interval clips from a source file. Each
// interval becomes its own output; one bad interval is reported without
// aborting the rest.
package clipper

import (
	"context"
	"fmt"

	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/fsutil"
	"github.com/backmassage/splitmaster/internal/probe"
)

// Interval is one [Start, End) window in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Request describes a clipping run.
type Request struct {
	Source     string
	OutputName string
	OutputExt  string
	Intervals  []Interval
	VideoCodec string
	AudioCodec string
}

// FailedClip records an interval that could not be cut (1-based index).
type FailedClip struct {
	Index  int
	Reason string
}

// Result lists produced clips and per-interval failures.
type Result struct {
	Outputs []string
	Failed  []FailedClip
}

// ValidationError is a rejected request; nothing was spawned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid clip request: " + e.Reason
}

// Prober yields a fresh media descriptor for a path.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.MediaInfo, error)
}

// Clipper drives the external tool for interval cuts.
type Clipper struct {
	runner ffmpeg.Invoker
	prober Prober
}

// New returns a Clipper.
func New(runner ffmpeg.Invoker, prober Prober) *Clipper {
	return &Clipper{runner: runner, prober: prober}
}

// CreateClips validates the request and cuts each interval in order. An
// error is returned only when no clip at all was produced.
func (c *Clipper) CreateClips(ctx context.Context, req Request) (*Result, error) {
	if err := c.validate(ctx, &req); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, iv := range req.Intervals {
		base := fmt.Sprintf("%s_%03d", req.OutputName, i+1)
		output := fsutil.UniqueName(base, req.OutputExt)

		cmd := &ffmpeg.ClipCommand{
			Input:      req.Source,
			OutputPath: output,
			Start:      iv.Start,
			End:        iv.End,
			VideoCodec: req.VideoCodec,
			AudioCodec: req.AudioCodec,
		}
		if err := c.runner.Run(ctx, cmd); err != nil {
			res.Failed = append(res.Failed, FailedClip{Index: i + 1, Reason: err.Error()})
			continue
		}
		res.Outputs = append(res.Outputs, output)
	}

	if len(res.Outputs) == 0 {
		return res, fmt.Errorf("all %d clip(s) failed", len(req.Intervals))
	}
	return res, nil
}

func (c *Clipper) validate(ctx context.Context, req *Request) error {
	if !fsutil.Exists(req.Source) {
		return &ValidationError{Reason: fmt.Sprintf("source file not found: %s", req.Source)}
	}
	if req.OutputName == "" {
		return &ValidationError{Reason: "output name is empty"}
	}
	if req.OutputExt == "" {
		return &ValidationError{Reason: "output extension is empty"}
	}
	if len(req.Intervals) == 0 {
		return &ValidationError{Reason: "at least one interval is required"}
	}
	for i, iv := range req.Intervals {
		if iv.Start < 0 {
			return &ValidationError{Reason: fmt.Sprintf("interval %d: start time is negative", i+1)}
		}
		if iv.Start >= iv.End {
			return &ValidationError{Reason: fmt.Sprintf("interval %d: start must be before end", i+1)}
		}
	}

	// Bounds check against the probed duration when one is available;
	// sources without duration metadata are cut blind.
	info, err := c.prober.Probe(ctx, req.Source)
	if err == nil && info.HasDuration() {
		for i, iv := range req.Intervals {
			if iv.End > *info.Duration {
				return &ValidationError{Reason: fmt.Sprintf(
					"interval %d: end time %.3fs exceeds video duration %.3fs",
					i+1, iv.End, *info.Duration)}
			}
		}
	}
	return nil
}
