// Package splitter implements adaptive, size-constrained video splitting.
//
// The segment duration is estimated from the source's own empirical
// throughput (bytes per second of playback), biased down by a safety
// factor. Stream-copy cuts land on keyframes, so individual pieces can
// still overshoot the budget; those are re-probed and re-split with a
// tighter estimate under a bounded round budget. Pieces that remain too
// large when the budget runs out are reported rather than retried forever —
// best effort under budget, not guaranteed under budget.
package splitter

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/fsutil"
	"github.com/backmassage/splitmaster/internal/probe"
	"github.com/backmassage/splitmaster/internal/resolve"
)

const (
	// minSegmentSeconds guards against degenerate non-positive durations
	// from pathological bitrate estimates.
	minSegmentSeconds = 0.5

	// retrySafetyFactor is applied when re-splitting an oversized piece,
	// independent of the caller's factor: by the time a piece needs repair,
	// the caller's margin has already proven optimistic for that content.
	retrySafetyFactor = 0.95

	counterPlaceholder = "%03d"
)

// Prober yields a fresh media descriptor for a path.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.MediaInfo, error)
}

// Logger is the minimal logging surface the splitter needs.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

// Splitter composes the prober, the command runner, and the segment file
// resolver. All work is synchronous; one child process at a time.
type Splitter struct {
	runner ffmpeg.Invoker
	prober Prober
	log    Logger
}

// New returns a Splitter. A nil log disables logging.
func New(runner ffmpeg.Invoker, prober Prober, log Logger) *Splitter {
	if log == nil {
		log = nopLogger{}
	}
	return &Splitter{runner: runner, prober: prober, log: log}
}

// workItem pairs a produced file with its remaining repair rounds, making
// the round budget an explicit loop invariant instead of call-stack depth.
type workItem struct {
	path       string
	roundsLeft int
}

// SplitBySize cuts req.Source into pieces of at most req.MaxSizeBytes.
// Failures before or during the first segmentation pass abort the call;
// failures while repairing an individual oversized piece only demote that
// piece to the oversized list.
func (s *Splitter) SplitBySize(ctx context.Context, req Request) (*Outcome, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	sourceSize, err := fsutil.FileSize(req.Source)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("source file not found: %s", req.Source)}
	}

	canonical := req.OutputName + "." + req.OutputExt

	// Fast path: already under budget, no probing or cutting. A source that
	// already bears the canonical name is accepted in place; copying it onto
	// itself would truncate it.
	if sourceSize <= req.MaxSizeBytes {
		if fsutil.SameFile(req.Source, canonical) {
			s.log.Info("Source under budget and already named %s", canonical)
			return &Outcome{Accepted: []string{canonical}, Copied: true}, nil
		}
		if err := fsutil.CopyFile(req.Source, canonical); err != nil {
			return nil, fmt.Errorf("copy source to %s: %w", canonical, err)
		}
		s.log.Info("Source under budget, copied to %s", canonical)
		return &Outcome{Accepted: []string{canonical}, Copied: true}, nil
	}

	info, err := s.prober.Probe(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	if !info.HasDuration() {
		return nil, ErrDurationUnknown
	}

	target := targetDuration(sourceSize, *info.Duration, req.MaxSizeBytes, req.SafetyFactor)
	pattern := fmt.Sprintf("%s_%s.%s", req.OutputName, counterPlaceholder, req.OutputExt)
	s.log.Info("Splitting %s into ~%.1fs segments", req.Source, target)

	segments, err := s.segment(ctx, req.Source, pattern, target)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, &ffmpeg.ToolError{Op: "segment", Err: fmt.Errorf("no segments produced for %s", pattern)}
	}

	outcome := s.evaluate(ctx, segments, &req)

	// One in-budget piece and nothing oversized: the numbered scheme is
	// superfluous, use the canonical name.
	if len(outcome.Accepted) == 1 && len(outcome.Oversized) == 0 && outcome.Accepted[0] != canonical {
		if err := fsutil.MoveFile(outcome.Accepted[0], canonical); err == nil {
			outcome.Accepted[0] = canonical
		}
	}

	sort.Strings(outcome.Accepted)
	sort.Strings(outcome.Oversized)
	return outcome, nil
}

// evaluate walks the first-pass segments depth-first: each oversized piece's
// repair (including its own children) completes before the next sibling is
// looked at.
func (s *Splitter) evaluate(ctx context.Context, firstPass []string, req *Request) *Outcome {
	outcome := &Outcome{}

	work := make([]workItem, 0, len(firstPass))
	for _, seg := range firstPass {
		work = append(work, workItem{path: seg, roundsLeft: req.MaxRounds})
	}

	for len(work) > 0 {
		item := work[0]
		work = work[1:]

		size, err := fsutil.FileSize(item.path)
		if err != nil {
			s.log.Warn("Segment vanished during evaluation: %s", item.path)
			continue
		}

		if size <= req.MaxSizeBytes {
			outcome.Accepted = append(outcome.Accepted, item.path)
			continue
		}

		if item.roundsLeft <= 0 {
			s.log.Warn("Round budget exhausted, %s stays oversized (%d bytes)", item.path, size)
			outcome.Oversized = append(outcome.Oversized, item.path)
			continue
		}

		children := s.resegment(ctx, item.path, size, req.MaxSizeBytes)
		if len(children) == 0 {
			// Repair failed; demote rather than abort the batch.
			outcome.Oversized = append(outcome.Oversized, item.path)
			continue
		}

		// The intermediate is superseded by its children and never a leaf.
		os.Remove(item.path)

		next := make([]workItem, 0, len(children)+len(work))
		for _, c := range children {
			next = append(next, workItem{path: c, roundsLeft: item.roundsLeft - 1})
		}
		work = append(next, work...)
	}

	return outcome
}

// resegment re-probes one oversized piece and splits it with a duration
// derived from that piece's own throughput. Returns nil on any failure.
func (s *Splitter) resegment(ctx context.Context, path string, size, maxSize int64) []string {
	info, err := s.prober.Probe(ctx, path)
	if err != nil || !info.HasDuration() {
		s.log.Warn("Cannot re-probe oversized segment %s", path)
		return nil
	}

	target := targetDuration(size, *info.Duration, maxSize, retrySafetyFactor)

	base, ext := splitExt(path)
	// Unique suffix keeps sibling repair attempts from colliding on the
	// same counter namespace.
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	pattern := fmt.Sprintf("%s_sub_%s_%s.%s", base, id, counterPlaceholder, ext)

	children, err := s.segment(ctx, path, pattern, target)
	if err != nil {
		s.log.Warn("Re-segmentation of %s failed: %v", path, err)
		return nil
	}
	return children
}

// segment runs one segmentation pass and discovers its outputs.
func (s *Splitter) segment(ctx context.Context, input, pattern string, duration float64) ([]string, error) {
	cmd := &ffmpeg.SegmentCommand{Input: input, Pattern: pattern, Duration: duration}
	if err := s.runner.Run(ctx, cmd); err != nil {
		return nil, err
	}
	return resolve.Segments(pattern)
}

// targetDuration estimates how many seconds of playback fit the byte budget
// at the file's own empirical throughput, floored at minSegmentSeconds.
func targetDuration(sizeBytes int64, duration float64, maxSizeBytes int64, safety float64) float64 {
	throughput := float64(sizeBytes) / duration
	target := float64(maxSizeBytes) / throughput * safety
	if target < minSegmentSeconds {
		return minSegmentSeconds
	}
	return target
}

func splitExt(path string) (base, ext string) {
	if idx := strings.LastIndex(path, "."); idx > 0 {
		return path[:idx], path[idx+1:]
	}
	return path, "mp4"
}
