package splitter

import (
	"errors"
	"fmt"
)

// Request describes one size-constrained split.
type Request struct {
	// Source is the input file path.
	Source string
	// OutputName is the output stem, optionally including a directory.
	OutputName string
	// OutputExt is the output extension without a dot.
	OutputExt string
	// MaxSizeBytes is the per-piece size budget; must be positive.
	MaxSizeBytes int64
	// SafetyFactor biases the estimated segment duration downward to absorb
	// muxing overhead and bitrate variance; must be in (0, 1].
	SafetyFactor float64
	// MaxRounds bounds how often a still-oversized piece is re-split before
	// being surrendered to the oversized list; must be >= 0.
	MaxRounds int
}

// Outcome reports what a split produced. Accepted and Oversized are sorted,
// disjoint, and all present on disk at return time. Copied is set when the
// source already fit the budget and was copied to the canonical name
// without probing or cutting.
type Outcome struct {
	Accepted  []string
	Oversized []string
	Copied    bool
}

// ValidationError is a rejected request; nothing was spawned or written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid split request: " + e.Reason
}

// ErrDurationUnknown is returned when the source must be cut but its
// duration could not be probed, leaving nothing to estimate a schedule from.
var ErrDurationUnknown = errors.New("cannot determine video duration")

func validate(req *Request) error {
	if req.Source == "" {
		return &ValidationError{Reason: "source path is empty"}
	}
	if req.MaxSizeBytes <= 0 {
		return &ValidationError{Reason: "max size must be greater than 0"}
	}
	if req.OutputName == "" {
		return &ValidationError{Reason: "output name is empty"}
	}
	if req.OutputExt == "" {
		return &ValidationError{Reason: "output extension is empty"}
	}
	if req.SafetyFactor <= 0 || req.SafetyFactor > 1 {
		return &ValidationError{Reason: fmt.Sprintf("safety factor %v outside (0, 1]", req.SafetyFactor)}
	}
	if req.MaxRounds < 0 {
		return &ValidationError{Reason: "max rounds must not be negative"}
	}
	return nil
}
