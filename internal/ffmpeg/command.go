package ffmpeg

import "strconv"

// Command is one atomic ffmpeg invocation.
type Command interface {
	// Kind names the operation for error messages ("clip", "segment", ...).
	Kind() string
	// Build returns the argument vector, excluding the binary itself.
	Build() []string
	// Output returns the path (or pattern) the command writes. The executor
	// creates its parent directory before invocation.
	Output() string
	// VerifyOutput reports whether Output is a concrete file whose existence
	// must be checked after a zero exit. Pattern outputs return false; their
	// discovery is the resolver's job.
	VerifyOutput() bool
}

// preparer is implemented by commands that must stage state on disk before
// the invocation (e.g. the concat manifest).
type preparer interface {
	prepare() error
}

// cleaner is implemented by commands that leave temporary state behind;
// cleanup runs regardless of the invocation's outcome.
type cleaner interface {
	cleanup()
}

// formatSeconds renders a duration or offset with millisecond precision,
// the granularity ffmpeg accepts for -ss/-to/-segment_time.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
