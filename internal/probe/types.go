package probe

import "fmt"

// MediaInfo is the parsed result of a single ffprobe call. Duration and
// BitRate are nil when the container metadata omits them or reports a
// non-numeric value; string fields are empty and dimensions zero when the
// corresponding stream is absent.
type MediaInfo struct {
	Duration   *float64
	VideoCodec string
	AudioCodec string
	FormatName string
	SizeBytes  int64
	Width      int
	Height     int
	BitRate    *int64
}

// HasDuration reports whether a positive duration was probed.
func (m *MediaInfo) HasDuration() bool {
	return m.Duration != nil && *m.Duration > 0
}

// ErrorKind classifies probe failures.
type ErrorKind int

const (
	// KindNotFound: the path did not exist before invocation.
	KindNotFound ErrorKind = iota
	// KindToolError: ffprobe exited non-zero.
	KindToolError
	// KindMalformedOutput: ffprobe output could not be parsed.
	KindMalformedOutput
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindToolError:
		return "tool error"
	case KindMalformedOutput:
		return "malformed output"
	}
	return "unknown"
}

// Error is a probe failure with its classification and, for tool errors,
// the diagnostic stream verbatim.
type Error struct {
	Kind   ErrorKind
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("probe %s: %s: %s", e.Path, e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("probe %s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }
