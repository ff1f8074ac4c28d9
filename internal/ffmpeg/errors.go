package ffmpeg

import "fmt"

// ToolError is a failed ffmpeg invocation: non-zero exit, or a zero exit
// that did not produce the expected output file. Stderr is preserved
// verbatim for the caller.
type ToolError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("ffmpeg %s failed", e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }
