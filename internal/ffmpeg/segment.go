package ffmpeg

// SegmentCommand stream-copies Input into fixed-duration pieces named by
// Pattern (a printf-style zero-padded counter, e.g. "out_%03d.mp4"). Each
// piece's timestamp base is reset to zero so segments play standalone.
type SegmentCommand struct {
	Input    string
	Pattern  string
	Duration float64
}

func (c *SegmentCommand) Kind() string { return "segment" }

func (c *SegmentCommand) Build() []string {
	return []string{
		"-y",
		"-i", c.Input,
		"-c", "copy",
		"-map", "0",
		"-f", "segment",
		"-segment_time", formatSeconds(c.Duration),
		"-reset_timestamps", "1",
		c.Pattern,
	}
}

func (c *SegmentCommand) Output() string { return c.Pattern }

// The produced files are discovered by the resolver, not checked here.
func (c *SegmentCommand) VerifyOutput() bool { return false }
