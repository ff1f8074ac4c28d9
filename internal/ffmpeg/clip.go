package ffmpeg

// ClipCommand cuts the [Start, End] window out of Input. The window flags
// precede -i so ffmpeg seeks on the input instead of decoding up to the
// start point; codecs are always explicit.
type ClipCommand struct {
	Input      string
	OutputPath string
	Start      float64
	End        float64
	VideoCodec string
	AudioCodec string
}

func (c *ClipCommand) Kind() string { return "clip" }

func (c *ClipCommand) Build() []string {
	return []string{
		"-y",
		"-ss", formatSeconds(c.Start),
		"-to", formatSeconds(c.End),
		"-i", c.Input,
		"-c:v", c.VideoCodec,
		"-c:a", c.AudioCodec,
		c.OutputPath,
	}
}

func (c *ClipCommand) Output() string     { return c.OutputPath }
func (c *ClipCommand) VerifyOutput() bool { return true }
