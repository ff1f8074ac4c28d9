package ffmpeg

import "strconv"

// PaletteCommand generates a 256-color palette PNG from Input, used for
// high-quality GIF encoding. Filters is the fps/scale chain shared with the
// GIF pass so the palette is sampled from the frames that will be encoded.
type PaletteCommand struct {
	Input      string
	OutputPath string
	Filters    string
}

func (c *PaletteCommand) Kind() string { return "palette" }

func (c *PaletteCommand) Build() []string {
	return []string{
		"-y",
		"-i", c.Input,
		"-vf", c.Filters + ",palettegen",
		c.OutputPath,
	}
}

func (c *PaletteCommand) Output() string     { return c.OutputPath }
func (c *PaletteCommand) VerifyOutput() bool { return true }

// GifCommand encodes Input as a looping GIF. When Palette is set the
// paletteuse filter consumes it as a second input; otherwise ffmpeg's
// default dithering applies.
type GifCommand struct {
	Input      string
	OutputPath string
	Palette    string
	Filters    string
	LoopCount  int
}

func (c *GifCommand) Kind() string { return "gif" }

func (c *GifCommand) Build() []string {
	args := []string{"-y", "-i", c.Input}
	if c.Palette != "" {
		args = append(args,
			"-i", c.Palette,
			"-lavfi", c.Filters+" [x]; [x][1:v] paletteuse",
		)
	} else {
		args = append(args, "-vf", c.Filters)
	}
	args = append(args, "-loop", strconv.Itoa(c.LoopCount), c.OutputPath)
	return args
}

func (c *GifCommand) Output() string     { return c.OutputPath }
func (c *GifCommand) VerifyOutput() bool { return true }

// FrameCommand extracts the first frame of Input as a still image.
type FrameCommand struct {
	Input      string
	OutputPath string
}

func (c *FrameCommand) Kind() string { return "frame" }

func (c *FrameCommand) Build() []string {
	return []string{
		"-y",
		"-i", c.Input,
		"-vframes", "1",
		"-q:v", "2",
		c.OutputPath,
	}
}

func (c *FrameCommand) Output() string     { return c.OutputPath }
func (c *FrameCommand) VerifyOutput() bool { return true }
