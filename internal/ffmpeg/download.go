package ffmpeg

// DownloadCommand stream-copies a remote source (HTTP/HLS URL) to a local
// file without re-encoding.
type DownloadCommand struct {
	URL        string
	OutputPath string
}

func (c *DownloadCommand) Kind() string { return "download" }

func (c *DownloadCommand) Build() []string {
	return []string{
		"-y",
		"-i", c.URL,
		"-c", "copy",
		c.OutputPath,
	}
}

func (c *DownloadCommand) Output() string     { return c.OutputPath }
func (c *DownloadCommand) VerifyOutput() bool { return true }
