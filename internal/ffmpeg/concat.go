package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ConcatCommand stream-copies the ordered Inputs into one output via the
// concat demuxer. The manifest (one quoted, escaped path per line) is
// written next to the output before the invocation and removed afterwards
// whatever the outcome.
type ConcatCommand struct {
	Inputs     []string
	OutputPath string

	manifestPath string
}

func (c *ConcatCommand) Kind() string { return "concat" }

func (c *ConcatCommand) prepare() error {
	dir := filepath.Dir(c.OutputPath)
	c.manifestPath = filepath.Join(dir, fmt.Sprintf(".concat_%s.txt", uuid.NewString()[:8]))

	var sb strings.Builder
	for _, in := range c.Inputs {
		escaped := strings.ReplaceAll(in, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		fmt.Fprintf(&sb, "file '%s'\n", escaped)
	}
	return os.WriteFile(c.manifestPath, []byte(sb.String()), 0644)
}

func (c *ConcatCommand) cleanup() {
	if c.manifestPath != "" {
		os.Remove(c.manifestPath)
	}
}

func (c *ConcatCommand) Build() []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", c.manifestPath,
		"-c", "copy",
		c.OutputPath,
	}
}

func (c *ConcatCommand) Output() string     { return c.OutputPath }
func (c *ConcatCommand) VerifyOutput() bool { return true }
