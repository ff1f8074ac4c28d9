// Package probe runs ffprobe against a media file and parses its JSON
// output into a MediaInfo descriptor. Each call spawns exactly one child
// process and reflects the file's current on-disk state; nothing is cached.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Prober wraps the ffprobe binary path.
type Prober struct {
	ffprobePath string
}

// New returns a Prober using the given ffprobe binary (empty means "ffprobe"
// on PATH).
func New(ffprobePath string) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{ffprobePath: ffprobePath}
}

// Probe runs a single ffprobe JSON call against path. The path is checked
// for existence before any process is spawned.
func (p *Prober) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Path: path, Err: err}
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		detail := ""
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			detail = strings.TrimSpace(string(ee.Stderr))
		}
		return nil, &Error{Kind: KindToolError, Path: path, Detail: detail, Err: err}
	}

	info, err := ParseJSON(out)
	if err != nil {
		return nil, &Error{Kind: KindMalformedOutput, Path: path, Err: err}
	}
	info.SizeBytes = fi.Size()
	return info, nil
}

// ParseJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return buildInfo(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// --- Conversion from wire types to the domain type ---

// buildInfo takes the first video stream for codec and dimensions and the
// first audio stream for its codec; later streams are ignored.
func buildInfo(raw *ffprobeOutput) *MediaInfo {
	info := &MediaInfo{
		FormatName: raw.Format.FormatName,
		Duration:   parseOptFloat(raw.Format.Duration),
		BitRate:    parseOptInt64(raw.Format.BitRate),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		}
	}
	return info
}

// ffprobe reports numbers as strings; missing or non-numeric values map to
// nil, never zero.

func parseOptFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseOptInt64(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
