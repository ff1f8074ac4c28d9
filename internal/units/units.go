// Package units parses and formats the human-facing quantities used across
// task files and CLI flags: byte sizes ("2GB", "500MB"), timecodes
// ("1:23:45", "90.5"), and their display forms.
package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRe = regexp.MustCompile(`^([0-9]*\.?[0-9]+)(GB?|MB?|KB?|B?)$`)

var sizeMultipliers = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1024,
	"KB": 1024,
	"M":  1024 * 1024,
	"MB": 1024 * 1024,
	"G":  1024 * 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// ParseSize converts a size string to bytes. Accepts a plain byte count
// ("2000000") or a value with a binary unit suffix ("2GB", "500M", "1.5 GB");
// case and internal spaces are ignored.
func ParseSize(s string) (int64, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if cleaned == "" {
		return 0, fmt.Errorf("empty size string")
	}

	m := sizeRe.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	return int64(value * float64(sizeMultipliers[m[2]])), nil
}

// ParseTimecode converts a timecode string to seconds. Accepts plain seconds
// ("90", "90.5"), MM:SS, or HH:MM:SS.
func ParseTimecode(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	if !strings.Contains(s, ":") {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timecode: %q", s)
		}
		return secs, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timecode: %q", s)
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timecode: %q", s)
		}
		total = total*60 + v
	}
	return total, nil
}

// FormatDuration renders seconds as HH:MM:SS, clamping negatives to zero.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// NormalizeExtension strips a leading dot and lowercases the extension.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}
