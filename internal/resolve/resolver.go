// Package resolve discovers which files an ffmpeg segment invocation
// actually produced. ffmpeg's own pattern expansion is not observable and
// shell globbing is not portable, so discovery degrades through three tiers
// instead of assuming any single mechanism works: glob, then a fixed-width
// digit regex over the directory, then a prefix/suffix decomposition that
// accepts any all-digit counter. The first tier with results wins; later
// tiers carry a higher false-positive risk and only run when earlier ones
// find nothing.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var placeholderRe = regexp.MustCompile(`%0(\d+)d`)

// Segments returns the existing files matching pattern, which must contain
// exactly one fixed-width numeric placeholder (e.g. "clip_%03d.mp4").
// Results are sorted lexicographically, which equals numeric order for
// zero-padded counters.
func Segments(pattern string) ([]string, error) {
	matches := placeholderRe.FindAllStringSubmatch(pattern, -1)
	if len(matches) != 1 {
		return nil, fmt.Errorf("pattern %q must contain exactly one %%0Nd placeholder", pattern)
	}
	width, err := strconv.Atoi(matches[0][1])
	if err != nil || width <= 0 {
		return nil, fmt.Errorf("pattern %q has invalid placeholder width", pattern)
	}
	placeholder := matches[0][0]

	for _, tier := range []func(string, string, int) []string{byGlob, byRegex, byDecomposition} {
		if files := tier(pattern, placeholder, width); len(files) > 0 {
			sort.Strings(files)
			return files, nil
		}
	}
	return nil, nil
}

// byGlob replaces the placeholder with a wildcard and lists matches.
func byGlob(pattern, placeholder string, _ int) []string {
	glob := strings.Replace(pattern, placeholder, "*", 1)
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil
	}
	return onlyFiles(files)
}

// byRegex escapes the pattern's literal parts, swaps the placeholder for a
// fixed-width digit class, and matches every directory entry against it.
func byRegex(pattern, placeholder string, width int) []string {
	dir, base, ok := splitPattern(pattern, placeholder)
	if !ok {
		return nil
	}

	idx := strings.Index(base, placeholder)
	expr := "^" + regexp.QuoteMeta(base[:idx]) +
		fmt.Sprintf(`\d{%d}`, width) +
		regexp.QuoteMeta(base[idx+len(placeholder):]) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}

	return matchDir(dir, func(name string) bool { return re.MatchString(name) })
}

// byDecomposition splits the pattern into prefix and suffix around the
// placeholder and accepts any entry whose middle substring is all digits.
// Loosest tier: it ignores the counter width entirely.
func byDecomposition(pattern, placeholder string, _ int) []string {
	dir, base, ok := splitPattern(pattern, placeholder)
	if !ok {
		return nil
	}

	idx := strings.Index(base, placeholder)
	prefix, suffix := base[:idx], base[idx+len(placeholder):]

	return matchDir(dir, func(name string) bool {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			return false
		}
		middle := name[len(prefix) : len(name)-len(suffix)]
		if middle == "" {
			return false
		}
		for _, r := range middle {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}

// splitPattern separates directory and basename and rejects patterns whose
// placeholder sits in the directory part.
func splitPattern(pattern, placeholder string) (dir, base string, ok bool) {
	dir = filepath.Dir(pattern)
	base = filepath.Base(pattern)
	if !strings.Contains(base, placeholder) {
		return "", "", false
	}
	return dir, base, true
}

func matchDir(dir string, accept func(string) bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if accept(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files
}

func onlyFiles(paths []string) []string {
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		files = append(files, p)
	}
	return files
}
