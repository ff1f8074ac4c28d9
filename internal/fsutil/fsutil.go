// Package fsutil wraps the small set of filesystem operations the pipeline
// performs on produced media files: copy, move, delete, sizing, and
// collision-free naming.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSize returns the size of path in bytes, or an error if it does not
// exist or is not a regular file.
func FileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return fi.Size(), nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SameFile reports whether a and b resolve to the same existing file.
func SameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// CopyFile copies src to dst, creating dst's parent directory if needed and
// overwriting any existing file. Copying a file onto itself is refused:
// os.Create would truncate src before a single byte is read.
func CopyFile(src, dst string) error {
	if SameFile(src, dst) {
		return fmt.Errorf("%s and %s are the same file", src, dst)
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// MoveFile renames src to dst, falling back to copy+delete when rename fails
// (e.g. across filesystems). dst's parent directory is created if needed.
func MoveFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// UniqueName returns "{base}.{ext}" if free, otherwise the first
// "{base}_NNN.{ext}" (NNN from 001, widening past 999) that does not exist
// yet. It never returns an occupied name.
func UniqueName(base, ext string) string {
	candidate := base + "." + ext
	if !Exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		candidate = fmt.Sprintf("%s_%03d.%s", base, i, ext)
		if !Exists(candidate) {
			return candidate
		}
	}
}
