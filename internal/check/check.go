// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/splitmaster/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints tool availability and
// versions, and smoke-tests the segment muxer, concat demuxer, and GIF
// encoder. Informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, cfg.FfmpegPath, "ffmpeg")
	checkTool(log, cfg.FfprobePath, "ffprobe")
	checkSegmentMuxer(cfg, log)
	checkConcatDemuxer(cfg, log)
	checkGifEncoder(cfg, log)
}

// checkTool verifies the tool is reachable and logs its version string.
func checkTool(log Logger, path, name string) {
	if _, err := exec.LookPath(path); err != nil {
		log.Error("%s not found (%s)", name, path)
		return
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
}

// checkSegmentMuxer verifies the segment muxer used for size splitting.
func checkSegmentMuxer(cfg *config.Config, log Logger) {
	if hasFormat(cfg.FfmpegPath, "-muxers", "segment") {
		log.Success("segment muxer available")
	} else {
		log.Error("segment muxer missing (size splitting will fail)")
	}
}

// checkConcatDemuxer verifies the concat demuxer used for clip merging.
func checkConcatDemuxer(cfg *config.Config, log Logger) {
	if hasFormat(cfg.FfmpegPath, "-demuxers", "concat") {
		log.Success("concat demuxer available")
	} else {
		log.Error("concat demuxer missing (clip merging will fail)")
	}
}

// checkGifEncoder runs a minimal GIF encode.
func checkGifEncoder(cfg *config.Config, log Logger) {
	log.Info("Testing GIF encoder...")
	if runSilent(cfg.FfmpegPath,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-vf", "fps=5",
		"-f", "gif", "-",
	) {
		log.Success("GIF encoder works")
	} else {
		log.Error("GIF encoder test failed")
	}
}

// CheckDeps is the pre-run validation: it verifies that the configured
// ffmpeg and ffprobe binaries are reachable. Returns a sentinel error on
// failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FfmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FfprobePath); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// --- internal helpers ---

// hasFormat greps the tool's -muxers/-demuxers listing for a format name.
func hasFormat(tool, listFlag, name string) bool {
	out, err := exec.Command(tool, "-hide_banner", listFlag).Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// Listing format: flags column, then one or more format names.
		for _, f := range strings.Split(fields[1], ",") {
			if f == name {
				return true
			}
		}
	}
	return false
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
