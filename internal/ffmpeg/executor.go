package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Invoker runs a Command to completion. Satisfied by *Executor; callers that
// need deterministic tests substitute their own implementation.
type Invoker interface {
	Run(ctx context.Context, cmd Command) error
}

// Executor runs commands against a concrete ffmpeg binary. The zero value is
// not usable; construct with NewExecutor.
type Executor struct {
	ffmpegPath string
}

// NewExecutor returns an Executor using the given ffmpeg binary (empty means
// "ffmpeg" on PATH).
func NewExecutor(ffmpegPath string) *Executor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Executor{ffmpegPath: ffmpegPath}
}

// Run executes cmd and blocks until the child process exits. The output's
// parent directory is created first; stderr is captured and folded into any
// returned *ToolError. Temporary state staged by the command is cleaned up
// regardless of outcome.
func (e *Executor) Run(ctx context.Context, cmd Command) error {
	if dir := filepath.Dir(cmd.Output()); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ToolError{Op: cmd.Kind(), Err: err}
		}
	}

	if p, ok := cmd.(preparer); ok {
		if err := p.prepare(); err != nil {
			return &ToolError{Op: cmd.Kind(), Err: err}
		}
	}
	if c, ok := cmd.(cleaner); ok {
		defer c.cleanup()
	}

	args := cmd.Build()
	proc := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderrBuf bytes.Buffer
	proc.Stderr = &stderrBuf

	if err := proc.Run(); err != nil {
		return &ToolError{
			Op:     cmd.Kind(),
			Stderr: strings.TrimSpace(stderrBuf.String()),
			Err:    err,
		}
	}

	if cmd.VerifyOutput() {
		if _, err := os.Stat(cmd.Output()); err != nil {
			return &ToolError{
				Op:     cmd.Kind(),
				Stderr: strings.TrimSpace(stderrBuf.String()),
				Err:    fmt.Errorf("output file was not created: %s", cmd.Output()),
			}
		}
	}
	return nil
}
