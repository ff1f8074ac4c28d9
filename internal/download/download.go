// Package download fetches remote media by stream-copying it through the
// external tool, so HLS playlists and plain HTTP files land as a single
// local file without re-encoding.
package download

import (
	"context"
	"fmt"
	"net/url"

	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/fsutil"
)

// Request describes one fetch.
type Request struct {
	URL        string
	OutputName string
	OutputExt  string
	Overwrite  bool // false: pick a unique name instead of clobbering
}

// ValidationError is a rejected request; nothing was spawned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid download request: " + e.Reason
}

// Downloader drives the external tool for remote fetches.
type Downloader struct {
	runner ffmpeg.Invoker
}

// New returns a Downloader.
func New(runner ffmpeg.Invoker) *Downloader {
	return &Downloader{runner: runner}
}

// Fetch validates the request and downloads the source. It returns the path
// actually written, which differs from the requested name when Overwrite is
// false and the name was taken.
func (d *Downloader) Fetch(ctx context.Context, req Request) (string, error) {
	if err := validate(&req); err != nil {
		return "", err
	}

	output := req.OutputName + "." + req.OutputExt
	if !req.Overwrite {
		output = fsutil.UniqueName(req.OutputName, req.OutputExt)
	}

	cmd := &ffmpeg.DownloadCommand{URL: req.URL, OutputPath: output}
	if err := d.runner.Run(ctx, cmd); err != nil {
		return "", err
	}
	return output, nil
}

func validate(req *Request) error {
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Reason: fmt.Sprintf("URL must be http(s): %q", req.URL)}
	}
	if u.Host == "" {
		return &ValidationError{Reason: fmt.Sprintf("URL has no host: %q", req.URL)}
	}
	if req.OutputName == "" {
		return &ValidationError{Reason: "output name is empty"}
	}
	if req.OutputExt == "" {
		return &ValidationError{Reason: "output extension is empty"}
	}
	return nil
}
