package gifgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/splitmaster/internal/ffmpeg"
	"github.com/backmassage/splitmaster/internal/probe"
)

// fakeRunner materializes every command's output and records the order of
// invocations by kind. Clip commands whose start appears in failStarts fail.
type fakeRunner struct {
	failStarts map[float64]bool
	kinds      []string
	gifCmd     *ffmpeg.GifCommand
}

func (f *fakeRunner) Run(_ context.Context, cmd ffmpeg.Command) error {
	f.kinds = append(f.kinds, cmd.Kind())
	if cc, ok := cmd.(*ffmpeg.ClipCommand); ok && f.failStarts[cc.Start] {
		return &ffmpeg.ToolError{Op: "clip", Stderr: "simulated failure"}
	}
	if gc, ok := cmd.(*ffmpeg.GifCommand); ok {
		f.gifCmd = gc
	}
	return os.WriteFile(cmd.Output(), []byte(cmd.Kind()), 0644)
}

type fakeProber struct {
	duration float64
}

func (f *fakeProber) Probe(_ context.Context, _ string) (*probe.MediaInfo, error) {
	if f.duration <= 0 {
		return &probe.MediaInfo{}, nil
	}
	d := f.duration
	return &probe.MediaInfo{Duration: &d}, nil
}

type fakeGrid struct {
	thumbs  []string
	columns int
	fail    bool
}

func (f *fakeGrid) RenderGrid(thumbPaths []string, outputPath string, columns int) error {
	if f.fail {
		return fmt.Errorf("simulated render failure")
	}
	f.thumbs = thumbPaths
	f.columns = columns
	return os.WriteFile(outputPath, []byte("grid"), 0644)
}

func baseOptions(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "source.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return Options{
		Source:       src,
		OutputName:   filepath.Join(dir, "out"),
		NumClips:     3,
		ClipDuration: 2,
		TimeGap:      5,
	}, dir
}

func TestSampleIntervals(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		numClips int
		clipDur  float64
		gap      float64
		want     []interval
	}{
		{
			name: "evenly spaced", total: 60, numClips: 3, clipDur: 2, gap: 5,
			want: []interval{{0, 2}, {7, 9}, {14, 16}},
		},
		{
			name: "truncated at end of file", total: 10, numClips: 5, clipDur: 3, gap: 1,
			want: []interval{{0, 3}, {4, 7}},
		},
		{
			name: "zero gap back to back", total: 6, numClips: 3, clipDur: 2, gap: 0,
			want: []interval{{0, 2}, {2, 4}, {4, 6}},
		},
		{
			name: "clip longer than file", total: 1, numClips: 2, clipDur: 5, gap: 0,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleIntervals(tt.total, tt.numClips, tt.clipDur, tt.gap)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("interval %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAutoSettings(t *testing.T) {
	tests := []struct {
		name        string
		duration    float64
		wantClipDur float64
	}{
		{"short video", 20, 1.0},
		{"medium video", 120, 2.0},
		{"long video", 3600, 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, clipDur, gap := AutoSettings(tt.duration)
			if n != 30 {
				t.Errorf("numClips = %d, want 30", n)
			}
			if clipDur != tt.wantClipDur {
				t.Errorf("clipDuration = %v, want %v", clipDur, tt.wantClipDur)
			}
			if gap < 0 {
				t.Errorf("timeGap = %v, want >= 0", gap)
			}
		})
	}
}

func TestCreateGif(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.Thumbnails = true
	runner := &fakeRunner{}
	c := New(runner, &fakeProber{duration: 60}, nil, nil)

	res, err := c.CreateGif(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateGif() error = %v", err)
	}

	if res.GifPath != opts.OutputName+".gif" {
		t.Errorf("GifPath = %s, want %s.gif", res.GifPath, opts.OutputName)
	}
	if _, err := os.Stat(res.GifPath); err != nil {
		t.Errorf("gif file missing: %v", err)
	}
	if len(res.Thumbnails) != 3 {
		t.Errorf("Thumbnails = %v, want 3", res.Thumbnails)
	}
	for _, th := range res.Thumbnails {
		if _, err := os.Stat(th); err != nil {
			t.Errorf("thumbnail missing: %v", err)
		}
	}
	if res.TotalDuration != 6 {
		t.Errorf("TotalDuration = %v, want 6", res.TotalDuration)
	}

	// Temporaries are cleaned up.
	if _, err := os.Stat(opts.OutputName + "_merged.mp4"); !os.IsNotExist(err) {
		t.Error("merged intermediate not removed")
	}
	for i := 1; i <= 3; i++ {
		clip := fmt.Sprintf("%s_clip_%03d.mp4", opts.OutputName, i)
		if _, err := os.Stat(clip); !os.IsNotExist(err) {
			t.Errorf("temporary clip not removed: %s", clip)
		}
	}
}

func TestCreateGif_HighQualityUsesPalette(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.HighQuality = true
	runner := &fakeRunner{}
	c := New(runner, &fakeProber{duration: 60}, nil, nil)

	if _, err := c.CreateGif(context.Background(), opts); err != nil {
		t.Fatalf("CreateGif() error = %v", err)
	}

	palIdx, gifIdx := -1, -1
	for i, k := range runner.kinds {
		switch k {
		case "palette":
			palIdx = i
		case "gif":
			gifIdx = i
		}
	}
	if palIdx == -1 || gifIdx == -1 || palIdx > gifIdx {
		t.Fatalf("invocation order = %v, want palette before gif", runner.kinds)
	}
	if runner.gifCmd.Palette == "" {
		t.Error("gif command did not reference the palette")
	}
	if _, err := os.Stat(opts.OutputName + "_palette.png"); !os.IsNotExist(err) {
		t.Error("palette not removed")
	}
}

func TestCreateGif_PartialClipFailure(t *testing.T) {
	opts, _ := baseOptions(t)
	// Second window starts at 7s with clipDur 2 and gap 5.
	runner := &fakeRunner{failStarts: map[float64]bool{7: true}}
	c := New(runner, &fakeProber{duration: 60}, nil, nil)

	res, err := c.CreateGif(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateGif() error = %v (one bad clip must not abort)", err)
	}
	if res.TotalDuration != 4 {
		t.Errorf("TotalDuration = %v, want 4 (two surviving clips)", res.TotalDuration)
	}
}

func TestCreateGif_AllClipsFail(t *testing.T) {
	opts, _ := baseOptions(t)
	runner := &fakeRunner{failStarts: map[float64]bool{0: true, 7: true, 14: true}}
	c := New(runner, &fakeProber{duration: 60}, nil, nil)

	if _, err := c.CreateGif(context.Background(), opts); err == nil {
		t.Fatal("CreateGif() with no surviving clips: want error")
	}
}

func TestCreateGif_Grid(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.Thumbnails = true
	opts.Grid = true
	opts.GridColumns = 2
	grid := &fakeGrid{}
	c := New(&fakeRunner{}, &fakeProber{duration: 60}, grid, nil)

	res, err := c.CreateGif(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateGif() error = %v", err)
	}
	if res.GridPath != opts.OutputName+"_grid.png" {
		t.Errorf("GridPath = %s", res.GridPath)
	}
	if grid.columns != 2 || len(grid.thumbs) != 3 {
		t.Errorf("renderer got %d thumbs, %d columns", len(grid.thumbs), grid.columns)
	}
}

func TestCreateGif_GridFailureIsNonFatal(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.Thumbnails = true
	opts.Grid = true
	c := New(&fakeRunner{}, &fakeProber{duration: 60}, &fakeGrid{fail: true}, nil)

	res, err := c.CreateGif(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateGif() error = %v (grid failure must not abort)", err)
	}
	if res.GridPath != "" {
		t.Errorf("GridPath = %s, want empty after render failure", res.GridPath)
	}
}

func TestCreateGif_NoRendererIgnoresGrid(t *testing.T) {
	opts, _ := baseOptions(t)
	opts.Thumbnails = true
	opts.Grid = true
	c := New(&fakeRunner{}, &fakeProber{duration: 60}, nil, nil)

	res, err := c.CreateGif(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateGif() error = %v", err)
	}
	if res.GridPath != "" {
		t.Errorf("GridPath = %s, want empty without a renderer", res.GridPath)
	}
}

func TestCreateGif_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"missing source", func(o *Options) { o.Source = "/nonexistent.mp4" }},
		{"empty output name", func(o *Options) { o.OutputName = "" }},
		{"zero clips", func(o *Options) { o.NumClips = 0 }},
		{"zero clip duration", func(o *Options) { o.ClipDuration = 0 }},
		{"negative gap", func(o *Options) { o.TimeGap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := baseOptions(t)
			tt.mutate(&opts)
			c := New(&fakeRunner{}, &fakeProber{duration: 60}, nil, nil)
			_, err := c.CreateGif(context.Background(), opts)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestCreateGif_UnknownDuration(t *testing.T) {
	opts, _ := baseOptions(t)
	c := New(&fakeRunner{}, &fakeProber{}, nil, nil)
	_, err := c.CreateGif(context.Background(), opts)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error = %v, want *ValidationError", err)
	}
}
