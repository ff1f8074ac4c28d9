package gifgen

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeThumb(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRenderGrid(t *testing.T) {
	dir := t.TempDir()
	var thumbs []string
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writeThumb(t, p, 640, 360)
		thumbs = append(thumbs, p)
	}

	out := filepath.Join(dir, "grid.png")
	if err := (ImagingRenderer{}).RenderGrid(thumbs, out, 2); err != nil {
		t.Fatalf("RenderGrid() error = %v", err)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open grid: %v", err)
	}
	// 2 columns, 3 rows, padded cells.
	wantW := 2*(gridCellWidth+gridPadding) + gridPadding
	wantH := 3*(gridCellHeight+gridPadding) + gridPadding
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Errorf("grid size = %dx%d, want %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), wantW, wantH)
	}
}

func TestRenderGrid_ColumnsClampedToCount(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "only.png")
	writeThumb(t, p, 320, 180)

	out := filepath.Join(dir, "grid.png")
	if err := (ImagingRenderer{}).RenderGrid([]string{p}, out, 6); err != nil {
		t.Fatalf("RenderGrid() error = %v", err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	wantW := gridCellWidth + 2*gridPadding
	if img.Bounds().Dx() != wantW {
		t.Errorf("grid width = %d, want %d (single column)", img.Bounds().Dx(), wantW)
	}
}

func TestRenderGrid_Empty(t *testing.T) {
	if err := (ImagingRenderer{}).RenderGrid(nil, "out.png", 3); err == nil {
		t.Fatal("RenderGrid() with no thumbnails: want error")
	}
}
