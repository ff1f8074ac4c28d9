package gifgen

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	gridCellWidth  = 320
	gridCellHeight = 180
	gridPadding    = 4
)

// ImagingRenderer lays thumbnails out on a dark contact sheet, each fitted
// into a fixed cell with its aspect ratio preserved.
type ImagingRenderer struct{}

func (ImagingRenderer) RenderGrid(thumbPaths []string, outputPath string, columns int) error {
	if len(thumbPaths) == 0 {
		return fmt.Errorf("no thumbnails to render")
	}
	if columns <= 0 {
		columns = 1
	}
	if columns > len(thumbPaths) {
		columns = len(thumbPaths)
	}
	rows := (len(thumbPaths) + columns - 1) / columns

	canvas := imaging.New(
		columns*(gridCellWidth+gridPadding)+gridPadding,
		rows*(gridCellHeight+gridPadding)+gridPadding,
		color.NRGBA{R: 24, G: 24, B: 24, A: 255},
	)

	for i, path := range thumbPaths {
		img, err := imaging.Open(path)
		if err != nil {
			return fmt.Errorf("open thumbnail %s: %w", path, err)
		}
		fitted := imaging.Fit(img, gridCellWidth, gridCellHeight, imaging.Lanczos)

		col := i % columns
		row := i / columns
		// Center the fitted image inside its cell.
		x := gridPadding + col*(gridCellWidth+gridPadding) + (gridCellWidth-fitted.Bounds().Dx())/2
		y := gridPadding + row*(gridCellHeight+gridPadding) + (gridCellHeight-fitted.Bounds().Dy())/2
		canvas = imaging.Paste(canvas, fitted, image.Pt(x, y))
	}

	return imaging.Save(canvas, outputPath)
}
