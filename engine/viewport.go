package engine

// Viewport is the top-left window of the grid that is ever drawn
// Grids larger than the display are truncated, never scaled or scrolled
type Viewport struct {
	Cols, Rows int

	// PixelW, PixelH are the window size for pixel surfaces, zero for cell surfaces
	PixelW, PixelH int
}

// Display describes the pixel area available to a pixel surface
type Display struct {
	Width, Height int

	// MarginW, MarginH are kept free below the display size
	MarginW, MarginH int
}

// Default display margins subtracted from the available area
const (
	DefaultMarginW = 50
	DefaultMarginH = 100
)

// CellViewport fits a grid onto a cell-addressed surface
func CellViewport(gridW, gridH, surfaceCols, surfaceRows int) Viewport {
	return Viewport{
		Cols: max(0, min(gridW, surfaceCols)),
		Rows: max(0, min(gridH, surfaceRows)),
	}
}

// FitViewport derives the window from glyph cell pixel size and grid dimensions,
// capped to the display minus margins
func FitViewport(gridW, gridH, cellW, cellH int, d Display) Viewport {
	if cellW <= 0 || cellH <= 0 {
		return Viewport{}
	}

	winW := gridW * cellW
	winH := gridH * cellH

	if maxW := d.Width - d.MarginW; d.Width > 0 && winW > maxW {
		winW = max(0, maxW)
	}
	if maxH := d.Height - d.MarginH; d.Height > 0 && winH > maxH {
		winH = max(0, maxH)
	}

	return Viewport{
		Cols:   min(gridW, winW/cellW),
		Rows:   min(gridH, winH/cellH),
		PixelW: winW,
		PixelH: winH,
	}
}

// Cells returns the number of cells inside the viewport
func (v Viewport) Cells() int {
	return v.Cols * v.Rows
}
