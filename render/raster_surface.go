package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/glyph-reveal/engine"
)

// Raster defaults
const (
	DefaultFontSize = 10.0
	DefaultDPI      = 72.0
)

// RasterOptions configures a RasterSurface
type RasterOptions struct {
	FontSize float64
	DPI      float64

	// Display caps the window; zero Width/Height means unbounded
	Display engine.Display
}

// DefaultRasterOptions returns a 10pt monospace face on a 1920x1080 display with standard margins
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		FontSize: DefaultFontSize,
		DPI:      DefaultDPI,
		Display: engine.Display{
			Width:   1920,
			Height:  1080,
			MarginW: engine.DefaultMarginW,
			MarginH: engine.DefaultMarginH,
		},
	}
}

// RasterSurface paints frames into an RGBA image using pre-rasterized glyph masks
// Not safe for concurrent use
type RasterSurface struct {
	face   font.Face
	cellW  int
	cellH  int
	ascent int

	view engine.Viewport
	img  *image.RGBA
	bg   *image.Uniform
	fg   *image.Uniform

	masks map[rune]*image.Alpha

	// OnShow, when set, receives the frame after each Show; the image is reused between frames
	OnShow func(*image.RGBA)

	shown int
}

// NewRasterSurface sizes a window for a gridW x gridH grid from the glyph cell pixel size
func NewRasterSurface(gridW, gridH int, opts RasterOptions) (*RasterSurface, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}

	parsed, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse monospace font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}

	adv, ok := face.GlyphAdvance('A')
	if !ok {
		face.Close()
		return nil, fmt.Errorf("font has no advance for 'A'")
	}
	m := face.Metrics()

	s := &RasterSurface{
		face:   face,
		cellW:  adv.Ceil(),
		cellH:  m.Height.Ceil(),
		ascent: m.Ascent.Ceil(),
		bg:     image.NewUniform(color.RGBA{A: 0xff}),
		fg:     image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		masks:  make(map[rune]*image.Alpha),
	}

	s.view = engine.FitViewport(gridW, gridH, s.cellW, s.cellH, opts.Display)
	s.img = image.NewRGBA(image.Rect(0, 0, s.view.PixelW, s.view.PixelH))
	return s, nil
}

// CellSize returns the glyph cell size in pixels
func (s *RasterSurface) CellSize() (int, int) {
	return s.cellW, s.cellH
}

// Viewport returns the window fitted at construction
func (s *RasterSurface) Viewport() engine.Viewport {
	return s.view
}

// Prepare rasterizes each present rune once into a cell-sized alpha mask
func (s *RasterSurface) Prepare(runes []rune, fg engine.RGB) error {
	s.fg = image.NewUniform(color.RGBA{R: fg.R, G: fg.G, B: fg.B, A: 0xff})
	s.masks = make(map[rune]*image.Alpha, len(runes))

	for _, r := range runes {
		mask := image.NewAlpha(image.Rect(0, 0, s.cellW, s.cellH))
		d := &font.Drawer{
			Dst:  mask,
			Src:  image.Opaque,
			Face: s.face,
			Dot:  fixed.P(0, s.ascent),
		}
		d.DrawString(string(r))
		s.masks[r] = mask
	}
	return nil
}

// CacheSize returns the number of cached glyph masks
func (s *RasterSurface) CacheSize() int {
	return len(s.masks)
}

func (s *RasterSurface) Size() (int, int) {
	return s.view.Cols, s.view.Rows
}

func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), s.bg, image.Point{}, draw.Src)
}

// DrawGlyph composites the cached mask for r at cell (x, y) in the run color
func (s *RasterSurface) DrawGlyph(x, y int, r rune) {
	mask, ok := s.masks[r]
	if !ok {
		return
	}
	dst := image.Rect(x*s.cellW, y*s.cellH, (x+1)*s.cellW, (y+1)*s.cellH)
	draw.DrawMask(s.img, dst, s.fg, image.Point{}, mask, image.Point{}, draw.Over)
}

func (s *RasterSurface) Show() {
	s.shown++
	if s.OnShow != nil {
		s.OnShow(s.img)
	}
}

// Frame returns the current frame buffer
func (s *RasterSurface) Frame() *image.RGBA {
	return s.img
}

// Shown returns how many frames have been presented
func (s *RasterSurface) Shown() int {
	return s.shown
}

// WritePNG encodes the current frame
func (s *RasterSurface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// Close releases the font face
func (s *RasterSurface) Close() error {
	return s.face.Close()
}
