package glyph

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/glyph-reveal/geometry"
)

// Conversion defaults
const (
	DefaultWidth       = 250
	DefaultContrast    = 1.8
	DefaultSharpness   = 1.5
	DefaultGlyphAspect = 0.5 // glyph width / height, terminal cells are ~2:1
)

// Options tunes a conversion
type Options struct {
	// Width is the output width in glyphs; height is always derived
	Width int

	Ramp Ramp

	// Contrast and Sharpness are enhancement factors, 1.0 leaves the image untouched
	Contrast  float64
	Sharpness float64

	// GlyphAspect is the rendering glyph's width-to-height ratio
	GlyphAspect float64
}

// DefaultOptions returns the stock high-contrast conversion settings
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Ramp:        RampExtended,
		Contrast:    DefaultContrast,
		Sharpness:   DefaultSharpness,
		GlyphAspect: DefaultGlyphAspect,
	}
}

// Validate checks option ranges
func (o Options) Validate() error {
	switch {
	case o.Width <= 0:
		return fmt.Errorf("width must be positive, got %d", o.Width)
	case o.Contrast <= 0:
		return fmt.Errorf("contrast factor must be positive, got %v", o.Contrast)
	case o.Sharpness < 0:
		return fmt.Errorf("sharpness factor must be non-negative, got %v", o.Sharpness)
	case o.GlyphAspect <= 0:
		return fmt.Errorf("glyph aspect must be positive, got %v", o.GlyphAspect)
	case o.Ramp.Len() < 2:
		return fmt.Errorf("glyph ramp %s is too short", o.Ramp)
	}
	return nil
}

// Converter turns images into glyph grids
// Stateless apart from the shared geometry cache; safe for concurrent use
type Converter struct {
	opts   Options
	fields *geometry.Cache
}

// NewConverter validates options and binds a geometry cache
// A nil cache gets a private one
func NewConverter(opts Options, fields *geometry.Cache) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("converter options: %w", err)
	}
	if fields == nil {
		fields = geometry.NewCache()
	}
	return &Converter{opts: opts, fields: fields}, nil
}

// Options returns the converter's settings
func (c *Converter) Options() Options {
	return c.opts
}

// OutputSize returns the grid dimensions for a source image of srcW x srcH
func OutputSize(srcW, srcH, width int, glyphAspect float64) (int, int) {
	h := int(math.Round(float64(width) * (float64(srcH) / float64(srcW)) * glyphAspect))
	if h < 1 {
		h = 1
	}
	return width, h
}

// Convert decodes src and quantizes it into a glyph grid
// Decode failures are returned as *LoadError
func (c *Converter) Convert(ctx context.Context, src Source) (*Grid, error) {
	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.ConvertImage(ctx, img)
}

// ConvertImage quantizes an already-decoded image
func (c *Converter) ConvertImage(ctx context.Context, img image.Image) (*Grid, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Source: "<image>", Err: ErrEmptyImage}
	}

	outW, outH := OutputSize(b.Dx(), b.Dy(), c.opts.Width, c.opts.GlyphAspect)

	gray := c.prepare(img, outW, outH)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cells := make([][]rune, outH)
	backing := make([]rune, outW*outH)
	for y := 0; y < outH; y++ {
		cells[y] = backing[y*outW : (y+1)*outW : (y+1)*outW]
		row := gray.Pix[y*gray.Stride : y*gray.Stride+outW]
		for x, lum := range row {
			cells[y][x] = c.opts.Ramp.Glyph(lum)
		}
	}

	fields, err := c.fields.Get(outW, outH)
	if err != nil {
		return nil, fmt.Errorf("geometry fields: %w", err)
	}

	log.Printf("glyph: converted %dx%d image to %dx%d grid (%s ramp)", b.Dx(), b.Dy(), outW, outH, c.opts.Ramp)

	return &Grid{
		Width:  outW,
		Height: outH,
		Cells:  cells,
		Ramp:   c.opts.Ramp,
		Fields: fields,
	}, nil
}

// prepare runs luminance, enhancement and resampling as one filter chain
func (c *Converter) prepare(img image.Image, outW, outH int) *image.Gray {
	g := gift.New(gift.Grayscale())

	if c.opts.Contrast != 1 {
		g.Add(gift.Contrast(contrastPercent(c.opts.Contrast)))
	}

	switch {
	case c.opts.Sharpness > 1:
		g.Add(gift.UnsharpMask(1.0, float32(c.opts.Sharpness-1), 0))
	case c.opts.Sharpness < 1:
		g.Add(gift.GaussianBlur(float32(1 - c.opts.Sharpness)))
	}

	g.Add(gift.Resize(outW, outH, gift.LanczosResampling))

	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// contrastPercent maps a linear factor around mid-gray onto gift's percentage
// gift scales by 1+pct/100 when reducing but by 1/(1-pct/100) when boosting
func contrastPercent(factor float64) float32 {
	if factor >= 1 {
		return float32((1 - 1/factor) * 100)
	}
	return float32((factor - 1) * 100)
}

func decode(src Source) (image.Image, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Source: src.Name(), Err: ErrEmptyImage}
	}
	return img, nil
}

// IsLoadError reports whether err is or wraps a *LoadError
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
