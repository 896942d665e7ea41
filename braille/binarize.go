// Package braille turns images into Unicode Braille text, one glyph per 2x4
// block of pixels.
package braille

import (
	"pixtext/parallel"
	"pixtext/raster"
)

// Luma weights.
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// Luma returns the weighted brightness of p. Alpha is ignored.
func Luma(p raster.Pixel) float64 {
	// The conversions keep the products from being fused.
	return float64(lumaR*p.R) + float64(lumaG*p.G) + float64(lumaB*p.B)
}

// Options control binarization.
type Options struct {
	// Threshold is the luma a pixel must exceed to be set.
	Threshold float64
	// Invert flips every pixel of the image. Padding is never set.
	Invert bool
}

var DefaultOptions = Options{Threshold: 0.5}

// Dot reports whether p becomes a raised dot.
func (o Options) Dot(p raster.Pixel) bool {
	return o.Invert != (Luma(p) > o.Threshold)
}

// Bitmap is a padded grid of dots.
type Bitmap struct {
	raster.Extents
	// Bits holds the dot at (x, y) at Bits[y*W+x].
	Bits []bool
}

func NewBitmap(e raster.Extents) *Bitmap {
	return &Bitmap{
		Extents: e,
		Bits:    make([]bool, e.W*e.H),
	}
}

func (b *Bitmap) At(x, y int) bool {
	return b.Bits[y*b.W+x]
}

func (b *Bitmap) Set(x, y int, v bool) {
	b.Bits[y*b.W+x] = v
}

// Binarize thresholds every pixel of img into a Bitmap padded to whole
// Braille cells. Rows are handed to each, which defaults to parallel.Serial.
func Binarize(img *raster.Image, o Options, each parallel.RangeFunc) *Bitmap {
	if each == nil {
		each = parallel.Serial
	}

	dimx, dimy := img.Dims()
	b := NewBitmap(raster.Pad(dimx, dimy))
	each(dimy, func(y int) {
		dst := b.Bits[y*b.W:]
		for x, p := range img.Row(y) {
			dst[x] = o.Dot(p)
		}
	})
	return b
}
