package palette

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// Adaptive derives a palette from img with median cut quantization. When the
// image has fewer than Size distinct colors the remaining entries are taken
// from Default.
func Adaptive(img image.Image) Palette {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, Size), img)

	p := Default
	for i, c := range pal {
		if i == Size {
			break
		}
		p[i] = toPixel(c)
	}
	return p
}
