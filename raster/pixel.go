package raster

import (
	"image/color"
	"math"
)

// Pixel holds four floating point channels, conventionally in [0, 1]. A is
// carried along but not used by any conversion.
type Pixel struct {
	R float64
	G float64
	B float64
	A float64
}

var PixelModel = color.ModelFunc(pixelConvert)

func pixelConvert(c color.Color) color.Color {
	if _, ok := c.(Pixel); ok {
		return c
	}

	r, g, b, a := c.RGBA()
	return Pixel{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}

func (p Pixel) RGBA() (uint32, uint32, uint32, uint32) {
	return toChannel(p.R), toChannel(p.G), toChannel(p.B), toChannel(p.A)
}

func toChannel(v float64) uint32 {
	return uint32(math.Round(clamp(v, 0, 1) * 0xffff))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
