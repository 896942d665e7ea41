/*
Package pnm implements a decoder for the Netpbm pixel-map formats.

All six classic variants are understood: plain (ASCII) and raw (binary)
encodings of PBM bitmaps (P1/P4), PGM graymaps (P2/P5) and PPM pixmaps
(P3/P6). Samples are kept exactly as stored together with the header's
maximum value, so callers can recover the original intensities as
sample/maxval without a detour through 16-bit color.

Importing the package registers the formats with the image package.
*/
package pnm

import (
	"image"
	"image/color"
)

const (
	// MaxSamples is the largest number of samples (width * height * channels)
	// a single image may hold.
	MaxSamples = 1 << 28

	maxDimension = 1 << 24
	maxMaxVal    = 0xffff
)

// Image is a decoded pixel map. It implements image.Image.
type Image struct {
	// Samples holds Channels values per pixel in row-major order. The sample
	// for channel c of pixel (x, y) is at Samples[(y*Width+x)*Channels+c].
	Samples  []uint16
	Width    int
	Height   int
	Channels int
	// MaxVal is the value of full intensity.
	MaxVal int
}

func (m *Image) ColorModel() color.Model {
	if m.Channels == 1 {
		return color.Gray16Model
	}
	return color.RGBA64Model
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *Image) scale(s uint16) uint16 {
	return uint16(uint32(s) * 0xffff / uint32(m.MaxVal))
}

func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(m.Bounds()) {
		if m.Channels == 1 {
			return color.Gray16{}
		}
		return color.RGBA64{}
	}
	i := (y*m.Width + x) * m.Channels
	if m.Channels == 1 {
		return color.Gray16{Y: m.scale(m.Samples[i])}
	}
	return color.RGBA64{
		R: m.scale(m.Samples[i]),
		G: m.scale(m.Samples[i+1]),
		B: m.scale(m.Samples[i+2]),
		A: 0xffff,
	}
}

// Value returns channel c of pixel (x, y) as a fraction of MaxVal. Graymaps
// and bitmaps report the same value for every channel.
func (m *Image) Value(x, y, c int) float64 {
	i := (y*m.Width + x) * m.Channels
	if m.Channels > 1 {
		i += c
	}
	return float64(m.Samples[i]) / float64(m.MaxVal)
}

func init() {
	for _, f := range []struct{ name, magic string }{
		{"pbm", "P1"}, {"pgm", "P2"}, {"ppm", "P3"},
		{"pbm", "P4"}, {"pgm", "P5"}, {"ppm", "P6"},
	} {
		image.RegisterFormat(f.name, f.magic, Decode, DecodeConfig)
	}
}
