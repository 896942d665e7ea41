/*
Package raster holds the floating point image the converters work on and the
geometry shared by the block encoders.
*/
package raster

import (
	"errors"
	"image"
	"image/color"

	"pixtext/pnm"
)

// MaxPixels bounds the size of a single Image.
const MaxPixels = 1 << 26

// ErrTooLarge is returned when an image would exceed MaxPixels.
var ErrTooLarge = errors.New("raster: image too large")

type Image struct {
	// Pix holds the image's pixels. The pixel at (x, y) is at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)].
	Pix []Pixel
	// Stride is the Pix stride (in pixels) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func New(w, h int) (*Image, error) {
	if w < 1 || h < 1 {
		return nil, errors.New("raster: empty image")
	}
	if w > MaxPixels/h {
		return nil, ErrTooLarge
	}
	return &Image{
		Pix:    make([]Pixel, w*h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// Dims returns the width and height of the image.
func (p *Image) Dims() (int, int) {
	return p.Rect.Dx(), p.Rect.Dy()
}

func (p *Image) ColorModel() color.Model {
	return PixelModel
}

func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *Image) At(x, y int) color.Color {
	return p.PixelAt(x, y)
}

func (p *Image) PixelAt(x, y int) Pixel {
	if !(image.Point{x, y}).In(p.Rect) {
		return Pixel{}
	}
	return p.Pix[p.PixOffset(x, y)]
}

func (p *Image) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, pixelConvert(c).(Pixel))
}

func (p *Image) SetPixel(x, y int, c Pixel) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = c
}

// Row returns the pixels of row y, relative to the top of the image.
func (p *Image) Row(y int) []Pixel {
	i := y * p.Stride
	return p.Pix[i : i+p.Rect.Dx()]
}

// FromImage copies m into a new Image whose bounds start at the origin.
//
// Pixel maps keep their exact sample/maxval intensities; everything else goes
// through PixelModel.
func FromImage(m image.Image) (*Image, error) {
	b := m.Bounds()
	dst, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	switch src := m.(type) {
	case *Image:
		for y := range b.Dy() {
			copy(dst.Row(y), src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	case *pnm.Image:
		for y := range b.Dy() {
			row := dst.Row(y)
			for x := range row {
				row[x] = Pixel{
					R: src.Value(x, y, 0),
					G: src.Value(x, y, 1),
					B: src.Value(x, y, 2),
					A: 1,
				}
			}
		}
	default:
		for y := range b.Dy() {
			row := dst.Row(y)
			for x := range row {
				row[x] = pixelConvert(m.At(b.Min.X+x, b.Min.Y+y)).(Pixel)
			}
		}
	}

	return dst, nil
}
