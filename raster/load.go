package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "pixtext/pnm"
)

// ErrInput is returned when the input stream is not a readable image.
var ErrInput = errors.New("raster: unreadable input")

// Decode reads a whole image from r. Pixel maps are recognized along with
// every format registered with the image package.
func Decode(r io.Reader) (image.Image, string, error) {
	img, kind, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	return img, kind, nil
}

// Load decodes r and converts the result to an Image.
func Load(r io.Reader) (*Image, error) {
	img, _, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}
