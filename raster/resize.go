package raster

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img to width by height pixels. A zero dimension is derived
// from the other one so the aspect ratio is kept; when both are zero, or the
// size already matches, img is returned unchanged.
func Resize(logger *slog.Logger, img image.Image, width, height int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	if width <= 0 && height <= 0 {
		return img
	}

	destWidth := float64(width)
	destHeight := float64(height)
	switch {
	case width <= 0:
		destWidth = math.Max(1, math.Round(destHeight*srcWidth/srcHeight))
	case height <= 0:
		destHeight = math.Max(1, math.Round(destWidth*srcHeight/srcWidth))
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img
	}

	logger.Debug("resizing", "from", srcBounds.Size(), "width", int(destWidth), "height", int(destHeight))
	destBounds := image.Rect(0, 0, int(destWidth), int(destHeight))
	dest := image.NewRGBA64(destBounds)
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Src, nil)

	return dest
}
