// Package pipeline drives one conversion from encoded image bytes to Braille
// text or to a closeness grid.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"pixtext/braille"
	"pixtext/closeness"
	"pixtext/palette"
	"pixtext/parallel"
	"pixtext/raster"
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Converter runs conversions. The zero value converts serially without
// logging.
type Converter struct {
	Logger *slog.Logger
	// Range spreads row work; nil means parallel.Serial.
	Range parallel.RangeFunc
	// Width and Height, when set, scale the input before conversion.
	Width, Height int
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Load decodes the whole of r into an Image.
func (c *Converter) Load(r io.Reader) (*raster.Image, error) {
	img, kind, err := raster.Decode(r)
	if err != nil {
		return nil, err
	}

	logger := c.logger()
	logger.Debug("decoded image", "format", kind, "size", img.Bounds().Size())

	img = raster.Resize(logger, img, c.Width, c.Height)
	return raster.FromImage(img)
}

// Braille converts the image read from r and writes it to w as Braille text.
func (c *Converter) Braille(r io.Reader, w io.Writer, o braille.Options) error {
	img, err := c.Load(r)
	if err != nil {
		return err
	}

	g := braille.Encode(img, o, c.Range)
	c.logger().Debug("encoded braille", "cells", g.W, "lines", g.H,
		"threshold", o.Threshold, "invert", o.Invert)

	if _, err := g.WriteTo(w); err != nil {
		return fmt.Errorf("could not write braille text: %w", err)
	}
	return nil
}

// PaletteFunc picks the palette for an image.
type PaletteFunc func(*raster.Image) palette.Palette

// Fixed always picks p.
func Fixed(p palette.Palette) PaletteFunc {
	return func(*raster.Image) palette.Palette {
		return p
	}
}

// Closeness ranks the palette chosen by pick, palette.Default when nil, for
// every pixel of the image read from r.
func (c *Converter) Closeness(r io.Reader, pick PaletteFunc) (*closeness.Grid, *closeness.Ranker, error) {
	img, err := c.Load(r)
	if err != nil {
		return nil, nil, err
	}

	pal := palette.Default
	if pick != nil {
		pal = pick(img)
	}

	ranker := closeness.NewRanker(&pal)
	g := ranker.RankImage(img, c.Range)
	c.logger().Debug("ranked palette", "width", g.W, "height", g.H)

	return g, ranker, nil
}
