// Package dither is the command that ranks the terminal palette for every
// pixel of a pixel map, the groundwork for a color ditherer.
package dither

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pixtext/closeness"
	"pixtext/palette"
	"pixtext/parallel"
	"pixtext/pipeline"
	"pixtext/raster"

	"github.com/alecthomas/kong"
)

const adaptive = "adaptive"

type CLICmd struct {
	Palette       string `help:"Palette to rank: default, adaptive, a comma separated list of 16 #rrggbb colors or a RIFF PAL file" default:"default"`
	Format        string `help:"Output: none, hex (packed ranking per pixel) or nearest (closest color per pixel)" enum:"none,hex,nearest" default:"none"`
	ExportPalette string `help:"Write the ranked palette to this RIFF PAL file" type:"path"`
	Width         int    `help:"Scale the image to this many pixels across before ranking" default:"0"`
	Height        int    `help:"Scale the image to this many pixels down before ranking" default:"0"`

	Pick pipeline.PaletteFunc `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}

	if c.Palette == adaptive {
		c.Pick = func(img *raster.Image) palette.Palette {
			return palette.Adaptive(img)
		}
		return nil
	}

	pal, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	c.Pick = pipeline.Fixed(pal)
	return nil
}

func (c *CLICmd) Run(s *pipeline.Streams, logger *slog.Logger, pool *parallel.Pool) error {
	logger = logger.With("cmd", "rank", "palette", c.Palette)
	conv := pipeline.Converter{
		Logger: logger,
		Range:  pool.Range,
		Width:  c.Width,
		Height: c.Height,
	}

	g, ranker, err := conv.Closeness(s.In, c.Pick)
	if err != nil {
		return fmt.Errorf("could not rank image from stdin: %w", err)
	}

	var counts [palette.Size]int
	for _, seq := range g.Seq {
		counts[seq.Nearest()]++
	}
	for i, n := range counts {
		if n > 0 {
			logger.Debug("nearest color", "color", palette.Color(i), "pixels", n)
		}
	}

	if c.ExportPalette != "" {
		if err := exportPalette(c.ExportPalette, ranker.Palette()); err != nil {
			return err
		}
		logger.Info("palette exported", "file", c.ExportPalette)
	}

	if err := Write(s.Out, g, ranker.Palette(), c.Format); err != nil {
		return fmt.Errorf("could not write ranking: %w", err)
	}
	return nil
}

// Write prints g in the given format, one line per padded row. The "none"
// format writes nothing.
func Write(w io.Writer, g *closeness.Grid, pal *palette.Palette, format string) error {
	var cell func([]byte, closeness.Sequence) []byte
	switch format {
	case "", "none":
		return nil
	case "hex":
		cell = func(dst []byte, s closeness.Sequence) []byte {
			return fmt.Appendf(dst, "%016x", uint64(s))
		}
	case "nearest":
		cell = func(dst []byte, s closeness.Sequence) []byte {
			return append(dst, pal.Hex(s.Nearest())...)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	bw := bufio.NewWriter(w)
	var line []byte
	for y := range g.H {
		line = line[:0]
		for x, s := range g.Row(y) {
			if x > 0 {
				line = append(line, ' ')
			}
			line = cell(line, s)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func exportPalette(name string, pal *palette.Palette) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", name, closeErr)
		}
	}()

	if err = palette.WriteRIFF(f, pal); err != nil {
		return fmt.Errorf("could not write palette file %q: %w", name, err)
	}
	return nil
}
