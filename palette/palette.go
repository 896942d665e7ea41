// Package palette defines the 16 color terminal palette the closeness ranker
// measures against, and the ways to replace it.
package palette

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"pixtext/raster"
)

// Color is an index into a Palette.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Size is the number of colors in every Palette.
const Size = 16

var names = [Size]string{
	Black:         "black",
	Red:           "red",
	Green:         "green",
	Yellow:        "yellow",
	Blue:          "blue",
	Magenta:       "magenta",
	Cyan:          "cyan",
	White:         "white",
	BrightBlack:   "bright black",
	BrightRed:     "bright red",
	BrightGreen:   "bright green",
	BrightYellow:  "bright yellow",
	BrightBlue:    "bright blue",
	BrightMagenta: "bright magenta",
	BrightCyan:    "bright cyan",
	BrightWhite:   "bright white",
}

func (c Color) String() string {
	if int(c) < Size {
		return names[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Palette maps each Color to its value. Alpha is always zero.
type Palette [Size]raster.Pixel

// Default is the classic VGA text mode palette.
var Default = Palette{
	Black:   {R: 0 / 255., G: 0 / 255., B: 0 / 255.},
	Red:     {R: 170 / 255., G: 0 / 255., B: 0 / 255.},
	Green:   {R: 0 / 255., G: 170 / 255., B: 0 / 255.},
	Yellow:  {R: 170 / 255., G: 85 / 255., B: 0 / 255.},
	Blue:    {R: 0 / 255., G: 0 / 255., B: 170 / 255.},
	Magenta: {R: 170 / 255., G: 0 / 255., B: 170 / 255.},
	Cyan:    {R: 0 / 255., G: 170 / 255., B: 170 / 255.},
	White:   {R: 170 / 255., G: 170 / 255., B: 170 / 255.},

	BrightBlack:   {R: 85 / 255., G: 85 / 255., B: 85 / 255.},
	BrightRed:     {R: 255 / 255., G: 85 / 255., B: 85 / 255.},
	BrightGreen:   {R: 85 / 255., G: 255 / 255., B: 85 / 255.},
	BrightYellow:  {R: 255 / 255., G: 255 / 255., B: 85 / 255.},
	BrightBlue:    {R: 85 / 255., G: 85 / 255., B: 255 / 255.},
	BrightMagenta: {R: 255 / 255., G: 85 / 255., B: 255 / 255.},
	BrightCyan:    {R: 85 / 255., G: 255 / 255., B: 255 / 255.},
	BrightWhite:   {R: 255 / 255., G: 255 / 255., B: 255 / 255.},
}

// FromColors builds a Palette from exactly Size colors.
func FromColors(pal color.Palette) (Palette, error) {
	var p Palette
	if len(pal) != Size {
		return p, fmt.Errorf("palette needs %d colors, got %d", Size, len(pal))
	}
	for i, c := range pal {
		p[i] = toPixel(c)
	}
	return p, nil
}

func toPixel(c color.Color) raster.Pixel {
	px := raster.PixelModel.Convert(c).(raster.Pixel)
	px.A = 0
	return px
}

// Colors returns the palette as 8-bit opaque colors.
func (p *Palette) Colors() color.Palette {
	pal := make(color.Palette, Size)
	for i, px := range p {
		px.A = 1
		pal[i] = color.RGBAModel.Convert(px)
	}
	return pal
}

// Load resolves a palette name: "default" or "vga16" for Default, a comma
// separated list of hex colors, or the path of a RIFF PAL file.
func Load(name string) (Palette, error) {
	switch {
	case name == "", name == "default", name == "vga16":
		return Default, nil
	case strings.HasPrefix(name, "#"):
		return ParseHex(name)
	}

	f, err := os.Open(name)
	if err != nil {
		return Palette{}, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer f.Close()

	p, err := ReadRIFF(f)
	if err != nil {
		return Palette{}, fmt.Errorf("could not load palette %q: %w", name, err)
	}
	return p, nil
}
