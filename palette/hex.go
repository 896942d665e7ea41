package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a comma separated list of Size "#rrggbb" colors.
func ParseHex(s string) (Palette, error) {
	fields := strings.Split(s, ",")
	pal := make(color.Palette, 0, len(fields))
	for _, f := range fields {
		c, err := colorful.Hex(strings.TrimSpace(f))
		if err != nil {
			return Palette{}, fmt.Errorf("could not parse color %q: %w", f, err)
		}
		pal = append(pal, c)
	}
	return FromColors(pal)
}

// Hex formats the value of c as "#rrggbb".
func (p *Palette) Hex(c Color) string {
	px := p[c&0x0f]
	return colorful.Color{R: px.R, G: px.G, B: px.B}.Clamped().Hex()
}
