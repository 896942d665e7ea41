package palette

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixtext/raster"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, raster.Pixel{}, Default[Black])
	assert.Equal(t, raster.Pixel{R: 170.0 / 255}, Default[Red])
	assert.Equal(t, raster.Pixel{R: 170.0 / 255, G: 85.0 / 255}, Default[Yellow])
	assert.Equal(t, raster.Pixel{R: 85.0 / 255, G: 85.0 / 255, B: 85.0 / 255}, Default[BrightBlack])
	assert.Equal(t, raster.Pixel{R: 1, G: 1, B: 1}, Default[BrightWhite])

	for i, px := range Default {
		assert.Zero(t, px.A, "alpha of %s", Color(i))
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "bright magenta", BrightMagenta.String())
	assert.Equal(t, "Color(16)", Color(16).String())
}

func TestColors(t *testing.T) {
	pal := Default.Colors()
	require.Len(t, pal, Size)
	assert.Equal(t, color.RGBA{R: 170, A: 0xff}, pal[Red])
	assert.Equal(t, color.RGBA{R: 85, G: 255, B: 255, A: 0xff}, pal[BrightCyan])
}

func TestFromColors(t *testing.T) {
	p, err := FromColors(Default.Colors())
	require.NoError(t, err)
	assert.Equal(t, Default, p)

	_, err = FromColors(Default.Colors()[:15])
	assert.Error(t, err)
}

func TestRIFF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRIFF(&buf, &Default))

	b := buf.Bytes()
	require.Len(t, b, 20+4+Size*4)
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, "PAL data", string(b[8:16]))
	assert.Equal(t, []byte{0x00, 0x03, Size, 0x00}, b[20:24])
	assert.Equal(t, []byte{170, 0, 0, 0}, b[28:32])

	p, err := ReadRIFF(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default, p)
}

func TestReadRIFFErrors(t *testing.T) {
	_, err := ReadRIFF(strings.NewReader("RIFF\x04\x00\x00\x00WAVE"))
	assert.Error(t, err)

	_, err = ReadRIFF(strings.NewReader("RIFF\x04\x00\x00\x00PAL "))
	assert.ErrorIs(t, err, errNoData)

	_, err = ReadRIFF(strings.NewReader("RIFF\x10\x00\x00\x00PAL data\x04\x00\x00\x00\x00\x01\x10\x00"))
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	var hex []string
	for i := range Size {
		hex = append(hex, Default.Hex(Color(i)))
	}
	assert.Equal(t, "#aa0000", hex[Red])
	assert.Equal(t, "#ffff55", hex[BrightYellow])

	p, err := ParseHex(strings.Join(hex, ", "))
	require.NoError(t, err)
	assert.Equal(t, Default, p)

	_, err = ParseHex("#000000,#zzzzzz")
	assert.Error(t, err)
	_, err = ParseHex("#000000,#ffffff")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"", "default", "vga16"} {
		p, err := Load(name)
		require.NoError(t, err)
		assert.Equal(t, Default, p)
	}

	var buf bytes.Buffer
	custom := Default
	custom[Black] = raster.Pixel{R: 1.0 / 255}
	require.NoError(t, WriteRIFF(&buf, &custom))

	name := filepath.Join(t.TempDir(), "custom.pal")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))

	p, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, custom, p)

	_, err = Load(filepath.Join(t.TempDir(), "missing.pal"))
	assert.Error(t, err)
}

func TestAdaptive(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 0xff})
		}
	}

	p := Adaptive(img)
	assert.Equal(t, raster.Pixel{R: 200.0 / 255, G: 10.0 / 255, B: 10.0 / 255}, p[0])
	for _, px := range p {
		assert.Zero(t, px.A)
	}
}
