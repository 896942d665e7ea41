package dither

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixtext/closeness"
	"pixtext/palette"
	"pixtext/parallel"
	"pixtext/pipeline"
	"pixtext/raster"
)

const redPixel = "P3\n1 1\n255\n170 0 0\n"

func rank(t *testing.T, in string) (*closeness.Grid, *palette.Palette) {
	t.Helper()
	var conv pipeline.Converter
	g, ranker, err := conv.Closeness(strings.NewReader(in), nil)
	require.NoError(t, err)
	return g, ranker.Palette()
}

func TestWriteNearest(t *testing.T) {
	g, pal := rank(t, redPixel)

	var out bytes.Buffer
	require.NoError(t, Write(&out, g, pal, "nearest"))
	assert.Equal(t,
		"#aa0000 #000000 #000000 #000000\n"+
			strings.Repeat("#000000 #000000 #000000 #000000\n", 3),
		out.String())
}

func TestWriteHex(t *testing.T) {
	g, pal := rank(t, redPixel)

	var out bytes.Buffer
	require.NoError(t, Write(&out, g, pal, "hex"))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	cells := strings.Fields(lines[0])
	require.Len(t, cells, 4)
	assert.Equal(t, g.At(0, 0).String(), cells[0])
	assert.True(t, strings.HasSuffix(cells[0], "1"))
	assert.Len(t, cells[1], 16)
}

func TestWriteNone(t *testing.T) {
	g, pal := rank(t, redPixel)

	var out bytes.Buffer
	require.NoError(t, Write(&out, g, pal, "none"))
	assert.Zero(t, out.Len())
	assert.Error(t, Write(&out, g, pal, "octal"))
}

func TestValidate(t *testing.T) {
	img, err := raster.New(1, 1)
	require.NoError(t, err)

	c := CLICmd{Palette: "default"}
	require.NoError(t, c.Validate(nil))
	assert.Equal(t, palette.Default, c.Pick(img))

	c = CLICmd{Palette: "adaptive"}
	require.NoError(t, c.Validate(nil))
	require.NotNil(t, c.Pick)

	c = CLICmd{Palette: filepath.Join(t.TempDir(), "missing.pal")}
	assert.Error(t, c.Validate(nil))

	c = CLICmd{Palette: "default", Width: -1}
	assert.Error(t, c.Validate(nil))
}

func TestRunExportPalette(t *testing.T) {
	pool := parallel.Start(2)
	defer pool.Wait(true)

	name := filepath.Join(t.TempDir(), "out.pal")
	c := CLICmd{Palette: "default", Format: "nearest", ExportPalette: name}
	require.NoError(t, c.Validate(nil))

	var out bytes.Buffer
	s := &pipeline.Streams{In: strings.NewReader(redPixel), Out: &out}
	require.NoError(t, c.Run(s, slog.New(slog.DiscardHandler), pool))
	assert.True(t, strings.HasPrefix(out.String(), "#aa0000 "))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	pal, err := palette.ReadRIFF(f)
	require.NoError(t, err)
	assert.Equal(t, palette.Default, pal)
}
