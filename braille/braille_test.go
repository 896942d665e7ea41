package braille

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixtext/parallel"
	"pixtext/raster"
)

func fill(t *testing.T, w, h int, p raster.Pixel) *raster.Image {
	t.Helper()
	img, err := raster.New(w, h)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = p
	}
	return img
}

func TestLuma(t *testing.T) {
	assert.Equal(t, 0.0, Luma(raster.Pixel{A: 1}))
	assert.InDelta(t, 0.9999, Luma(raster.Pixel{R: 1, G: 1, B: 1}), 1e-12)
	assert.Equal(t, 0.2989, Luma(raster.Pixel{R: 1}))
	assert.Equal(t, 0.5870, Luma(raster.Pixel{G: 1}))
	assert.Equal(t, 0.1140, Luma(raster.Pixel{B: 1}))
}

func TestDot(t *testing.T) {
	p := raster.Pixel{G: 1}
	at := Options{Threshold: Luma(p)}
	assert.False(t, at.Dot(p), "luma equal to the threshold")
	assert.True(t, Options{Threshold: Luma(p), Invert: true}.Dot(p))

	below := Options{Threshold: 0.5}
	assert.True(t, below.Dot(p))
	assert.False(t, Options{Threshold: 0.5, Invert: true}.Dot(p))

	assert.False(t, DefaultOptions.Dot(raster.Pixel{}))
	assert.True(t, Options{Threshold: -1}.Dot(raster.Pixel{}))
}

func TestBinarizePadding(t *testing.T) {
	img := fill(t, 3, 5, raster.Pixel{})
	b := Binarize(img, Options{Threshold: 0.5, Invert: true}, nil)

	assert.Equal(t, raster.Extents{W: 6, H: 8}, b.Extents)
	for y := range b.H {
		for x := range b.W {
			want := x < 3 && y < 5
			assert.Equal(t, want, b.At(x, y), "dot (%d, %d)", x, y)
		}
	}
}

func TestCellWeights(t *testing.T) {
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 1},
		{0, 1, 2},
		{0, 2, 4},
		{1, 0, 8},
		{1, 1, 16},
		{1, 2, 32},
		{0, 3, 64},
		{1, 3, 128},
	}

	for _, tt := range tests {
		b := NewBitmap(raster.Extents{W: 4, H: 8})
		b.Set(2+tt.x, 4+tt.y, true)
		assert.Equal(t, tt.want, Cell(b, 1, 1), "dot (%d, %d)", tt.x, tt.y)
		assert.Zero(t, Cell(b, 0, 0))
		assert.Zero(t, Cell(b, 1, 0))
		assert.Zero(t, Cell(b, 0, 1))
	}
}

func TestAppendCell(t *testing.T) {
	for v := range 256 {
		want := []byte(string(Rune(uint8(v))))
		assert.Equal(t, want, AppendCell(nil, uint8(v)), "cell %d", v)
	}
	assert.Equal(t, []byte("\xe2\xa3\xbf"), AppendCell(nil, 255))
	assert.Equal(t, []byte("\xe2\xa0\x80"), AppendCell(nil, 0))
	assert.Equal(t, rune(0x28ff), Rune(255))
	assert.Equal(t, Blank, Rune(0))
}

func TestEncodeWhiteBlock(t *testing.T) {
	img := fill(t, 2, 4, raster.Pixel{R: 1, G: 1, B: 1})
	g := Encode(img, DefaultOptions, nil)

	require.Equal(t, 2, g.W)
	require.Equal(t, 1, g.H)
	assert.Equal(t, uint8(255), g.At(0, 0))
	assert.Equal(t, uint8(0), g.At(1, 0))
	assert.Equal(t, "\xe2\xa3\xbf\xe2\xa0\x80\n", g.String())
}

func TestEncodeSingleBlackPixel(t *testing.T) {
	img := fill(t, 1, 1, raster.Pixel{})
	b := Binarize(img, DefaultOptions, nil)
	assert.Equal(t, raster.Extents{W: 4, H: 4}, b.Extents)
	assert.NotContains(t, b.Bits, true)

	g := Pack(b, nil)
	assert.Equal(t, []uint8{0, 0}, g.Cells)
	assert.Equal(t, "\xe2\xa0\x80\xe2\xa0\x80\n", g.String())
}

func TestEncodeLayout(t *testing.T) {
	// A 4x8 image with only its bottom right pixel lit lands in the last
	// dot of the second cell of the second line.
	img := fill(t, 4, 8, raster.Pixel{})
	img.SetPixel(3, 7, raster.Pixel{R: 1, G: 1, B: 1})

	g := Encode(img, DefaultOptions, nil)
	require.Equal(t, 3, g.W)
	require.Equal(t, 2, g.H)
	assert.Equal(t, []uint8{0, 0, 0, 0, 128, 0}, g.Cells)

	lines := bytes.Split([]byte(g.String()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "⠀⠀⠀", string(lines[0]))
	assert.Equal(t, "⠀⢀⠀", string(lines[1]))
	assert.Empty(t, lines[2])
}

func randomImage(t *testing.T, w, h int, seed int64) *raster.Image {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	img, err := raster.New(w, h)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = raster.Pixel{R: rnd.Float64(), G: rnd.Float64(), B: rnd.Float64()}
	}
	return img
}

func TestEncodeParallelMatchesSerial(t *testing.T) {
	img := randomImage(t, 37, 23, 1)

	pool := parallel.Start(4)
	defer pool.Wait(true)

	serial := Encode(img, DefaultOptions, parallel.Serial)
	concurrent := Encode(img, DefaultOptions, pool.Range)
	assert.Equal(t, serial.Cells, concurrent.Cells)
}

func TestEncodeIdempotent(t *testing.T) {
	img := randomImage(t, 20, 10, 2)
	o := Options{Threshold: 0.4, Invert: true}

	var first, second bytes.Buffer
	_, err := Encode(img, o, nil).WriteTo(&first)
	require.NoError(t, err)
	_, err = Encode(img, o, nil).WriteTo(&second)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, 3*11*3+3, first.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteToError(t *testing.T) {
	g := Encode(fill(t, 2000, 4, raster.Pixel{}), DefaultOptions, nil)
	_, err := g.WriteTo(failingWriter{})
	assert.Error(t, err)
}
