package braille

import (
	"bufio"
	"io"

	"pixtext/parallel"
	"pixtext/raster"
)

// Blank is the empty Braille pattern; a cell value v is the rune Blank+v.
const Blank rune = 0x2800

// weights maps the dot at [row][col] of a block to its bit in the cell value.
var weights = [4][2]uint8{
	{1 << 0, 1 << 3},
	{1 << 1, 1 << 4},
	{1 << 2, 1 << 5},
	{1 << 6, 1 << 7},
}

// Grid holds one cell value per 2x4 block.
type Grid struct {
	W, H  int
	Cells []uint8
}

func (g *Grid) At(x, y int) uint8 {
	return g.Cells[y*g.W+x]
}

// Row returns the cells of row y.
func (g *Grid) Row(y int) []uint8 {
	return g.Cells[y*g.W : (y+1)*g.W]
}

// Cell returns the value of the block whose top left dot is (2*bx, 4*by).
func Cell(b *Bitmap, bx, by int) uint8 {
	var v uint8
	for row, w := range weights {
		for col, bit := range w {
			if b.At(2*bx+col, 4*by+row) {
				v |= bit
			}
		}
	}
	return v
}

// Pack folds a Bitmap into Braille cells.
func Pack(b *Bitmap, each parallel.RangeFunc) *Grid {
	if each == nil {
		each = parallel.Serial
	}

	w, h := b.Cells()
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]uint8, w*h),
	}
	each(h, func(by int) {
		row := g.Row(by)
		for bx := range row {
			row[bx] = Cell(b, bx, by)
		}
	})
	return g
}

// Rune returns the glyph of cell value v.
func Rune(v uint8) rune {
	return Blank + rune(v)
}

// AppendCell appends the UTF-8 encoding of cell value v to dst.
func AppendCell(dst []byte, v uint8) []byte {
	return append(dst, 0xe2, 0xa0+v>>6, 0x80+v&0x3f)
}

// AppendLine appends row y and a newline to dst.
func (g *Grid) AppendLine(dst []byte, y int) []byte {
	for _, v := range g.Row(y) {
		dst = AppendCell(dst, v)
	}
	return append(dst, '\n')
}

// WriteTo writes the grid as text, one line per row.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 3*g.W+1)

	var n int64
	for y := range g.H {
		line = g.AppendLine(line[:0], y)
		m, err := bw.Write(line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (g *Grid) String() string {
	buf := make([]byte, 0, (3*g.W+1)*g.H)
	for y := range g.H {
		buf = g.AppendLine(buf, y)
	}
	return string(buf)
}

// Encode binarizes img and returns its Braille cells.
func Encode(img *raster.Image, o Options, each parallel.RangeFunc) *Grid {
	return Pack(Binarize(img, o, each), each)
}
