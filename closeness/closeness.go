// Package closeness ranks a 16 color palette by distance to each pixel of an
// image.
//
// The full ranking of a pixel is packed into a Sequence, four bits per color:
// the low nibble holds the nearest palette index and the high nibble the
// farthest. Keeping every rank, not only the nearest color, leaves an error
// diffusing ditherer free to fall back to the second or third choice.
package closeness

import (
	"cmp"
	"fmt"
	"slices"

	"pixtext/palette"
	"pixtext/parallel"
	"pixtext/raster"
)

// Sequence is a palette ordering packed into 16 nibbles. Nibble i holds the
// color ranked i-th nearest.
type Sequence uint64

// Rank returns the color ranked i-th nearest, 0 <= i < palette.Size.
func (s Sequence) Rank(i int) palette.Color {
	return palette.Color(s >> (4 * uint(i)) & 0x0f)
}

// Nearest returns the closest color.
func (s Sequence) Nearest() palette.Color {
	return s.Rank(0)
}

// Colors unpacks the sequence, nearest first.
func (s Sequence) Colors() [palette.Size]palette.Color {
	var cs [palette.Size]palette.Color
	for i := range cs {
		cs[i] = s.Rank(i)
	}
	return cs
}

// Valid reports whether every palette index appears exactly once.
func (s Sequence) Valid() bool {
	var seen uint16
	for _, c := range s.Colors() {
		seen |= 1 << c
	}
	return seen == 0xffff
}

func (s Sequence) String() string {
	return fmt.Sprintf("%016x", uint64(s))
}

// SqDist returns the squared euclidean distance between the color channels
// of a and b.
func SqDist(a, b raster.Pixel) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return float64(db*db) + float64(dg*dg) + float64(dr*dr)
}

type candidate struct {
	color palette.Color
	dist  float64
}

// Ranker orders the colors of one palette.
type Ranker struct {
	pal palette.Palette
}

func NewRanker(p *palette.Palette) *Ranker {
	return &Ranker{pal: *p}
}

// Palette returns the colors the ranker measures against.
func (r *Ranker) Palette() *palette.Palette {
	return &r.pal
}

// Rank returns the palette ordered by ascending distance to p. Equidistant
// colors keep their palette order.
func (r *Ranker) Rank(p raster.Pixel) Sequence {
	var cands [palette.Size]candidate
	for i := range cands {
		cands[i] = candidate{
			color: palette.Color(i),
			dist:  SqDist(p, r.pal[i]),
		}
	}

	slices.SortFunc(cands[:], func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), cmp.Compare(a.color, b.color))
	})

	var s Sequence
	for i, c := range cands {
		s |= Sequence(c.color) << (4 * uint(i))
	}
	return s
}

// Grid holds one Sequence per pixel of a padded image.
type Grid struct {
	raster.Extents
	// Seq holds the sequence of (x, y) at Seq[y*W+x].
	Seq []Sequence
}

func (g *Grid) At(x, y int) Sequence {
	return g.Seq[y*g.W+x]
}

// Row returns the sequences of row y.
func (g *Grid) Row(y int) []Sequence {
	return g.Seq[y*g.W : (y+1)*g.W]
}

// RankImage ranks every pixel of img. The grid is padded like a Braille
// bitmap; padding cells hold the ranking of a black, all-zero pixel.
func (r *Ranker) RankImage(img *raster.Image, each parallel.RangeFunc) *Grid {
	if each == nil {
		each = parallel.Serial
	}

	dimx, dimy := img.Dims()
	e := raster.Pad(dimx, dimy)
	g := &Grid{
		Extents: e,
		Seq:     make([]Sequence, e.W*e.H),
	}

	zero := r.Rank(raster.Pixel{})
	each(e.H, func(y int) {
		row := g.Row(y)
		if y >= dimy {
			for x := range row {
				row[x] = zero
			}
			return
		}
		for x, p := range img.Row(y) {
			row[x] = r.Rank(p)
		}
		for x := dimx; x < len(row); x++ {
			row[x] = zero
		}
	})
	return g
}
