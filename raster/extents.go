package raster

// Extents are image dimensions grown so that 2x4 blocks tile them exactly. W
// is always even and H always a multiple of four.
type Extents struct {
	W, H int
}

// Pad returns the padded extents of a dimx by dimy image, dimx, dimy >= 1.
//
// Odd widths gain three columns and even widths two. Heights are rounded up
// to the next multiple of four.
func Pad(dimx, dimy int) Extents {
	return Extents{
		W: ((dimx - 1) &^ 1) + 4,
		H: ((dimy - 1) &^ 3) + 4,
	}
}

// Cells returns the number of 2x4 blocks across and down.
func (e Extents) Cells() (int, int) {
	return e.W / 2, e.H / 4
}
