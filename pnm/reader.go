package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
)

var (
	// ErrFormat is returned for streams that are not valid pixel maps.
	ErrFormat = errors.New("pnm: invalid format")
	// ErrTooLarge is returned when the header describes more than MaxSamples
	// samples.
	ErrTooLarge = errors.New("pnm: image too large")

	errBadMagic  = errors.New("invalid magic number")
	errBadHeader = errors.New("invalid header")
	errBadSample = errors.New("sample out of range")
)

type byteScanner interface {
	io.Reader
	io.ByteScanner
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r byteScanner

	kind byte // '1' to '6'
	img  Image
}

func (d *decoder) plain() bool {
	return d.kind <= '3'
}

func (d *decoder) bitmap() bool {
	return d.kind == '1' || d.kind == '4'
}

// skipSpace consumes whitespace and comments and returns the first byte of
// the next token.
func (d *decoder) skipSpace() (byte, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, unexpected(err)
		}
		switch {
		case b == '#':
			for b != '\n' && b != '\r' {
				if b, err = d.r.ReadByte(); err != nil {
					return 0, unexpected(err)
				}
			}
		case isSpace(b):
		default:
			return b, nil
		}
	}
}

func (d *decoder) readUint(limit int) (int, error) {
	b, err := d.skipSpace()
	if err != nil {
		return 0, err
	}
	if !isDigit(b) {
		return 0, errBadHeader
	}

	n := 0
	for {
		n = n*10 + int(b-'0')
		if n > limit {
			return 0, errBadHeader
		}
		if b, err = d.r.ReadByte(); err != nil {
			if err == io.EOF {
				return n, nil
			}
			return 0, err
		}
		if !isDigit(b) {
			return n, d.r.UnreadByte()
		}
	}
}

func (d *decoder) readHeader() error {
	var magic [2]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		return unexpected(err)
	}
	if magic[0] != 'P' || magic[1] < '1' || magic[1] > '6' {
		return errBadMagic
	}
	d.kind = magic[1]

	var err error
	if d.img.Width, err = d.readUint(maxDimension); err != nil {
		return err
	}
	if d.img.Height, err = d.readUint(maxDimension); err != nil {
		return err
	}
	if d.img.Width == 0 || d.img.Height == 0 {
		return errBadHeader
	}

	d.img.Channels = 1
	if d.kind == '3' || d.kind == '6' {
		d.img.Channels = 3
	}

	d.img.MaxVal = 1
	if !d.bitmap() {
		if d.img.MaxVal, err = d.readUint(maxMaxVal); err != nil {
			return err
		}
		if d.img.MaxVal == 0 {
			return errBadHeader
		}
	}

	if !d.plain() {
		// Exactly one whitespace byte separates the header from the raster.
		b, err := d.r.ReadByte()
		if err != nil {
			return unexpected(err)
		}
		if !isSpace(b) {
			return errBadHeader
		}
	}
	return nil
}

func (d *decoder) readPlain() error {
	for i := range d.img.Samples {
		if d.bitmap() {
			// Bits need not be separated by whitespace.
			b, err := d.skipSpace()
			if err != nil {
				return err
			}
			if b != '0' && b != '1' {
				return errBadSample
			}
			// In a bitmap 1 is black.
			d.img.Samples[i] = uint16('1' - b)
			continue
		}

		v, err := d.readUint(maxMaxVal)
		if err != nil {
			return err
		}
		if v > d.img.MaxVal {
			return errBadSample
		}
		d.img.Samples[i] = uint16(v)
	}
	return nil
}

func (d *decoder) readRaw() error {
	w, h := d.img.Width, d.img.Height

	if d.bitmap() {
		row := make([]byte, (w+7)/8)
		for y := 0; y < h; y++ {
			if _, err := io.ReadFull(d.r, row); err != nil {
				return unexpected(err)
			}
			for x := 0; x < w; x++ {
				bit := row[x/8] >> (7 - uint(x%8)) & 1
				d.img.Samples[y*w+x] = uint16(1 - bit)
			}
		}
		return nil
	}

	size := 1
	if d.img.MaxVal > 0xff {
		size = 2
	}
	row := make([]byte, w*d.img.Channels*size)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(d.r, row); err != nil {
			return unexpected(err)
		}
		dst := d.img.Samples[y*w*d.img.Channels:]
		for i := range len(row) / size {
			v := uint16(row[i*size])
			if size == 2 {
				v = v<<8 | uint16(row[i*size+1])
			}
			if int(v) > d.img.MaxVal {
				return errBadSample
			}
			dst[i] = v
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	if bs, ok := r.(byteScanner); ok {
		d.r = bs
	} else {
		d.r = bufio.NewReader(r)
	}

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if d.img.Width > MaxSamples/d.img.Height/d.img.Channels {
		return ErrTooLarge
	}
	d.img.Samples = make([]uint16, d.img.Width*d.img.Height*d.img.Channels)

	if d.plain() {
		return d.readPlain()
	}
	return d.readRaw()
}

func wrap(err error) error {
	switch err {
	case errBadMagic, errBadHeader, errBadSample, io.ErrUnexpectedEOF:
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return err
}

// Decode reads a pixel map from r and returns it as an image.Image. The
// concrete type is *Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, wrap(err)
	}
	return &d.img, nil
}

// DecodeConfig returns the color model and dimensions of a pixel map without
// decoding the raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, wrap(err)
	}
	return image.Config{
		ColorModel: d.img.ColorModel(),
		Width:      d.img.Width,
		Height:     d.img.Height,
	}, nil
}
