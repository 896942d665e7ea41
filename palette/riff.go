package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
A PAL file is a RIFF form of type "PAL " with a "data" chunk holding a
LOGPALETTE:

typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}

	errNoData = errors.New("no palette chunk found")
)

const palVersion = 0x0300

// ReadRIFF reads the first palette of a RIFF PAL stream. It must hold exactly
// Size colors.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return Palette{}, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return Palette{}, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	for {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				return Palette{}, errNoData
			}
			return Palette{}, fmt.Errorf("could not read chunk: %w", err)
		}
		if id != dataType {
			continue
		}

		pal, err := readPalette(data)
		if err != nil {
			return Palette{}, err
		}
		return FromColors(pal)
	}
}

func readPalette(r io.Reader) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}

	if ver := binary.LittleEndian.Uint16(hdr[0:]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", ver)
	}

	count := binary.LittleEndian.Uint16(hdr[2:])
	res := make(color.Palette, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		res[i] = color.RGBA{
			R: entry[0],
			G: entry[1],
			B: entry[2],
			A: 0xff,
		}
	}

	return res, nil
}

// WriteRIFF writes p to w as a RIFF PAL file.
func WriteRIFF(w io.Writer, p *Palette) error {
	pal := p.Colors()
	chunk := 4 + len(pal)*4 // palVersion + palNumEntries + 4 bytes/color

	buf := make([]byte, 0, 20+chunk)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunk))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunk))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))
	for _, col := range pal {
		c := col.(color.RGBA)
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	return writeBytes(w, buf)
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
