package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topDown     bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("%w: tga header truncated", ErrDecode)
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPix: int(data[16]) / 8,
		topDown:     data[17]&0x20 != 0,
	}
	switch {
	case data[1] != 0:
		return h, fmt.Errorf("%w: color-mapped tga", ErrDecode)
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("%w: tga type %d", ErrDecode, h.imageType)
	case h.bytesPerPix != 3 && h.bytesPerPix != 4:
		return h, fmt.Errorf("%w: tga depth %d", ErrDecode, data[16])
	case h.width == 0 || h.height == 0:
		return h, fmt.Errorf("%w: empty tga", ErrDecode)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA (24 or 32 bit).
// Truncated pixel data is an error.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, fmt.Errorf("%w: tga id field truncated", ErrDecode)
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	r := &tgaReader{data: data[start:], bpp: h.bytesPerPix}

	total := h.width * h.height
	put := func(i int, c color.RGBA) {
		x, y := i%h.width, i/h.width
		if !h.topDown {
			y = h.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	for i := 0; i < total; {
		if h.imageType == TGATypeUncompressed {
			c, ok := r.pixel()
			if !ok {
				return nil, fmt.Errorf("%w: tga pixels truncated at %d", ErrDecode, i)
			}
			put(i, c)
			i++
			continue
		}

		packet, ok := r.byte()
		if !ok {
			return nil, fmt.Errorf("%w: tga rle truncated at %d", ErrDecode, i)
		}
		n := int(packet&0x7F) + 1
		repeat := packet&0x80 != 0

		var c color.RGBA
		for k := 0; k < n && i < total; k++ {
			if k == 0 || !repeat {
				if c, ok = r.pixel(); !ok {
					return nil, fmt.Errorf("%w: tga rle truncated at %d", ErrDecode, i)
				}
			}
			put(i, c)
			i++
		}
	}
	return img, nil
}

// tgaReader walks BGR(A) pixel data.
type tgaReader struct {
	data []byte
	pos  int
	bpp  int
}

func (r *tgaReader) byte() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

func (r *tgaReader) pixel() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}
