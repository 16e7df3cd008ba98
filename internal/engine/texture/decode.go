// Package texture decodes images to RGBA8 and owns their GL texture objects.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned for images that cannot be decoded.
var ErrDecode = errors.New("texture decode failed")

// Decode decodes data into a top-down RGBA8 image. name selects the TGA
// decoder by extension; every other format is sniffed.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty image", ErrDecode, name)
	}
	return ToRGBA(img), nil
}

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %s: %w", path, err)
	}
	return Decode(data, path)
}

// ToRGBA converts img to *image.RGBA with a zero origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows in reverse order.
// GL expects the first row to be the bottom of the image.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dst := (b.Dy() - 1 - y) * out.Stride
		copy(out.Pix[dst:dst+rowLen], src)
	}
	return out
}
