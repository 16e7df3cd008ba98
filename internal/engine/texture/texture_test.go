package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func assertChecker(t *testing.T, img *image.RGBA) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(1, 1))
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	img, err := Decode(buf.Bytes(), "road.png")
	require.NoError(t, err)
	assertChecker(t, img)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker()))

	img, err := Decode(buf.Bytes(), "paint.bmp")
	require.NoError(t, err)
	assertChecker(t, img)
}

func TestDecodeFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))
	path := filepath.Join(t.TempDir(), "sky.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := DecodeFile(path)
	require.NoError(t, err)
	assertChecker(t, img)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"), "broken.png")
	assert.True(t, errors.Is(err, ErrDecode))
}

// tgaHeaderBytes builds a true-color header. descriptor bit 5 marks top-down rows.
func tgaHeaderBytes(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGA(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			// Bottom-up rows: blue, white, then red, green
			name: "uncompressed 24-bit bottom-up",
			data: append(tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, false),
				255, 0, 0, 255, 255, 255,
				0, 0, 255, 0, 255, 0),
		},
		{
			name: "uncompressed 32-bit top-down",
			data: append(tgaHeaderBytes(TGATypeUncompressed, 2, 2, 32, true),
				0, 0, 255, 255, 0, 255, 0, 255,
				255, 0, 0, 255, 255, 255, 255, 255),
		},
		{
			name: "rle top-down",
			data: append(tgaHeaderBytes(TGATypeRLE, 2, 2, 24, true),
				0x01, 0, 0, 255, 0, 255, 0, // raw: red, green
				0x00, 255, 0, 0, // raw: blue
				0x80, 255, 255, 255), // run of one white
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, "paint.TGA")
			require.NoError(t, err)
			assertChecker(t, img)
		})
	}
}

func TestDecodeTGARun(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeRLE, 3, 1, 24, true), 0x82, 10, 20, 30)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, color.RGBA{R: 30, G: 20, B: 10, A: 255}, img.RGBAAt(x, 0))
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			h := tgaHeaderBytes(TGATypeUncompressed, 1, 1, 24, false)
			h[1] = 1
			return h
		}()},
		{"grayscale type", tgaHeaderBytes(3, 1, 1, 24, false)},
		{"16-bit", tgaHeaderBytes(TGATypeUncompressed, 1, 1, 16, false)},
		{"empty", tgaHeaderBytes(TGATypeUncompressed, 0, 0, 24, false)},
		{"truncated pixels", append(tgaHeaderBytes(TGATypeUncompressed, 2, 1, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeaderBytes(TGATypeRLE, 4, 1, 24, false), 0x81, 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
		})
	}
}

func TestToRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})

	got := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	assert.Equal(t, color.RGBA{R: 9, A: 255}, got.RGBAAt(0, 0))

	zero := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, zero, ToRGBA(zero))
}

func TestFlipVertical(t *testing.T) {
	img := ToRGBA(checker())
	flipped := FlipVertical(img)

	assert.Equal(t, img.RGBAAt(0, 0), flipped.RGBAAt(0, 1))
	assert.Equal(t, img.RGBAAt(1, 1), flipped.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0), "source untouched")
}

func TestDefaultSampler(t *testing.T) {
	s := DefaultSampler(16)
	assert.Equal(t, int32(gl.REPEAT), s.WrapS)
	assert.Equal(t, int32(gl.REPEAT), s.WrapT)
	assert.Equal(t, int32(gl.LINEAR_MIPMAP_LINEAR), s.MinFilter)
	assert.Equal(t, int32(gl.LINEAR), s.MagFilter)
	assert.Equal(t, float32(16), s.Anisotropy)

	assert.Equal(t, float32(1), DefaultSampler(0).Anisotropy, "no anisotropy support")
}
