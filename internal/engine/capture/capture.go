// Package capture writes rendered frames to PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Capture saves screenshots as <dir>/<prefix>_<timestamp>_<seq>.png.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
	create func(name string) (io.WriteCloser, error)
	seq    int
}

// New creates a capture handler writing into dir.
func New(dir, prefix string) *Capture {
	return &Capture{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
		create: createFile,
	}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// FromGLPixels converts bottom-up RGBA rows (as read back from GL) to a top-down image.
func FromGLPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePixels writes a GL read-back frame and returns the file path.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromGLPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img)
}

// Save encodes img as PNG and returns the file path.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.nextFilename()
	file, err := c.create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

func (c *Capture) nextFilename() string {
	c.seq++
	name := fmt.Sprintf("%s_%s_%03d.png", c.prefix, c.now().Format("2006-01-02_15-04-05"), c.seq)
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}
