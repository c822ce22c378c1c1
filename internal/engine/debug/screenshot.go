// Package debug provides developer tooling for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/seraph/internal/engine/texture"
)

// Screenshots writes captured frames as timestamped PNG files.
type Screenshots struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// NewScreenshots returns a writer that saves into dir.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// FrameImage converts bottom-up RGBA pixels, as read back from the
// framebuffer, into a top-down image.
func FrameImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	texture.FlipVertical(img)
	return img, nil
}

// Filename returns the path the next capture will be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.Prefix, s.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(s.Dir, name)
}

// Save encodes img as PNG and returns the written path.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := s.Filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}
