// Package texture decodes images for upload as OpenGL textures.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // PNG decoder registration
	"io"
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode reads a PNG or BMP image and returns it as RGBA with the first row
// at the bottom, the order OpenGL expects.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}
	rgba := ToRGBA(img)
	FlipVertical(rgba)
	return rgba, nil
}

// Load decodes the image file at path.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
