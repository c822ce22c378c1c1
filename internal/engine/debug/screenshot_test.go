package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFrameImageFlipsRows(t *testing.T) {
	// Two rows, bottom row first as OpenGL returns them.
	pixels := []byte{
		1, 1, 1, 255, 2, 2, 2, 255,
		9, 9, 9, 255, 8, 8, 8, 255,
	}
	img, err := FrameImage(pixels, 2, 2)
	if err != nil {
		t.Fatalf("FrameImage: %v", err)
	}
	if got := img.RGBAAt(0, 0).R; got != 9 {
		t.Errorf("top-left = %d, want 9", got)
	}
	if got := img.RGBAAt(1, 1).R; got != 2 {
		t.Errorf("bottom-right = %d, want 2", got)
	}
}

func TestFrameImageErrors(t *testing.T) {
	tests := []struct {
		name   string
		pixels []byte
		w, h   int
	}{
		{"empty frame", nil, 0, 0},
		{"short buffer", make([]byte, 12), 2, 2},
		{"long buffer", make([]byte, 20), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FrameImage(tt.pixels, tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "seraph")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	path, err := s.Save(img)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "seraph_2026-01-02_03-04-05.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestFilenameUsesPrefix(t *testing.T) {
	s := NewScreenshots("", "wing")
	if name := s.Filename(); !strings.HasPrefix(name, "wing_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("Filename() = %q", name)
	}
}
