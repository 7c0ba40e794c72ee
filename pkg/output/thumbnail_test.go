package output

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxSize       uint
		wantW, wantH  int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 100, 300, 150, 50, 150},
		{"already small", 64, 32, 128, 64, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			b := Thumbnail(img, tt.maxSize).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("thumbnail is %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestEncodeThumbnail(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeThumbnail(&buf, image.NewRGBA(image.Rect(0, 0, 200, 100)), 50); err != nil {
		t.Fatalf("EncodeThumbnail error: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("thumbnail is %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}
