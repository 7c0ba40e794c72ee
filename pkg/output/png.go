package output

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
)

// ToRGBA converts a linear colour to an 8-bit pixel with gamma 2 correction.
// Components are clamped to [0, 1] before scaling by 255.99.
func ToRGBA(colour core.Vec3) color.RGBA {
	c := colour.Clamp(0, 1).Sqrt()
	return color.RGBA{
		R: uint8(255.99 * c.X),
		G: uint8(255.99 * c.Y),
		B: uint8(255.99 * c.Z),
		A: 255,
	}
}

// ToImage converts a frame to an image. Frame row 0 is the bottom of the
// picture, so rows are flipped on the way out.
func ToImage(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x, colour := range frame.Row(y) {
			img.SetRGBA(x, frame.Height-1-y, ToRGBA(colour))
		}
	}
	return img
}

// EncodePNG writes the frame to w as a PNG
func EncodePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, ToImage(frame)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// PNGBytes returns the PNG encoding of the frame
func PNGBytes(frame *renderer.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG saves the frame to path, creating parent directories as needed
func WritePNG(path string, frame *renderer.Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := EncodePNG(file, frame); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FrameFilename is the file name used for frame n of an animation
func FrameFilename(n int) string {
	return fmt.Sprintf("frame%d.png", n)
}
