package output

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

// Thumbnail scales img so that its longer side is maxSize pixels, keeping the
// aspect ratio. Images already within maxSize are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxSize && uint(bounds.Dy()) <= maxSize {
		return img
	}
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}

// EncodeThumbnail writes a PNG preview of img to w
func EncodeThumbnail(w io.Writer, img image.Image, maxSize uint) error {
	if err := png.Encode(w, Thumbnail(img, maxSize)); err != nil {
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	return nil
}
