package colour

import (
	"fmt"
	"image"
)

// Image is an immutable, row-major RGB pixel buffer with a top-left origin.
type Image struct {
	width  int
	height int
	pix    []RGB
}

// NewImage builds an Image from a row-major pixel slice.
// The slice is copied so later changes by the caller are not observed.
func NewImage(width, height int, pix []RGB) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, &EmptyImageError{Width: width, Height: height}
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel buffer has %d pixels, want %d for %dx%d", len(pix), width*height, width, height)
	}
	buf := make([]RGB, len(pix))
	copy(buf, pix)
	return &Image{width: width, height: height, pix: buf}, nil
}

// FromImage converts any decoded image.Image into an Image.
// Alpha is flattened onto black.
func FromImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, &EmptyImageError{Width: width, Height: height}
	}

	pix := make([]RGB, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pix = append(pix, ToRGB(src.At(x, y)))
		}
	}
	return &Image{width: width, height: height, pix: pix}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Len returns the number of pixels.
func (img *Image) Len() int { return len(img.pix) }

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) RGB {
	return img.pix[y*img.width+x]
}

// All returns an iterator over every pixel in row-major order.
func (img *Image) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, p := range img.pix {
			if !yield(i, p) {
				return
			}
		}
	}
}

// toNRGBA renders the image into an opaque *image.NRGBA for resampling.
func (img *Image) toNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for i, p := range img.pix {
		off := i * 4
		dst.Pix[off] = p.R
		dst.Pix[off+1] = p.G
		dst.Pix[off+2] = p.B
		dst.Pix[off+3] = 255
	}
	return dst
}
