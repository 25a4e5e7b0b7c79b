package colour

import (
	"testing"
)

var (
	red   = RGB{R: 255}
	green = RGB{G: 255}
	blue  = RGB{B: 255}
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
)

// mustImage builds an Image or fails the test.
func mustImage(t *testing.T, width, height int, pix []RGB) *Image {
	t.Helper()
	img, err := NewImage(width, height, pix)
	if err != nil {
		t.Fatalf("NewImage(%d, %d) error = %v", width, height, err)
	}
	return img
}

// solidImage builds a width x height image of a single colour.
func solidImage(t *testing.T, width, height int, c RGB) *Image {
	t.Helper()
	pix := make([]RGB, width*height)
	for i := range pix {
		pix[i] = c
	}
	return mustImage(t, width, height, pix)
}

// runs expands (colour, count) pairs into a single row of pixels.
func runs(pairs ...any) []RGB {
	var pix []RGB
	for i := 0; i < len(pairs); i += 2 {
		c := pairs[i].(RGB)
		n := pairs[i+1].(int)
		for range n {
			pix = append(pix, c)
		}
	}
	return pix
}
