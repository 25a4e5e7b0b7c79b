// Package colour provides dominant colour extraction and palette generation.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA implements color.Color so an RGB can be handed to the image packages.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// Distance returns the Euclidean distance between two colours in RGB space.
func (rgb RGB) Distance(other RGB) float64 {
	dr := float64(rgb.R) - float64(other.R)
	dg := float64(rgb.G) - float64(other.G)
	db := float64(rgb.B) - float64(other.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ToRGB converts a color.Color to RGB.
// Translucent colours come back premultiplied, i.e. composited onto black.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
