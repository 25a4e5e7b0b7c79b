package colour

import (
	"fmt"
	"math"
)

// CMYK holds cyan, magenta, yellow and key (black) as whole percentages 0-100.
type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

// String returns the CMYK colour as "c,m,y,k".
func (c CMYK) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.C, c.M, c.Y, c.K)
}

// CMYKFromRGB converts an RGB colour to naive (profile-less) CMYK percentages.
// Each channel is rounded half away from zero.
func CMYKFromRGB(rgb RGB) CMYK {
	// Pure black would divide by zero below.
	if rgb.R == 0 && rgb.G == 0 && rgb.B == 0 {
		return CMYK{K: 100}
	}

	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	c := (1 - r - k) / (1 - k)
	m := (1 - g - k) / (1 - k)
	y := (1 - b - k) / (1 - k)

	return CMYK{
		C: percent(c),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// percent scales a [0,1] fraction to a whole percentage clamped to [0,100].
func percent(v float64) int {
	p := int(math.Round(v * 100))
	return max(0, min(100, p))
}
