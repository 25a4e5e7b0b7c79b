package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid truecolour block of width cells for c.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a swatch with text centred on it. The text is
// black or white, whichever contrasts better with c.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg uint8 = 255
	if relativeLuminance(c) > 0.5 {
		fg = 0
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix)

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColour + fgColour + displayText + ansiReset
}

// relativeLuminance returns the WCAG 2.0 relative luminance in [0,1].
func relativeLuminance(rgb RGB) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255.0
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(rgb.R) + 0.7152*lin(rgb.G) + 0.0722*lin(rgb.B)
}
