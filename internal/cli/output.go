package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatHex  = "hex"
	FormatRGB  = "rgb"
	FormatCMYK = "cmyk"
	FormatJSON = "json"
)

// swatchWidth is the number of terminal cells per preview swatch.
const swatchWidth = 4

// ValidFormats returns the accepted --format values.
func ValidFormats() []string {
	return []string{FormatText, FormatHex, FormatRGB, FormatCMYK, FormatJSON}
}

// previewEnabled resolves --preview (auto, always, never) for w.
// auto enables swatches only when w is a terminal.
func previewEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", mode)
	}
}

// formatPalette renders a palette in the requested format.
func formatPalette(palette *colour.Palette, source, format string, showPreview bool) (string, error) {
	switch format {
	case FormatText, "":
		return formatText(palette, source, showPreview), nil
	case FormatHex:
		return formatLines(palette, source, showPreview, func(e colour.Entry) string { return e.Hex }), nil
	case FormatRGB:
		return formatLines(palette, source, showPreview, func(e colour.Entry) string {
			return fmt.Sprintf("%d,%d,%d", e.RGB.R, e.RGB.G, e.RGB.B)
		}), nil
	case FormatCMYK:
		return formatLines(palette, source, showPreview, func(e colour.Entry) string { return e.CMYK.String() }), nil
	case FormatJSON:
		jsonBytes, err := palette.ToJSON(source)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(ValidFormats(), ", "))
	}
}

// formatLines writes one value per entry, optionally prefixed with a swatch.
// A non-empty source is written first as a "# source" comment line.
func formatLines(palette *colour.Palette, source string, showPreview bool, value func(colour.Entry) string) string {
	var b strings.Builder
	if source != "" {
		fmt.Fprintf(&b, "# %s\n", source)
	}
	for _, e := range palette.All() {
		if showPreview {
			b.WriteString(colour.Swatch(e.RGB, swatchWidth))
			b.WriteString(" ")
		}
		b.WriteString(value(e))
		b.WriteString("\n")
	}
	return b.String()
}

// formatText renders the palette as a table with hex, RGB, CMYK and weight.
func formatText(palette *colour.Palette, source string, showPreview bool) string {
	table := NewTable([]string{"#", "HEX", "RGB", "CMYK", "WEIGHT"})
	table.SetAlign(0, AlignRight)
	table.SetAlign(4, AlignRight)
	for i, e := range palette.All() {
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			e.Hex,
			fmt.Sprintf("RGB: %d,%d,%d", e.RGB.R, e.RGB.G, e.RGB.B),
			"CMYK: " + e.CMYK.String(),
			fmt.Sprintf("%.1f%%", e.Weight*100),
		})
	}

	var b strings.Builder
	if source != "" {
		fmt.Fprintf(&b, "%s\n", source)
	}

	for i, line := range table.Lines() {
		if showPreview {
			// Header and separator get blank space where swatches go.
			if i < 2 {
				b.WriteString(strings.Repeat(" ", swatchWidth))
			} else {
				e := palette.Entries[i-2]
				label := strconv.Itoa(int(math.Round(e.Weight*100))) + "%"
				b.WriteString(colour.SwatchWithText(e.RGB, label, swatchWidth))
			}
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
