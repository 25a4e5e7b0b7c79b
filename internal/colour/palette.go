package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one dominant colour in a palette.
type Entry struct {
	RGB    RGB     `json:"rgb"`
	Hex    string  `json:"hex"`
	CMYK   CMYK    `json:"cmyk"`
	Weight float64 `json:"weight"`
}

// NewEntry builds a palette entry, deriving the hex and CMYK forms from rgb.
func NewEntry(rgb RGB, weight float64) Entry {
	return Entry{
		RGB:    rgb,
		Hex:    rgb.Hex(),
		CMYK:   CMYKFromRGB(rgb),
		Weight: weight,
	}
}

// Palette is an ordered list of dominant colours, heaviest first.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a new Palette with the given entries.
func NewPalette(entries []Entry) *Palette {
	return &Palette{
		Entries: entries,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// TotalWeight returns the fraction of analysed pixels the palette represents.
func (p *Palette) TotalWeight() float64 {
	var total float64
	for _, e := range p.Entries {
		total += e.Weight
	}
	return total
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Source string  `json:"source,omitempty"`
	Count  int     `json:"count"`
	Colors []Entry `json:"colors"`
}

// ToJSON converts the palette to indented JSON. source is optional.
func (p *Palette) ToJSON(source string) ([]byte, error) {
	entries := p.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(PaletteJSON{
		Source: source,
		Count:  len(entries),
		Colors: entries,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", len(p.Entries))
	for i, e := range p.Entries {
		fmt.Fprintf(&b, "  %2d: %s  RGB: %d,%d,%d  CMYK: %s  (%.1f%%)\n",
			i+1, e.Hex, e.RGB.R, e.RGB.G, e.RGB.B, e.CMYK, e.Weight*100)
	}
	return b.String()
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
