package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/swatch/internal/colour"
)

func testPalette() *colour.Palette {
	return colour.NewPalette([]colour.Entry{
		colour.NewEntry(colour.RGB{R: 255}, 0.75),
		colour.NewEntry(colour.RGB{B: 255}, 0.25),
	})
}

func TestFormatPaletteLines(t *testing.T) {
	tests := []struct {
		format string
		source string
		want   string
	}{
		{FormatHex, "", "#ff0000\n#0000ff\n"},
		{FormatRGB, "", "255,0,0\n0,0,255\n"},
		{FormatCMYK, "", "0,100,100,0\n100,100,0,0\n"},
		{FormatHex, "a.png", "# a.png\n#ff0000\n#0000ff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.source, func(t *testing.T) {
			got, err := formatPalette(testPalette(), tt.source, tt.format, false)
			if err != nil {
				t.Fatalf("formatPalette() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("formatPalette() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPaletteText(t *testing.T) {
	got, err := formatPalette(testPalette(), "photo.jpg", FormatText, false)
	if err != nil {
		t.Fatalf("formatPalette() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	want := []string{
		"photo.jpg",
		"#  HEX      RGB           CMYK               WEIGHT",
		"-  -------  ------------  -----------------  ------",
		"1  #ff0000  RGB: 255,0,0  CMYK: 0,100,100,0   75.0%",
		"2  #0000ff  RGB: 0,0,255  CMYK: 100,100,0,0   25.0%",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatPalettePreview(t *testing.T) {
	for _, format := range []string{FormatText, FormatHex} {
		got, err := formatPalette(testPalette(), "", format, true)
		if err != nil {
			t.Fatalf("formatPalette(%s) error = %v", format, err)
		}
		if !strings.Contains(got, "\033[48;2;255;0;0m") {
			t.Errorf("formatPalette(%s) missing red swatch: %q", format, got)
		}
		if !strings.Contains(got, "\033[48;2;0;0;255m") {
			t.Errorf("formatPalette(%s) missing blue swatch: %q", format, got)
		}
	}
}

func TestFormatPaletteJSON(t *testing.T) {
	got, err := formatPalette(testPalette(), "photo.jpg", FormatJSON, false)
	if err != nil {
		t.Fatalf("formatPalette() error = %v", err)
	}

	var decoded colour.PaletteJSON
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, got)
	}

	want := colour.PaletteJSON{
		Source: "photo.jpg",
		Count:  2,
		Colors: testPalette().Entries,
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatPaletteEmpty(t *testing.T) {
	got, err := formatPalette(colour.NewPalette(nil), "", FormatHex, false)
	if err != nil {
		t.Fatalf("formatPalette() error = %v", err)
	}
	if got != "" {
		t.Errorf("formatPalette() = %q, want empty", got)
	}
}

func TestFormatPaletteUnsupported(t *testing.T) {
	if _, err := formatPalette(testPalette(), "", "yaml", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestPreviewEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{"always", true, false},
		{"never", false, false},
		{"auto", false, false}, // a buffer is not a terminal
		{"sometimes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := previewEnabled(tt.mode, &buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("previewEnabled() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("previewEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
