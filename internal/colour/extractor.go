package colour

import (
	"fmt"
)

// Config holds the options recognised by Analyze.
type Config struct {
	// PaletteSize is the maximum number of colours returned (K).
	PaletteSize int `json:"paletteSize"`

	// MaxDimension bounds the longer image side before quantization.
	MaxDimension int `json:"maxDimension"`

	// QuantizationLevels is the number of bits kept per channel (1-8).
	QuantizationLevels int `json:"quantizationLevels"`

	// MergeThreshold is the RGB distance under which candidates are merged.
	MergeThreshold float64 `json:"mergeThreshold"`
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		PaletteSize:        DefaultPaletteSize,
		MaxDimension:       DefaultMaxDimension,
		QuantizationLevels: DefaultQuantizationLevels,
		MergeThreshold:     DefaultMergeThreshold,
	}
}

// Validate checks every option and returns the first *InvalidConfigError found.
func (c Config) Validate() error {
	if c.PaletteSize < 1 {
		return &InvalidConfigError{Field: "paletteSize", Value: c.PaletteSize, Reason: "must be at least 1"}
	}
	if c.MaxDimension < 1 {
		return &InvalidConfigError{Field: "maxDimension", Value: c.MaxDimension, Reason: "must be at least 1"}
	}
	if c.QuantizationLevels < 1 || c.QuantizationLevels > 8 {
		return &InvalidConfigError{Field: "quantizationLevels", Value: c.QuantizationLevels, Reason: "must be between 1 and 8"}
	}
	if c.MergeThreshold < 0 {
		return &InvalidConfigError{Field: "mergeThreshold", Value: c.MergeThreshold, Reason: "must not be negative"}
	}
	return nil
}

// Extractor defines the interface for dominant colour extraction.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	Extract(img *Image) (*Palette, error)
}

// DominantExtractor extracts palettes with grid bucketing and greedy merging.
// It holds only its configuration and is safe for concurrent use.
type DominantExtractor struct {
	config Config
}

// NewExtractor creates an extractor for cfg, validating it up front.
func NewExtractor(cfg Config) (*DominantExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DominantExtractor{config: cfg}, nil
}

// Extract implements Extractor.
func (e *DominantExtractor) Extract(img *Image) (*Palette, error) {
	return Analyze(img, e.config)
}

// Analyze extracts the dominant colours of img.
//
// The image is downsampled to cfg.MaxDimension, bucketed at
// cfg.QuantizationLevels bits per channel, and ranked into at most
// cfg.PaletteSize merged colours. The same image and config always yield
// an identical palette. On error no palette is returned.
func Analyze(img *Image, cfg Config) (*Palette, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Len() == 0 {
		var w, h int
		if img != nil {
			w, h = img.width, img.height
		}
		return nil, &EmptyImageError{Width: w, Height: h}
	}

	sampled, err := Downsample(img, cfg.MaxDimension)
	if err != nil {
		return nil, fmt.Errorf("downsample: %w", err)
	}

	buckets, err := Quantize(sampled, cfg.QuantizationLevels)
	if err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}

	clusters, err := Rank(buckets, sampled.Len(), cfg.PaletteSize, cfg.MergeThreshold)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	entries := make([]Entry, len(clusters))
	for i, c := range clusters {
		entries[i] = NewEntry(c.Centroid(), c.Weight)
	}

	return NewPalette(entries), nil
}
