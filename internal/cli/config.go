package cli

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Environment variables that override the built-in extraction defaults.
// Command-line flags take precedence over these.
const (
	EnvColours        = "SWATCH_COLOURS"
	EnvMaxDimension   = "SWATCH_MAX_DIMENSION"
	EnvBits           = "SWATCH_BITS"
	EnvMergeThreshold = "SWATCH_MERGE_THRESHOLD"
	EnvCacheDir       = "SWATCH_CACHE_DIR"
)

// configFromEnv returns the default config with any SWATCH_* overrides applied.
func configFromEnv(getenv func(string) string) (colour.Config, error) {
	cfg := colour.DefaultConfig()

	ints := []struct {
		env string
		dst *int
	}{
		{EnvColours, &cfg.PaletteSize},
		{EnvMaxDimension, &cfg.MaxDimension},
		{EnvBits, &cfg.QuantizationLevels},
	}
	for _, v := range ints {
		raw := getenv(v.env)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, &colour.InvalidConfigError{Field: v.env, Value: raw, Reason: "not an integer"}
		}
		*v.dst = n
	}

	if raw := getenv(EnvMergeThreshold); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, &colour.InvalidConfigError{Field: EnvMergeThreshold, Value: raw, Reason: "not a number"}
		}
		cfg.MergeThreshold = f
	}

	return cfg, nil
}

// bindConfigFlags registers the extraction options on fs, using the
// current values in cfg as flag defaults.
func bindConfigFlags(fs *pflag.FlagSet, cfg *colour.Config) {
	fs.IntVarP(&cfg.PaletteSize, "colours", "c", cfg.PaletteSize, "number of colours to extract")
	fs.IntVar(&cfg.MaxDimension, "max-dimension", cfg.MaxDimension, "downsample so the longer side is at most this many pixels")
	fs.IntVar(&cfg.QuantizationLevels, "bits", cfg.QuantizationLevels, "bits kept per channel when bucketing (1-8)")
	fs.Float64Var(&cfg.MergeThreshold, "merge-threshold", cfg.MergeThreshold, "RGB distance under which colours are merged")
}
