package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
)

// loaderOptions are the flags shared by commands that load images.
type loaderOptions struct {
	cache    bool
	cacheDir string
}

func (o loaderOptions) loader() image.Loader {
	return image.NewSmartLoader(image.SmartLoaderOptions{
		Cache:    o.cache,
		CacheDir: o.cacheDir,
	})
}

func bindLoaderFlags(cmd *cobra.Command, o *loaderOptions, getenv func(string) string) {
	cmd.Flags().BoolVar(&o.cache, "cache", false, "cache images fetched from URLs on disk")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", getenv(EnvCacheDir), "image cache directory (default: user cache dir)")
}

// extractOptions holds the flags of the extract command.
type extractOptions struct {
	*rootOptions
	loaderOptions

	config  colour.Config
	envErr  error
	format  string
	output  string
	preview string

	// newLoader is replaced in tests.
	newLoader func() image.Loader
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{rootOptions: root}
	opts.config, opts.envErr = configFromEnv(root.getenv)
	opts.newLoader = func() image.Loader { return opts.loaderOptions.loader() }

	cmd := &cobra.Command{
		Use:   "extract <image>...",
		Short: "Extract the dominant colours of one or more images",
		Long: `Extract the dominant colours of one or more images.

Each argument may be an image file, a directory (a random image inside it
is used), or an http(s) URL. Images may be gzip, xz or bzip2 compressed.
Several images are analysed concurrently and printed in argument order.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF, AVIF

Examples:
  # Extract 5 colours (default) from an image
  swatch extract photo.jpg

  # Extract 8 colours as JSON
  swatch extract -c 8 -f json photo.png

  # Print CMYK values for a batch of images
  swatch extract -f cmyk scans/*.tif

  # Fetch a remote image, caching it for later runs
  swatch extract --cache https://example.com/photo.jpg

  # Save the palette to a file
  swatch extract -o palette.txt photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	bindConfigFlags(cmd.Flags(), &opts.config)
	bindLoaderFlags(cmd, &opts.loaderOptions, root.getenv)
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format ("+strings.Join(ValidFormats(), ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.preview, "preview", "auto", "show colour swatches (auto, always, never)")

	return cmd
}

// extractResult is the outcome for one argument.
type extractResult struct {
	source  string
	palette *colour.Palette
	err     error
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, opts *extractOptions, args []string) error {
	if opts.envErr != nil {
		return opts.envErr
	}
	if err := opts.config.Validate(); err != nil {
		return err
	}
	if !slices.Contains(ValidFormats(), opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(ValidFormats(), ", "))
	}

	out := cmd.OutOrStdout()
	showPreview, err := previewEnabled(opts.preview, out)
	if err != nil {
		return err
	}
	if opts.output != "" && opts.preview != "always" {
		showPreview = false
	}

	logger := opts.logger.Named("extract")
	extractor, err := colour.NewExtractor(opts.config)
	if err != nil {
		return err
	}

	results := extractAll(cmd.Context(), opts, extractor, args)

	var (
		b    strings.Builder
		errs []error
	)
	for _, r := range results {
		if r.err != nil {
			logger.Error("extraction failed", "source", r.source, "error", r.err)
			errs = append(errs, fmt.Errorf("%s: %w", r.source, r.err))
			continue
		}
		logger.Debug("extracted palette", "source", r.source, "colours", r.palette.Len())

		source := ""
		if len(args) > 1 || opts.format == FormatJSON {
			source = r.source
		}
		text, err := formatPalette(r.palette, source, opts.format, showPreview)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		b.WriteString(text)
	}

	if opts.output != "" {
		logger.Debug("writing output", "path", opts.output)
		if err := os.WriteFile(opts.output, []byte(b.String()), 0o644); err != nil { // #nosec G306 - palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Fprint(out, b.String())
	}

	return errors.Join(errs...)
}

// extractAll analyses every argument concurrently. Results keep argument order.
func extractAll(ctx context.Context, opts *extractOptions, extractor colour.Extractor, args []string) []extractResult {
	if ctx == nil {
		ctx = context.Background()
	}

	loader := opts.newLoader()
	results := make([]extractResult, len(args))

	var wg sync.WaitGroup
	for i, arg := range args {
		wg.Go(func() {
			results[i] = extractOne(ctx, loader, extractor, arg)
		})
	}
	wg.Wait()

	return results
}

func extractOne(ctx context.Context, loader image.Loader, extractor colour.Extractor, arg string) extractResult {
	res := extractResult{source: arg}

	path, err := image.ResolveImagePath(arg)
	if err != nil {
		res.err = err
		return res
	}
	res.source = path

	img, err := loader.Load(ctx, path)
	if err != nil {
		res.err = err
		return res
	}

	res.palette, res.err = extractor.Extract(img)
	return res
}
