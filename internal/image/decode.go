package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format (first frame only)
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"    // Register BMP format
	_ "golang.org/x/image/tiff"   // Register TIFF format
	_ "golang.org/x/image/webp"   // Register WebP format

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/compression"
)

// Decode turns raw file bytes into a pixel buffer. gzip, xz and bzip2
// wrapped files are unwrapped first. source only labels errors.
// Any failure to make sense of the bytes is a *colour.DecodeError.
func Decode(data []byte, source string) (*colour.Image, error) {
	if len(data) == 0 {
		return nil, &colour.DecodeError{Source: source, Err: fmt.Errorf("no image data")}
	}

	raw, _, err := compression.Decompress(data, compression.DefaultMaxSize)
	if err != nil {
		return nil, &colour.DecodeError{Source: source, Err: err}
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &colour.DecodeError{Source: source, Err: fmt.Errorf("format %q: %w", format, err)}
	}

	out, err := colour.FromImage(img)
	if err != nil {
		return nil, &colour.DecodeError{Source: source, Err: err}
	}
	return out, nil
}

// DecodeConfig reads only the image header, unwrapping compression first.
func DecodeConfig(data []byte) (image.Config, string, error) {
	raw, _, err := compression.Decompress(data, compression.DefaultMaxSize)
	if err != nil {
		return image.Config{}, "", err
	}
	return image.DecodeConfig(bytes.NewReader(raw))
}
