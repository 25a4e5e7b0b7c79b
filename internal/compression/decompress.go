// Package compression unwraps single-stream compressed image files
// (photo.png.gz, scan.tiff.xz, ...) before they reach the decoder.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/swatch/internal/security"
)

// DefaultMaxSize caps the decompressed size of a single image.
const DefaultMaxSize = 256 * 1024 * 1024

// Format identifies a compression wrapper.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

// Detect reports the compression wrapper of data from its magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(data, xzMagic):
		return FormatXz
	case bytes.HasPrefix(data, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// Decompress unwraps data if it is gzip, xz or bzip2 compressed, refusing
// to produce more than maxSize bytes. Uncompressed data is returned as-is.
func Decompress(data []byte, maxSize int64) ([]byte, Format, error) {
	format := Detect(data)

	var r io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	default:
		return data, FormatNone, nil
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	out, err := io.ReadAll(security.NewLimitedReader(r, maxSize))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s data: %w", format, err)
	}
	return out, format, nil
}
