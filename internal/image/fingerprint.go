package image

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Fingerprint returns a 16 hex character xxHash64 of the image dimensions
// and pixels. Identical pixel buffers always share a fingerprint, so it
// can key results of the deterministic pipeline.
func Fingerprint(img *colour.Image) string {
	h := xxhash.New()

	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(img.Width()))
	binary.BigEndian.PutUint64(dims[8:], uint64(img.Height()))
	_, _ = h.Write(dims[:])

	row := make([]byte, 0, img.Width()*3)
	for y := range img.Height() {
		row = row[:0]
		for x := range img.Width() {
			p := img.At(x, y)
			row = append(row, p.R, p.G, p.B)
		}
		_, _ = h.Write(row)
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
