package colour

// DefaultQuantizationLevels is the number of high bits kept per channel
// when bucketing (5 bits = 32 levels per channel, 32768 cells).
const DefaultQuantizationLevels = 5

// BucketKey is a colour with each channel truncated to the retained bits.
type BucketKey struct {
	R, G, B uint8
}

// Bucket accumulates the pixels that fall into one quantization cell.
type Bucket struct {
	Key   BucketKey
	Count int
	SumR  uint64
	SumG  uint64
	SumB  uint64

	// order is the position of the bucket's first pixel in the scan.
	order int
}

// Centroid returns the mean colour of the bucket, rounded to nearest.
func (b Bucket) Centroid() RGB {
	return meanRGB(b.SumR, b.SumG, b.SumB, b.Count)
}

// Order returns the first-seen position of the bucket in the quantization scan.
func (b Bucket) Order() int {
	return b.order
}

// Quantize buckets every pixel of img by its top bits per channel.
// Buckets are returned in first-seen (row-major) order.
func Quantize(img *Image, bits int) ([]Bucket, error) {
	if bits < 1 || bits > 8 {
		return nil, &InvalidConfigError{Field: "quantizationLevels", Value: bits, Reason: "must be between 1 and 8"}
	}
	if img == nil || img.Len() == 0 {
		return nil, &EmptyImageError{}
	}

	shift := uint(8 - bits)
	index := make(map[BucketKey]int)
	buckets := make([]Bucket, 0, 256)

	for _, p := range img.All() {
		key := BucketKey{R: p.R >> shift, G: p.G >> shift, B: p.B >> shift}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key, order: i})
		}
		b := &buckets[i]
		b.Count++
		b.SumR += uint64(p.R)
		b.SumG += uint64(p.G)
		b.SumB += uint64(p.B)
	}

	return buckets, nil
}

// meanRGB divides channel sums by count, rounding half up.
func meanRGB(sumR, sumG, sumB uint64, count int) RGB {
	if count <= 0 {
		return RGB{}
	}
	n := uint64(count)
	half := n / 2
	return RGB{
		R: uint8((sumR + half) / n),
		G: uint8((sumG + half) / n),
		B: uint8((sumB + half) / n),
	}
}
