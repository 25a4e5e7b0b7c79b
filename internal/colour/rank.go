package colour

import (
	"slices"
)

const (
	// DefaultPaletteSize is the number of colours returned when none is configured.
	DefaultPaletteSize = 5

	// DefaultMergeThreshold is the RGB distance under which two candidates
	// are treated as shades of the same colour.
	DefaultMergeThreshold = 24.0
)

// Cluster is a ranked palette candidate: one or more buckets folded together.
type Cluster struct {
	Count  int
	Weight float64

	sumR, sumG, sumB uint64
	order            int
}

// Centroid returns the count-weighted mean colour of every bucket in the cluster.
func (c Cluster) Centroid() RGB {
	return meanRGB(c.sumR, c.sumG, c.sumB, c.Count)
}

// absorb folds other into c. The founding order of c is kept.
func (c *Cluster) absorb(other Cluster) {
	c.Count += other.Count
	c.sumR += other.sumR
	c.sumG += other.sumG
	c.sumB += other.sumB
}

func clusterFromBucket(b Bucket) Cluster {
	return Cluster{
		Count: b.Count,
		sumR:  b.SumR,
		sumG:  b.SumG,
		sumB:  b.SumB,
		order: b.Order(),
	}
}

// Rank selects up to k representative colours from buckets.
//
// Buckets are visited by descending count, ties in first-seen order. A
// candidate closer than mergeThreshold to an admitted cluster is folded
// into the nearest one instead of being admitted. Scanning stops once k
// clusters are admitted or the buckets run out. The result is ordered by
// descending weight, ties by founding bucket order, and carries weights
// relative to total.
func Rank(buckets []Bucket, total, k int, mergeThreshold float64) ([]Cluster, error) {
	if k < 1 {
		return nil, &InvalidConfigError{Field: "paletteSize", Value: k, Reason: "must be at least 1"}
	}
	if mergeThreshold < 0 {
		return nil, &InvalidConfigError{Field: "mergeThreshold", Value: mergeThreshold, Reason: "must not be negative"}
	}
	if total <= 0 || len(buckets) == 0 {
		return nil, &EmptyImageError{}
	}

	sorted := slices.Clone(buckets)
	slices.SortStableFunc(sorted, func(a, b Bucket) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return a.Order() - b.Order()
	})

	clusters := make([]Cluster, 0, k)
	for _, b := range sorted {
		if len(clusters) >= k {
			break
		}

		candidate := clusterFromBucket(b)
		target := nearestWithin(clusters, candidate.Centroid(), mergeThreshold, -1)
		if target < 0 {
			clusters = append(clusters, candidate)
			continue
		}

		clusters[target].absorb(candidate)
		clusters = consolidate(clusters, target, mergeThreshold)
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return a.order - b.order
	})

	for i := range clusters {
		clusters[i].Weight = float64(clusters[i].Count) / float64(total)
	}

	return clusters, nil
}

// nearestWithin returns the index of the cluster closest to c that is
// strictly closer than threshold, skipping index skip. Ties go to the
// earlier-admitted cluster. Returns -1 when none qualifies.
func nearestWithin(clusters []Cluster, c RGB, threshold float64, skip int) int {
	best := -1
	bestDist := threshold
	for i := range clusters {
		if i == skip {
			continue
		}
		d := clusters[i].Centroid().Distance(c)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// consolidate re-checks a cluster whose centroid moved after absorbing a
// candidate. Any admitted cluster now within threshold is folded into
// whichever of the pair was founded first, repeating until no pair of
// clusters is closer than threshold.
func consolidate(clusters []Cluster, moved int, threshold float64) []Cluster {
	for {
		other := nearestWithin(clusters, clusters[moved].Centroid(), threshold, moved)
		if other < 0 {
			return clusters
		}

		keep, drop := moved, other
		if clusters[other].order < clusters[moved].order {
			keep, drop = other, moved
		}
		clusters[keep].absorb(clusters[drop])
		clusters = slices.Delete(clusters, drop, drop+1)
		if keep > drop {
			keep--
		}
		moved = keep
	}
}
