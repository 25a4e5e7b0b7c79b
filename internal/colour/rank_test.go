package colour

import (
	"errors"
	"slices"
	"testing"
)

func quantizeRow(t *testing.T, pix []RGB) []Bucket {
	t.Helper()
	buckets, err := Quantize(mustImage(t, len(pix), 1, pix), DefaultQuantizationLevels)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	return buckets
}

func TestRankOrdersByCountThenFirstSeen(t *testing.T) {
	pix := runs(green, 2, blue, 3, red, 2)
	clusters, err := Rank(quantizeRow(t, pix), len(pix), 5, DefaultMergeThreshold)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []RGB{blue, green, red}
	if len(clusters) != len(want) {
		t.Fatalf("Rank() returned %d clusters, want %d", len(clusters), len(want))
	}
	for i, c := range clusters {
		if c.Centroid() != want[i] {
			t.Errorf("cluster %d = %v, want %v", i, c.Centroid(), want[i])
		}
	}
}

func TestRankTiesFollowScanOrderNotSliceOrder(t *testing.T) {
	pix := runs(green, 2, red, 2, blue, 2)
	buckets := quantizeRow(t, pix)
	slices.Reverse(buckets)

	clusters, err := Rank(buckets, len(pix), 5, DefaultMergeThreshold)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []RGB{green, red, blue}
	if len(clusters) != len(want) {
		t.Fatalf("Rank() returned %d clusters, want %d", len(clusters), len(want))
	}
	for i, c := range clusters {
		if c.Centroid() != want[i] {
			t.Errorf("cluster %d = %v, want %v", i, c.Centroid(), want[i])
		}
	}
}

func TestRankFoldsCloseShades(t *testing.T) {
	// Different buckets (200>>3=25, 210>>3=26) but only ~11.4 apart.
	pix := runs(RGB{R: 200, G: 10, B: 10}, 10, RGB{R: 210, G: 15, B: 12}, 5)
	clusters, err := Rank(quantizeRow(t, pix), len(pix), 5, DefaultMergeThreshold)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("Rank() returned %d clusters, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Count != 15 || c.Weight != 1 {
		t.Errorf("cluster count = %d weight = %v, want 15 and 1", c.Count, c.Weight)
	}
	// (2000+1050)/15, (100+75)/15, (100+60)/15
	if got := c.Centroid(); got != (RGB{R: 203, G: 12, B: 11}) {
		t.Errorf("Centroid() = %v, want rgb(203, 12, 11)", got)
	}
}

func TestRankConsolidatesAfterFold(t *testing.T) {
	a := RGB{R: 100, G: 100, B: 100}
	b := RGB{R: 130, G: 100, B: 100} // 30 from a, admitted
	c := RGB{R: 116, G: 100, B: 100} // nearer b, pulls b to 123 which is 23 from a
	pix := runs(a, 10, b, 8, c, 7)

	clusters, err := Rank(quantizeRow(t, pix), len(pix), 5, DefaultMergeThreshold)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("Rank() returned %d clusters, want 1: %+v", len(clusters), clusters)
	}
	if clusters[0].Count != 25 {
		t.Errorf("Count = %d, want 25", clusters[0].Count)
	}
	// (1000+1040+812)/25 = 114.08
	if got := clusters[0].Centroid(); got != (RGB{R: 114, G: 100, B: 100}) {
		t.Errorf("Centroid() = %v, want rgb(114, 100, 100)", got)
	}
}

func TestRankStopsAtK(t *testing.T) {
	pix := runs(red, 4, green, 3, blue, 2, white, 1)
	clusters, err := Rank(quantizeRow(t, pix), len(pix), 2, DefaultMergeThreshold)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("Rank() returned %d clusters, want 2", len(clusters))
	}
	total := clusters[0].Weight + clusters[1].Weight
	if total != 0.7 {
		t.Errorf("total weight = %v, want 0.7", total)
	}
}

func TestRankZeroThresholdNeverMerges(t *testing.T) {
	pix := runs(RGB{R: 8}, 1, RGB{R: 16}, 1, RGB{R: 24}, 1)
	clusters, err := Rank(quantizeRow(t, pix), len(pix), 5, 0)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(clusters) != 3 {
		t.Errorf("Rank() returned %d clusters, want 3", len(clusters))
	}
}

func TestRankErrors(t *testing.T) {
	buckets := quantizeRow(t, []RGB{red})

	tests := []struct {
		name      string
		buckets   []Bucket
		total     int
		k         int
		threshold float64
		wantEmpty bool
	}{
		{name: "zero k", buckets: buckets, total: 1, k: 0, threshold: 24},
		{name: "negative threshold", buckets: buckets, total: 1, k: 1, threshold: -1},
		{name: "no pixels", buckets: nil, total: 0, k: 1, threshold: 24, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.buckets, tt.total, tt.k, tt.threshold)
			if tt.wantEmpty {
				if !errors.Is(err, ErrEmptyImage) {
					t.Errorf("Rank() error = %v, want ErrEmptyImage", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Rank() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
