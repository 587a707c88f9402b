package tier_test

import (
	"testing"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tier"
)

// syntheticIntervals builds n back-to-back one-decisecond intervals.
func syntheticIntervals(n int) []core.Interval {
	entries := make([]core.Interval, n)
	for i := range entries {
		entries[i] = core.Interval{Start: float64(i) * 0.1, End: float64(i+1) * 0.1, Label: "seg"}
	}
	return entries
}

// BenchmarkIntervalTier_Crop measures windowed cropping on a long tier.
func BenchmarkIntervalTier_Crop(b *testing.B) {
	it, err := tier.NewIntervalTier("bench", syntheticIntervals(10_000))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := it.Crop(100, 900, tier.CropTruncated, false); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkIntervalTier_Dejitter measures boundary snapping against a
// same-sized reference tier.
func BenchmarkIntervalTier_Dejitter(b *testing.B) {
	it, err := tier.NewIntervalTier("bench", syntheticIntervals(10_000))
	if err != nil {
		b.Fatal(err)
	}
	ref, err := tier.NewIntervalTier("ref", syntheticIntervals(10_000))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := it.Dejitter(ref, 0.01); err != nil {
			b.Fatal(err)
		}
	}
}
