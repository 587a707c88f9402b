package tier

import (
	"math"
	"sort"

	"github.com/katalvlaran/timegrid/core"
)

// Sample is one time-stamped row of measurement values, e.g. a pitch or
// intensity track row.
type Sample struct {
	Time   float64
	Values []float64
}

// IntervalSamples pairs one labeled interval with the samples falling
// inside it.
type IntervalSamples struct {
	Entry   core.Interval
	Samples []Sample
}

// GetValuesInIntervals returns, for every interval in the tier, the
// samples whose time lies inside it (edges inclusive). Samples need not
// be sorted.
func (t *IntervalTier) GetValuesInIntervals(samples []Sample) []IntervalSamples {
	sorted := sortedSamples(samples)
	out := make([]IntervalSamples, 0, len(t.entries))
	for _, iv := range t.entries {
		lo := sort.Search(len(sorted), func(i int) bool { return sorted[i].Time >= iv.Start })
		var inside []Sample
		for _, s := range sorted[lo:] {
			if s.Time > iv.End && !core.Isclose(s.Time, iv.End) {
				break
			}
			inside = append(inside, s)
		}
		out = append(out, IntervalSamples{Entry: iv, Samples: inside})
	}
	return out
}

// GetValuesAtPoints returns one row per point in the tier: the sample
// taken at (tolerantly) the point's time, or with fuzzy matching the
// sample nearest to it. Without fuzzy matching, points with no sample
// at their time yield a valueless row carrying only the point's time.
func (t *PointTier) GetValuesAtPoints(samples []Sample, fuzzy bool) []Sample {
	sorted := sortedSamples(samples)
	out := make([]Sample, 0, len(t.entries))
	for _, p := range t.entries {
		s, ok := sampleAt(sorted, p.Time, fuzzy)
		if ok {
			out = append(out, Sample{Time: s.Time, Values: s.Values})
		} else {
			out = append(out, Sample{Time: p.Time})
		}
	}
	return out
}

func sortedSamples(samples []Sample) []Sample {
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return sorted
}

// sampleAt locates the sample at time t: an exact (tolerant) hit, or
// the nearest one when fuzzy.
func sampleAt(sorted []Sample, t float64, fuzzy bool) (Sample, bool) {
	if len(sorted) == 0 {
		return Sample{}, false
	}
	i := sort.Search(len(sorted), func(j int) bool { return sorted[j].Time >= t })
	best, found := Sample{}, false
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(sorted) {
			continue
		}
		if !found || math.Abs(sorted[j].Time-t) < math.Abs(best.Time-t) {
			best, found = sorted[j], true
		}
	}
	if !found {
		return Sample{}, false
	}
	if fuzzy || core.Isclose(best.Time, t) {
		return best, true
	}
	return Sample{}, false
}
