package tier

import (
	"fmt"

	"github.com/katalvlaran/timegrid/core"
)

// Morph returns a new tier with t's interval durations replaced,
// pairwise and in order, by target's. Gaps between intervals keep their
// original lengths, so later intervals slide by the accumulated
// duration change. When keep is non-nil, only intervals whose label it
// accepts are retargeted; the rest keep their duration (their pairing
// position is still consumed).
//
// The two tiers must hold the same number of intervals; mismatched
// lengths fail with core.ErrSafeZip. MaxTime moves by the net duration
// change.
//
// Complexity: O(n).
func (t *IntervalTier) Morph(target *IntervalTier, keep func(label string) bool) (*IntervalTier, error) {
	if len(t.entries) != len(target.entries) {
		return nil, fmt.Errorf("%w: cannot pair %d intervals with %d in morph",
			core.ErrSafeZip, len(t.entries), len(target.entries))
	}
	if len(t.entries) == 0 {
		return t.Clone(), nil
	}
	adjust := 0.0
	entries := make([]core.Interval, 0, len(t.entries))
	for i, src := range t.entries {
		start := src.Start + adjust
		dur := src.Duration()
		if keep == nil || keep(src.Label) {
			retarget := target.entries[i].Duration()
			adjust += retarget - dur
			dur = retarget
		}
		entries = append(entries, core.Interval{Start: start, End: start + dur, Label: src.Label})
	}
	maxT := t.maxTime + (entries[len(entries)-1].End - t.entries[len(t.entries)-1].End)
	return newIntervalTier(t.name, entries, t.minTime, maxT)
}
