package tier

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/timegrid/core"
)

// Set algebra over interval tiers. All four operations are
// value-producing and treat the receiver as the left operand.

// Union returns a new tier holding the intervals of both tiers,
// overlaps resolved by merging into one interval with joined labels.
// The result keeps t's name; its bounds cover both operands.
//
// Complexity: O(n*m) in the worst case of dense overlap.
func (t *IntervalTier) Union(other *IntervalTier) (*IntervalTier, error) {
	ret := t.Clone()
	for _, iv := range other.entries {
		if err := ret.InsertEntry(iv, InsertMerge, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	if other.minTime < ret.minTime {
		ret.minTime = other.minTime
	}
	if other.maxTime > ret.maxTime {
		ret.maxTime = other.maxTime
	}
	return ret, nil
}

// Intersection returns a new tier holding, for every pair of
// overlapping intervals across the two tiers, their common span labeled
// left-label + demarcator + right-label. The result is named
// "t.Name()-other.Name()" and keeps t's bounds.
func (t *IntervalTier) Intersection(other *IntervalTier, demarcator string) (*IntervalTier, error) {
	var entries []core.Interval
	for _, iv := range other.entries {
		for _, sub := range entriesInWindow(t.entries, iv.Start, iv.End, CropTruncated) {
			sub.Label = sub.Label + demarcator + iv.Label
			entries = append(entries, sub)
		}
	}
	name := fmt.Sprintf("%s-%s", t.name, other.name)
	return newIntervalTier(name, entries, t.minTime, t.maxTime)
}

// Difference returns a new tier holding what remains of t's intervals
// after every span covered by other is erased. Partially covered
// intervals keep their uncovered remainder.
func (t *IntervalTier) Difference(other *IntervalTier) (*IntervalTier, error) {
	ret := t.Clone()
	for _, iv := range other.entries {
		next, err := ret.EraseRegion(iv.Start, iv.End, EraseTruncate, false)
		if err != nil {
			return nil, err
		}
		ret = next
	}
	return ret, nil
}

// MergeLabels returns a new tier with t's spans kept verbatim but each
// label rewritten to "label(l1<demarcator>l2...)" where l1, l2, ... are
// the labels of other's intervals overlapping the span, in order.
func (t *IntervalTier) MergeLabels(other *IntervalTier, demarcator string) (*IntervalTier, error) {
	entries := make([]core.Interval, 0, len(t.entries))
	for _, iv := range t.entries {
		sub := entriesInWindow(other.entries, iv.Start, iv.End, CropTruncated)
		labels := make([]string, len(sub))
		for i, s := range sub {
			labels[i] = s.Label
		}
		iv.Label = fmt.Sprintf("%s(%s)", iv.Label, strings.Join(labels, demarcator))
		entries = append(entries, iv)
	}
	return newIntervalTier(t.name, entries, t.minTime, t.maxTime)
}
