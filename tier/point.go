package tier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/timegrid/core"
)

// PointTier holds an ordered sequence of labeled instants within
// [MinTime, MaxTime]. No two points share a time.
//
// The zero value is not usable; build tiers with NewPointTier.
type PointTier struct {
	name    string
	entries []core.Point
	minTime float64
	maxTime float64
}

// NewPointTier builds a point tier from name and entries.
//
// Entries are copied, label-stripped, and sorted by time. Construction
// fails with core.ErrState when two points share a time (tolerantly),
// and with core.ErrTimelessTier when no entries exist and bounds were
// not given via WithMinTime/WithMaxTime. Explicit bounds expand as
// needed to cover every entry.
func NewPointTier(name string, entries []core.Point, opts ...TierOption) (*PointTier, error) {
	var b tierBounds
	for _, o := range opts {
		o(&b)
	}
	times := make([]float64, len(entries))
	for i, p := range entries {
		times[i] = p.Time
	}
	minT, maxT, err := resolveBounds(name, b, times, times)
	if err != nil {
		return nil, err
	}
	return newPointTier(name, entries, minT, maxT)
}

// newPointTier normalizes entries and assembles the tier; every
// operation funnels its result through here.
func newPointTier(name string, entries []core.Point, minT, maxT float64) (*PointTier, error) {
	normalized := make([]core.Point, len(entries))
	for i, p := range entries {
		p.Label = strings.TrimSpace(p.Label)
		normalized[i] = p
	}
	sortPoints(normalized)
	for i := 1; i < len(normalized); i++ {
		if core.Isclose(normalized[i-1].Time, normalized[i].Time) {
			return nil, fmt.Errorf("%w: points %s and %s in tier %q share a time",
				core.ErrState, normalized[i-1], normalized[i], name)
		}
	}
	if len(normalized) > 0 {
		if normalized[0].Time < minT {
			minT = normalized[0].Time
		}
		if last := normalized[len(normalized)-1].Time; last > maxT {
			maxT = last
		}
	}
	return &PointTier{name: name, entries: normalized, minTime: minT, maxTime: maxT}, nil
}

func sortPoints(entries []core.Point) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
}

// Name returns the tier's name.
func (t *PointTier) Name() string { return t.name }

// MinTime returns the tier's lower bound.
func (t *PointTier) MinTime() float64 { return t.minTime }

// MaxTime returns the tier's upper bound.
func (t *PointTier) MaxTime() float64 { return t.maxTime }

// Len reports the number of points.
func (t *PointTier) Len() int { return len(t.entries) }

// Entries returns a copy of the point list, sorted by time.
func (t *PointTier) Entries() []core.Point {
	out := make([]core.Point, len(t.entries))
	copy(out, t.entries)
	return out
}

// Labels returns every point label in order.
func (t *PointTier) Labels() []string {
	out := make([]string, len(t.entries))
	for i, p := range t.entries {
		out[i] = p.Label
	}
	return out
}

// Clone returns an independent deep copy of the tier.
func (t *PointTier) Clone() *PointTier {
	return &PointTier{name: t.name, entries: t.Entries(), minTime: t.minTime, maxTime: t.maxTime}
}

// WithName returns a copy of the tier under a different name.
func (t *PointTier) WithName(name string) *PointTier {
	c := t.Clone()
	c.name = name
	return c
}

// Equal reports whether two point tiers carry the same name, bounds
// (tolerantly), and entries (tolerant times, exact labels).
func (t *PointTier) Equal(other *PointTier) bool {
	if other == nil || t.name != other.name || len(t.entries) != len(other.entries) {
		return false
	}
	if !core.Isclose(t.minTime, other.minTime) || !core.Isclose(t.maxTime, other.maxTime) {
		return false
	}
	for i := range t.entries {
		if !t.entries[i].Equal(other.entries[i]) {
			return false
		}
	}
	return true
}

// Timestamps returns every point time, ascending.
func (t *PointTier) Timestamps() []float64 {
	times := make([]float64, len(t.entries))
	for i, p := range t.entries {
		times[i] = p.Time
	}
	return uniqueSortedTimes(times)
}

// Find returns the indices of points whose label is accepted by the
// pattern under the given MatchMode.
func (t *PointTier) Find(pattern string, mode MatchMode) ([]int, error) {
	return findLabels(t.Labels(), pattern, mode)
}

// isTier seals the Tier interface.
func (t *PointTier) isTier() {}

// pointsInWindow returns the points lying in [start, end], inclusive on
// both edges. A point sitting exactly on a window edge belongs to the
// window.
func pointsInWindow(entries []core.Point, start, end float64) []core.Point {
	var kept []core.Point
	for _, p := range entries {
		if (p.Time > start || core.Isclose(p.Time, start)) &&
			(p.Time < end || core.Isclose(p.Time, end)) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Crop returns a new tier restricted to [start, end], inclusive on both
// edges. Points have no extent, so mode is validated and otherwise
// ignored. With rebaseToZero the result is shifted left by start.
func (t *PointTier) Crop(start, end float64, mode CropMode, rebaseToZero bool) (*PointTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: crop start (%s) must precede crop end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	kept := pointsInWindow(t.entries, start, end)
	minT, maxT := start, end
	if rebaseToZero {
		for i := range kept {
			kept[i] = kept[i].Shift(-start)
		}
		minT, maxT = 0, end-start
	}
	return newPointTier(t.name, kept, minT, maxT)
}

// EraseRegion returns a new tier with every point in [start, end]
// removed. Points have no extent, so the straddle mode is validated
// but otherwise ignored: matched points are always deleted. With
// doShrink points at or after end slide left by end-start and MaxTime
// shrinks accordingly.
func (t *PointTier) EraseRegion(start, end float64, mode EraseMode, doShrink bool) (*PointTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: erase start (%s) must precede erase end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	matches := pointsInWindow(t.entries, start, end)
	var entries []core.Point
	for _, p := range t.entries {
		if !pointIn(matches, p) {
			entries = append(entries, p)
		}
	}
	maxT := t.maxTime
	if doShrink {
		diff := end - start
		for i := range entries {
			if entries[i].Time >= end || core.Isclose(entries[i].Time, end) {
				entries[i] = entries[i].Shift(-diff)
			}
		}
		maxT = t.maxTime - diff
	}
	return newPointTier(t.name, entries, t.minTime, maxT)
}

// pointIn reports whether entry tolerantly equals any of the list.
func pointIn(list []core.Point, entry core.Point) bool {
	for _, p := range list {
		if p.Equal(entry) {
			return true
		}
	}
	return false
}

// InsertEntry adds one point to the tier in place. A collision is an
// existing point at (tolerantly) the same time; it is resolved per
// mode and reported per reporting, which must be core.ReportSilence or
// core.ReportWarning. The tier's bounds expand if the new entry
// protrudes.
func (t *PointTier) InsertEntry(entry core.Point, mode InsertMode, reporting core.ReportingMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if err := validateInsertReporting(reporting); err != nil {
		return err
	}
	entry.Label = strings.TrimSpace(entry.Label)
	var matches []core.Point
	for _, p := range t.entries {
		if core.Isclose(p.Time, entry.Time) {
			matches = append(matches, p)
		}
	}
	switch {
	case len(matches) == 0:
		t.entries = append(t.entries, entry)
	case mode == InsertReplace:
		t.removeAll(matches)
		t.entries = append(t.entries, entry)
	case mode == InsertMerge:
		merged := core.Point{Time: entry.Time, Label: matches[0].Label}
		for _, p := range matches[1:] {
			merged.Label += "-" + p.Label
		}
		merged.Label += "-" + entry.Label
		t.removeAll(matches)
		t.entries = append(t.entries, merged)
	default: // InsertError
		return pointCollision(t.name, entry.String(), matches)
	}
	sortPoints(t.entries)
	if t.entries[0].Time < t.minTime {
		t.minTime = t.entries[0].Time
	}
	if last := t.entries[len(t.entries)-1].Time; last > t.maxTime {
		t.maxTime = last
	}
	if len(matches) > 0 {
		_ = reporting.Report(pointCollision(t.name, entry.String(), matches))
	}
	return nil
}

// removeAll deletes every listed point from the tier.
func (t *PointTier) removeAll(matches []core.Point) {
	kept := t.entries[:0]
	for _, p := range t.entries {
		if !pointIn(matches, p) {
			kept = append(kept, p)
		}
	}
	t.entries = kept
}

// DeleteEntry removes the point tolerantly equal to entry, failing with
// core.ErrArgument when no such point exists.
func (t *PointTier) DeleteEntry(entry core.Point) error {
	for i, p := range t.entries {
		if p.Equal(entry) {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: entry %s not found in tier %q", core.ErrArgument, entry, t.name)
}

// InsertSpace returns a new tier with a gap of the given duration
// opened at start. Points after start slide right by duration; a point
// sitting exactly on the insertion point stays. Points have no extent
// and cannot straddle the insertion point, so mode is validated and
// otherwise ignored. MaxTime grows by duration.
func (t *PointTier) InsertSpace(start, duration float64, mode SpaceMode) (*PointTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: inserted duration (%s) must be positive",
			core.ErrArgument, core.FormatNum(duration))
	}
	entries := t.Entries()
	for i := range entries {
		if entries[i].Time > start && !core.Isclose(entries[i].Time, start) {
			entries[i] = entries[i].Shift(duration)
		}
	}
	return newPointTier(t.name, entries, t.minTime, t.maxTime+duration)
}

// EditTimestamps returns a new tier with every point shifted by offset.
// Points pushed past the tier's bounds are reported per reporting; the
// bounds then stretch to cover them. A point pushed below zero is
// dropped.
func (t *PointTier) EditTimestamps(offset float64, reporting core.ReportingMode) (*PointTier, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return nil, err
	}
	var entries []core.Point
	for _, p := range t.entries {
		nt := p.Time + offset
		if nt < t.minTime || nt > t.maxTime {
			if err := reporting.Report(&core.OutOfBoundsError{Time: nt, Min: t.minTime, Max: t.maxTime}); err != nil {
				return nil, err
			}
		}
		if nt < 0 {
			continue
		}
		entries = append(entries, core.Point{Time: nt, Label: p.Label})
	}
	newMin, newMax := t.minTime, t.maxTime
	if len(entries) > 0 {
		if entries[0].Time < newMin {
			newMin = entries[0].Time
		}
		if last := entries[len(entries)-1].Time; last > newMax {
			newMax = last
		}
	}
	return newPointTier(t.name, entries, newMin, newMax)
}

// Dejitter returns a new tier with every point snapped onto the nearest
// timestamp of the reference tier whenever the gap is at most
// maxDifference (inclusive). Points with no reference timestamp in
// range stay put.
func (t *PointTier) Dejitter(reference Tier, maxDifference float64) (*PointTier, error) {
	ref := reference.Timestamps()
	entries := make([]core.Point, len(t.entries))
	for i, p := range t.entries {
		p.Time = snapToNearest(p.Time, ref, maxDifference)
		entries[i] = p
	}
	return newPointTier(t.name, entries, t.minTime, t.maxTime)
}

// AppendTier returns a new tier holding t's points followed by other's
// points shifted to start where t ends. The result keeps t's name; its
// range spans both tiers back to back.
func (t *PointTier) AppendTier(other *PointTier) (*PointTier, error) {
	shifted, err := other.EditTimestamps(t.maxTime, core.ReportSilence)
	if err != nil {
		return nil, err
	}
	entries := make([]core.Point, 0, len(t.entries)+len(shifted.entries))
	entries = append(entries, t.entries...)
	entries = append(entries, shifted.entries...)
	return newPointTier(t.name, entries, t.minTime, t.maxTime+other.maxTime)
}

// Union returns a new tier holding the points of both tiers, time
// collisions resolved by label merge.
func (t *PointTier) Union(other *PointTier) (*PointTier, error) {
	ret := t.Clone()
	for _, p := range other.entries {
		if err := ret.InsertEntry(p, InsertMerge, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	if other.maxTime > ret.maxTime {
		ret.maxTime = other.maxTime
	}
	if other.minTime < ret.minTime {
		ret.minTime = other.minTime
	}
	return ret, nil
}

// Validate checks the tier invariants: strictly ascending times within
// the tier's bounds. Violations are reported per the given mode; the
// bool is false when any violation was found.
func (t *PointTier) Validate(reporting core.ReportingMode) (bool, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return false, err
	}
	valid := true
	report := func(condition error) error {
		valid = false
		return reporting.Report(condition)
	}
	for i, p := range t.entries {
		if i > 0 && t.entries[i-1].Time >= p.Time {
			if err := report(fmt.Errorf("%w: points %s and %s are out of order", core.ErrState, t.entries[i-1], p)); err != nil {
				return false, err
			}
		}
		if p.Time < t.minTime || p.Time > t.maxTime {
			if err := report(&core.OutOfBoundsError{Time: p.Time, Min: t.minTime, Max: t.maxTime}); err != nil {
				return false, err
			}
		}
	}
	return valid, nil
}
