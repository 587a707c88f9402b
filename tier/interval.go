package tier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/timegrid/core"
)

// IntervalTier holds an ordered, non-overlapping sequence of labeled
// time spans within [MinTime, MaxTime].
//
// The zero value is not usable; build tiers with NewIntervalTier.
type IntervalTier struct {
	name    string
	entries []core.Interval
	minTime float64
	maxTime float64
}

// NewIntervalTier builds an interval tier from name and entries.
//
// Entries are copied, label-stripped, and sorted by start time.
// Construction fails with core.ErrState when any entry has a
// non-positive duration or two entries overlap, and with
// core.ErrTimelessTier when no entries exist and bounds were not given
// via WithMinTime/WithMaxTime. Explicit bounds expand as needed to
// cover every entry.
//
// Complexity: O(n log n) for the sort, O(n) otherwise.
func NewIntervalTier(name string, entries []core.Interval, opts ...TierOption) (*IntervalTier, error) {
	var b tierBounds
	for _, o := range opts {
		o(&b)
	}
	starts := make([]float64, len(entries))
	ends := make([]float64, len(entries))
	for i, iv := range entries {
		starts[i], ends[i] = iv.Start, iv.End
	}
	minT, maxT, err := resolveBounds(name, b, starts, ends)
	if err != nil {
		return nil, err
	}
	return newIntervalTier(name, entries, minT, maxT)
}

// newIntervalTier normalizes entries and assembles the tier. Bounds
// still expand to cover out-of-range entries; every operation funnels
// its result through here so the ordering invariants hold everywhere.
func newIntervalTier(name string, entries []core.Interval, minT, maxT float64) (*IntervalTier, error) {
	normalized := make([]core.Interval, len(entries))
	for i, iv := range entries {
		if iv.Start >= iv.End {
			return nil, fmt.Errorf("%w: interval %s in tier %q ends at or before its start", core.ErrState, iv, name)
		}
		iv.Label = strings.TrimSpace(iv.Label)
		normalized[i] = iv
	}
	sortIntervals(normalized)
	for i := 1; i < len(normalized); i++ {
		prev, cur := normalized[i-1], normalized[i]
		if prev.End > cur.Start && !core.Isclose(prev.End, cur.Start) {
			return nil, fmt.Errorf("%w: intervals %s and %s in tier %q overlap", core.ErrState, prev, cur, name)
		}
	}
	if len(normalized) > 0 {
		if normalized[0].Start < minT {
			minT = normalized[0].Start
		}
		if last := normalized[len(normalized)-1].End; last > maxT {
			maxT = last
		}
	}
	return &IntervalTier{name: name, entries: normalized, minTime: minT, maxTime: maxT}, nil
}

func sortIntervals(entries []core.Interval) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Start != entries[j].Start {
			return entries[i].Start < entries[j].Start
		}
		return entries[i].End < entries[j].End
	})
}

// Name returns the tier's name.
func (t *IntervalTier) Name() string { return t.name }

// MinTime returns the tier's lower bound.
func (t *IntervalTier) MinTime() float64 { return t.minTime }

// MaxTime returns the tier's upper bound.
func (t *IntervalTier) MaxTime() float64 { return t.maxTime }

// Len reports the number of intervals.
func (t *IntervalTier) Len() int { return len(t.entries) }

// Entries returns a copy of the interval list, sorted by start time.
func (t *IntervalTier) Entries() []core.Interval {
	out := make([]core.Interval, len(t.entries))
	copy(out, t.entries)
	return out
}

// Labels returns every interval label in order.
func (t *IntervalTier) Labels() []string {
	out := make([]string, len(t.entries))
	for i, iv := range t.entries {
		out[i] = iv.Label
	}
	return out
}

// Clone returns an independent deep copy of the tier.
func (t *IntervalTier) Clone() *IntervalTier {
	return &IntervalTier{name: t.name, entries: t.Entries(), minTime: t.minTime, maxTime: t.maxTime}
}

// WithName returns a copy of the tier under a different name.
func (t *IntervalTier) WithName(name string) *IntervalTier {
	c := t.Clone()
	c.name = name
	return c
}

// Equal reports whether two interval tiers carry the same name, bounds
// (tolerantly), and entries (tolerant times, exact labels).
func (t *IntervalTier) Equal(other *IntervalTier) bool {
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

// Timestamps returns every distinct start and end time, ascending.
func (t *IntervalTier) Timestamps() []float64 {
	times := make([]float64, 0, 2*len(t.entries))
	for _, iv := range t.entries {
		times = append(times, iv.Start, iv.End)
	}
	return uniqueSortedTimes(times)
}

// Find returns the indices of intervals whose label is accepted by the
// pattern under the given MatchMode.
func (t *IntervalTier) Find(pattern string, mode MatchMode) ([]int, error) {
	return findLabels(t.Labels(), pattern, mode)
}

// isTier seals the Tier interface.
func (t *IntervalTier) isTier() {}

// entriesInWindow returns the intervals with positive overlap against
// (start, end), transformed per the crop mode: Strict drops partial
// overlaps, Lax keeps them whole, Truncated clips them to the window.
func entriesInWindow(entries []core.Interval, start, end float64, mode CropMode) []core.Interval {
	var kept []core.Interval
	for _, iv := range entries {
		if iv.End <= start || iv.Start >= end {
			continue
		}
		switch {
		case iv.Start >= start && iv.End <= end:
			kept = append(kept, iv)
		case mode == CropLax:
			kept = append(kept, iv)
		case mode == CropTruncated:
			clipped := iv
			if clipped.Start < start {
				clipped.Start = start
			}
			if clipped.End > end {
				clipped.End = end
			}
			kept = append(kept, clipped)
		}
	}
	return kept
}

// Crop returns a new tier restricted to the window [start, end).
// Partial overlaps are resolved by mode. With rebaseToZero the result
// is shifted so its range starts at zero; a Lax interval protruding
// left of the window drags the shift back with it so no entry goes
// negative.
//
// Complexity: O(n).
func (t *IntervalTier) Crop(start, end float64, mode CropMode, rebaseToZero bool) (*IntervalTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: crop start (%s) must precede crop end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	kept := entriesInWindow(t.entries, start, end, mode)
	minT, maxT := start, end
	if rebaseToZero {
		shift := start
		if len(kept) > 0 && kept[0].Start < shift {
			shift = kept[0].Start
		}
		for i := range kept {
			kept[i] = kept[i].Shift(-shift)
		}
		minT, maxT = 0, end-start
	}
	return newIntervalTier(t.name, kept, minT, maxT)
}

// EraseRegion returns a new tier with the window (start, end) blanked.
// Intervals straddling an edge are resolved by mode; EraseError fails
// on any overlap. With doShrink the time axis closes over the removed
// window: later entries slide left by end-start, the tier's MaxTime
// shrinks accordingly, and two same-label fragments meeting at the cut
// are fused back into one interval.
//
// Complexity: O(n log n).
func (t *IntervalTier) EraseRegion(start, end float64, mode EraseMode, doShrink bool) (*IntervalTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: erase start (%s) must precede erase end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	matches := entriesInWindow(t.entries, start, end, CropLax)
	var entries []core.Interval
	if len(matches) > 0 {
		if mode == EraseError {
			region := fmt.Sprintf("(%s, %s)", core.FormatNum(start), core.FormatNum(end))
			return nil, intervalCollision(t.name, region, matches)
		}
		for _, iv := range t.entries {
			if !intervalIn(matches, iv) {
				entries = append(entries, iv)
			}
		}
		if mode == EraseTruncate {
			if first := matches[0]; first.Start < start {
				entries = append(entries, core.Interval{Start: first.Start, End: start, Label: first.Label})
			}
			if last := matches[len(matches)-1]; last.End > end {
				entries = append(entries, core.Interval{Start: end, End: last.End, Label: last.Label})
			}
		}
	} else {
		entries = append(entries, t.entries...)
	}
	maxT := t.maxTime
	if doShrink {
		sortIntervals(entries)
		diff := end - start
		shifted := make([]core.Interval, 0, len(entries))
		for _, iv := range entries {
			if iv.Start >= end || core.Isclose(iv.Start, end) {
				iv = iv.Shift(-diff)
			}
			shifted = append(shifted, iv)
		}
		// A truncated pair left around the cut now touches; if the
		// labels agree it was one interval before the erase, so fuse it
		// back together.
		for i := 0; i+1 < len(shifted); i++ {
			l, r := shifted[i], shifted[i+1]
			if core.Isclose(l.End, start) && core.Isclose(r.Start, start) && l.Label == r.Label {
				fused := core.Interval{Start: l.Start, End: r.End, Label: l.Label}
				shifted = append(shifted[:i], append([]core.Interval{fused}, shifted[i+2:]...)...)
				break
			}
		}
		entries = shifted
		maxT = t.maxTime - diff
	}
	return newIntervalTier(t.name, entries, t.minTime, maxT)
}

// intervalIn reports whether entry tolerantly equals any of the list.
func intervalIn(list []core.Interval, entry core.Interval) bool {
	for _, iv := range list {
		if iv.Equal(entry) {
			return true
		}
	}
	return false
}

// InsertEntry adds one interval to the tier in place. Collisions with
// existing intervals are resolved per mode; resolved collisions are
// reported per reporting, which must be core.ReportSilence or
// core.ReportWarning (request fatal collisions via InsertError).
// The tier's bounds expand if the new entry protrudes.
func (t *IntervalTier) InsertEntry(entry core.Interval, mode InsertMode, reporting core.ReportingMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if err := validateInsertReporting(reporting); err != nil {
		return err
	}
	if entry.Start >= entry.End {
		return fmt.Errorf("%w: interval %s ends at or before its start", core.ErrState, entry)
	}
	entry.Label = strings.TrimSpace(entry.Label)
	matches := entriesInWindow(t.entries, entry.Start, entry.End, CropLax)
	switch {
	case len(matches) == 0:
		t.entries = append(t.entries, entry)
	case mode == InsertReplace:
		t.removeAll(matches)
		t.entries = append(t.entries, entry)
	case mode == InsertMerge:
		t.removeAll(matches)
		pool := make([]core.Interval, 0, len(matches)+1)
		pool = append(pool, matches...)
		pool = append(pool, entry)
		sortIntervals(pool)
		merged := core.Interval{Start: pool[0].Start, End: pool[0].End, Label: pool[0].Label}
		for _, iv := range pool[1:] {
			if iv.End > merged.End {
				merged.End = iv.End
			}
			merged.Label += "-" + iv.Label
		}
		t.entries = append(t.entries, merged)
	default: // InsertError
		return intervalCollision(t.name, entry.String(), matches)
	}
	sortIntervals(t.entries)
	if t.entries[0].Start < t.minTime {
		t.minTime = t.entries[0].Start
	}
	if last := t.entries[len(t.entries)-1].End; last > t.maxTime {
		t.maxTime = last
	}
	if len(matches) > 0 {
		_ = reporting.Report(intervalCollision(t.name, entry.String(), matches))
	}
	return nil
}

// removeAll deletes every listed interval from the tier.
func (t *IntervalTier) removeAll(matches []core.Interval) {
	kept := t.entries[:0]
	for _, iv := range t.entries {
		if !intervalIn(matches, iv) {
			kept = append(kept, iv)
		}
	}
	t.entries = kept
}

// DeleteEntry removes the interval tolerantly equal to entry, failing
// with core.ErrArgument when no such interval exists.
func (t *IntervalTier) DeleteEntry(entry core.Interval) error {
	for i, iv := range t.entries {
		if iv.Equal(entry) {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: entry %s not found in tier %q", core.ErrArgument, entry, t.name)
}

// InsertSpace returns a new tier with a silent gap of the given
// duration opened at start. Entries at or after start slide right by
// duration; an interval straddling start is resolved per mode. The
// tier's MaxTime grows by duration.
//
// Complexity: O(n).
func (t *IntervalTier) InsertSpace(start, duration float64, mode SpaceMode) (*IntervalTier, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: inserted duration (%s) must be positive",
			core.ErrArgument, core.FormatNum(duration))
	}
	var entries []core.Interval
	for _, iv := range t.entries {
		switch {
		case iv.End <= start:
			entries = append(entries, iv)
		case iv.Start >= start:
			entries = append(entries, iv.Shift(duration))
		default:
			switch mode {
			case SpaceStretch:
				entries = append(entries, core.Interval{Start: iv.Start, End: iv.End + duration, Label: iv.Label})
			case SpaceSplit:
				entries = append(entries,
					core.Interval{Start: iv.Start, End: start, Label: iv.Label},
					core.Interval{Start: start + duration, End: iv.End + duration, Label: iv.Label})
			case SpaceNoChange:
				entries = append(entries, iv)
			case SpaceError:
				point := fmt.Sprintf("insertion point %s", core.FormatNum(start))
				return nil, intervalCollision(t.name, point, []core.Interval{iv})
			}
		}
	}
	return newIntervalTier(t.name, entries, t.minTime, t.maxTime+duration)
}

// EditTimestamps returns a new tier with every interval shifted by
// offset. Intervals pushed past the tier's bounds are reported per
// reporting; the bounds then stretch to cover them. An interval pushed
// entirely below zero is dropped, one merely crossing zero is clamped
// to start at zero.
//
// Complexity: O(n).
func (t *IntervalTier) EditTimestamps(offset float64, reporting core.ReportingMode) (*IntervalTier, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return nil, err
	}
	var entries []core.Interval
	for _, iv := range t.entries {
		ns, ne := iv.Start+offset, iv.End+offset
		if ns < t.minTime {
			if err := reporting.Report(&core.OutOfBoundsError{Time: ns, Min: t.minTime, Max: t.maxTime}); err != nil {
				return nil, err
			}
		}
		if ne > t.maxTime {
			if err := reporting.Report(&core.OutOfBoundsError{Time: ne, Min: t.minTime, Max: t.maxTime}); err != nil {
				return nil, err
			}
		}
		if ne <= 0 {
			continue
		}
		if ns < 0 {
			ns = 0
		}
		entries = append(entries, core.Interval{Start: ns, End: ne, Label: iv.Label})
	}
	newMin, newMax := t.minTime, t.maxTime
	if len(entries) > 0 {
		if entries[0].Start < newMin {
			newMin = entries[0].Start
		}
		if last := entries[len(entries)-1].End; last > newMax {
			newMax = last
		}
	}
	return newIntervalTier(t.name, entries, newMin, newMax)
}

// Dejitter returns a new tier with every boundary snapped onto the
// nearest timestamp of the reference tier whenever the gap is at most
// maxDifference (inclusive). Boundaries with no reference timestamp in
// range stay put.
//
// Complexity: O(n log m) for m reference timestamps.
func (t *IntervalTier) Dejitter(reference Tier, maxDifference float64) (*IntervalTier, error) {
	ref := reference.Timestamps()
	entries := make([]core.Interval, len(t.entries))
	for i, iv := range t.entries {
		iv.Start = snapToNearest(iv.Start, ref, maxDifference)
		iv.End = snapToNearest(iv.End, ref, maxDifference)
		entries[i] = iv
	}
	return newIntervalTier(t.name, entries, t.minTime, t.maxTime)
}

// AppendTier returns a new tier holding t's entries followed by other's
// entries shifted to start where t ends. The result keeps t's name; its
// range spans both tiers back to back.
func (t *IntervalTier) AppendTier(other *IntervalTier) (*IntervalTier, error) {
	shifted, err := other.EditTimestamps(t.maxTime, core.ReportSilence)
	if err != nil {
		return nil, err
	}
	entries := make([]core.Interval, 0, len(t.entries)+len(shifted.entries))
	entries = append(entries, t.entries...)
	entries = append(entries, shifted.entries...)
	return newIntervalTier(t.name, entries, t.minTime, t.maxTime+other.maxTime)
}

// Validate checks the tier invariants: positive durations, sorted
// non-overlapping entries, and containment within the tier's bounds.
// Violations are reported per the given mode; the bool is false when
// any violation was found.
func (t *IntervalTier) Validate(reporting core.ReportingMode) (bool, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return false, err
	}
	valid := true
	report := func(condition error) error {
		valid = false
		return reporting.Report(condition)
	}
	for i, iv := range t.entries {
		if iv.Start >= iv.End {
			if err := report(fmt.Errorf("%w: interval %s ends at or before its start", core.ErrState, iv)); err != nil {
				return false, err
			}
		}
		if i > 0 {
			prev := t.entries[i-1]
			if prev.Start > iv.Start || (prev.End > iv.Start && !core.Isclose(prev.End, iv.Start)) {
				if err := report(fmt.Errorf("%w: intervals %s and %s overlap or are out of order", core.ErrState, prev, iv)); err != nil {
					return false, err
				}
			}
		}
		if iv.Start < t.minTime || iv.End > t.maxTime {
			bad := iv.Start
			if iv.End > t.maxTime {
				bad = iv.End
			}
			if err := report(&core.OutOfBoundsError{Time: bad, Min: t.minTime, Max: t.maxTime}); err != nil {
				return false, err
			}
		}
	}
	return valid, nil
}
