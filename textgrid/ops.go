package textgrid

import (
	"fmt"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tier"
)

// The tier algebra lifted to the whole grid. Every operation here
// returns a new grid and leaves the receiver untouched.

// Merged-tier names used by MergeTiers.
const (
	MergedIntervalTierName = "merged intervals"
	MergedPointTierName    = "merged points"
)

// Crop returns a new grid restricted to the window [start, end), every
// tier cropped with the given mode. Point tiers keep points on the
// inclusive window edges regardless of mode. With rebaseToZero the
// result is shifted to start at zero.
func (tg *Textgrid) Crop(start, end float64, mode tier.CropMode, rebaseToZero bool) (*Textgrid, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: crop start (%s) must precede crop end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	minT, maxT := start, end
	if rebaseToZero {
		minT, maxT = 0, end-start
	}
	out := NewWithRange(minT, maxT)
	for _, t := range tg.Tiers() {
		var (
			cropped tier.Tier
			err     error
		)
		switch v := t.(type) {
		case *tier.IntervalTier:
			cropped, err = v.Crop(start, end, mode, rebaseToZero)
		case *tier.PointTier:
			cropped, err = v.Crop(start, end, mode, rebaseToZero)
		}
		if err != nil {
			return nil, err
		}
		// Lax cropping may keep entries protruding past the window; the
		// grid range quietly widens to hold them. Under the other modes
		// any drift is unexpected, so it is surfaced as a warning.
		reporting := core.ReportWarning
		if mode == tier.CropLax {
			reporting = core.ReportSilence
		}
		if err := out.AddTier(cropped, reporting); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EraseRegion returns a new grid with the window (start, end) blanked
// on every tier, straddling intervals truncated. With doShrink the time
// axis closes over the window and the grid's MaxTime shrinks by
// end-start.
func (tg *Textgrid) EraseRegion(start, end float64, doShrink bool) (*Textgrid, error) {
	if start >= end {
		return nil, fmt.Errorf("%w: erase start (%s) must precede erase end (%s)",
			core.ErrArgument, core.FormatNum(start), core.FormatNum(end))
	}
	maxT := tg.maxTime
	if doShrink {
		maxT -= end - start
	}
	out := NewWithRange(tg.minTime, maxT)
	for _, t := range tg.Tiers() {
		var (
			erased tier.Tier
			err    error
		)
		switch v := t.(type) {
		case *tier.IntervalTier:
			erased, err = v.EraseRegion(start, end, tier.EraseTruncate, doShrink)
		case *tier.PointTier:
			erased, err = v.EraseRegion(start, end, tier.EraseTruncate, doShrink)
		}
		if err != nil {
			return nil, err
		}
		if err := out.AddTier(erased, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EditTimestamps returns a new grid with every tier shifted by offset.
// Entries pushed past a tier's bounds are reported per reporting, as is
// any resulting drift of the grid's range.
func (tg *Textgrid) EditTimestamps(offset float64, reporting core.ReportingMode) (*Textgrid, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return nil, err
	}
	out := NewWithRange(tg.minTime, tg.maxTime)
	for _, t := range tg.Tiers() {
		var (
			edited tier.Tier
			err    error
		)
		switch v := t.(type) {
		case *tier.IntervalTier:
			edited, err = v.EditTimestamps(offset, reporting)
		case *tier.PointTier:
			edited, err = v.EditTimestamps(offset, reporting)
		}
		if err != nil {
			return nil, err
		}
		if err := out.AddTier(edited, reporting); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// InsertSpace returns a new grid with a gap of the given duration
// opened at start on every tier; intervals straddling the insertion
// point are resolved per mode. The grid's MaxTime grows by duration.
func (tg *Textgrid) InsertSpace(start, duration float64, mode tier.SpaceMode) (*Textgrid, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	out := NewWithRange(tg.minTime, tg.maxTime+duration)
	for _, t := range tg.Tiers() {
		var (
			spaced tier.Tier
			err    error
		)
		switch v := t.(type) {
		case *tier.IntervalTier:
			spaced, err = v.InsertSpace(start, duration, mode)
		case *tier.PointTier:
			spaced, err = v.InsertSpace(start, duration, mode)
		}
		if err != nil {
			return nil, err
		}
		if err := out.AddTier(spaced, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendTextgrid returns a new grid holding tg followed by other on the
// time axis. Tiers sharing a name are concatenated pairwise and must be
// of the same kind. With onlyMatchingNames, tiers present in just one
// grid are dropped; otherwise they are carried over, those from other
// shifted to start where tg ends.
func (tg *Textgrid) AppendTextgrid(other *Textgrid, onlyMatchingNames bool) (*Textgrid, error) {
	out := NewWithRange(tg.minTime, tg.maxTime+other.maxTime)
	for _, name := range tg.tierNames {
		left := tg.tiers[name]
		right, inOther := other.tiers[name]
		switch {
		case inOther:
			joined, err := appendTiers(left, right)
			if err != nil {
				return nil, err
			}
			if err := out.AddTier(joined, core.ReportSilence); err != nil {
				return nil, err
			}
		case !onlyMatchingNames:
			if err := out.AddTier(cloneTier(left), core.ReportSilence); err != nil {
				return nil, err
			}
		}
	}
	if !onlyMatchingNames {
		for _, name := range other.tierNames {
			if _, inLeft := tg.tiers[name]; inLeft {
				continue
			}
			var (
				shifted tier.Tier
				err     error
			)
			switch v := other.tiers[name].(type) {
			case *tier.IntervalTier:
				shifted, err = v.EditTimestamps(tg.maxTime, core.ReportSilence)
			case *tier.PointTier:
				shifted, err = v.EditTimestamps(tg.maxTime, core.ReportSilence)
			}
			if err != nil {
				return nil, err
			}
			if err := out.AddTier(shifted, core.ReportSilence); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// appendTiers concatenates two same-named tiers, rejecting kind
// mismatches.
func appendTiers(left, right tier.Tier) (tier.Tier, error) {
	switch lv := left.(type) {
	case *tier.IntervalTier:
		rv, ok := right.(*tier.IntervalTier)
		if !ok {
			return nil, fmt.Errorf("%w: cannot append point tier %q onto an interval tier", core.ErrArgument, right.Name())
		}
		return lv.AppendTier(rv)
	case *tier.PointTier:
		rv, ok := right.(*tier.PointTier)
		if !ok {
			return nil, fmt.Errorf("%w: cannot append interval tier %q onto a point tier", core.ErrArgument, right.Name())
		}
		return lv.AppendTier(rv)
	default:
		return nil, fmt.Errorf("%w: unknown tier kind %T", core.ErrArgument, left)
	}
}

// MergeTiers returns a new grid with the named tiers folded into at
// most two: one merged interval tier and one merged point tier, overlap
// collisions resolved by label merge. A nil names list merges every
// tier. With preserveOtherTiers the unmerged tiers keep their places
// ahead of the merged ones.
func (tg *Textgrid) MergeTiers(names []string, preserveOtherTiers bool) (*Textgrid, error) {
	merge := make(map[string]bool, len(tg.tierNames))
	if names == nil {
		for _, name := range tg.tierNames {
			merge[name] = true
		}
	} else {
		for _, name := range names {
			if _, err := tg.Tier(name); err != nil {
				return nil, err
			}
			merge[name] = true
		}
	}
	var (
		mergedIntervals *tier.IntervalTier
		mergedPoints    *tier.PointTier
		err             error
	)
	out := NewWithRange(tg.minTime, tg.maxTime)
	for _, name := range tg.tierNames {
		t := tg.tiers[name]
		if !merge[name] {
			if preserveOtherTiers {
				if err := out.AddTier(cloneTier(t), core.ReportSilence); err != nil {
					return nil, err
				}
			}
			continue
		}
		switch v := t.(type) {
		case *tier.IntervalTier:
			if mergedIntervals == nil {
				mergedIntervals = v.WithName(MergedIntervalTierName)
			} else if mergedIntervals, err = mergedIntervals.Union(v); err != nil {
				return nil, err
			}
		case *tier.PointTier:
			if mergedPoints == nil {
				mergedPoints = v.WithName(MergedPointTierName)
			} else if mergedPoints, err = mergedPoints.Union(v); err != nil {
				return nil, err
			}
		}
	}
	if mergedIntervals != nil {
		if err := out.AddTier(mergedIntervals, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	if mergedPoints != nil {
		if err := out.AddTier(mergedPoints, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ToZeroCrossings returns a new grid with every tier's boundaries
// snapped onto the audio's zero crossings.
func (tg *Textgrid) ToZeroCrossings(wav tier.WavQuery) (*Textgrid, error) {
	out := NewWithRange(tg.minTime, tg.maxTime)
	for _, t := range tg.Tiers() {
		var (
			snapped tier.Tier
			err     error
		)
		switch v := t.(type) {
		case *tier.IntervalTier:
			snapped, err = v.ToZeroCrossings(wav)
		case *tier.PointTier:
			snapped, err = v.ToZeroCrossings(wav)
		}
		if err != nil {
			return nil, err
		}
		if err := out.AddTier(snapped, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return out, nil
}
