package textgrid

import (
	"fmt"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tier"
)

// Textgrid is an ordered, name-indexed collection of tiers sharing one
// time range. Build grids with New or NewWithRange and populate them
// via AddTier.
type Textgrid struct {
	tierNames []string
	tiers     map[string]tier.Tier

	minTime, maxTime float64
	// hasBounds flips when the range is first pinned, either explicitly
	// or by the first added tier.
	hasBounds bool
}

// New returns an empty grid whose range will be adopted from the first
// tier added.
func New() *Textgrid {
	return &Textgrid{tiers: make(map[string]tier.Tier)}
}

// NewWithRange returns an empty grid with an explicit time range.
// Added tiers may still expand it.
func NewWithRange(minTime, maxTime float64) *Textgrid {
	tg := New()
	tg.minTime, tg.maxTime = minTime, maxTime
	tg.hasBounds = true
	return tg
}

// MinTime returns the grid's lower bound (zero before any tier or
// explicit range is set).
func (tg *Textgrid) MinTime() float64 { return tg.minTime }

// MaxTime returns the grid's upper bound.
func (tg *Textgrid) MaxTime() float64 { return tg.maxTime }

// Len reports the number of tiers.
func (tg *Textgrid) Len() int { return len(tg.tierNames) }

// TierNames returns the tier names in display order.
func (tg *Textgrid) TierNames() []string {
	out := make([]string, len(tg.tierNames))
	copy(out, tg.tierNames)
	return out
}

// Tiers returns the tiers in display order.
func (tg *Textgrid) Tiers() []tier.Tier {
	out := make([]tier.Tier, len(tg.tierNames))
	for i, name := range tg.tierNames {
		out[i] = tg.tiers[name]
	}
	return out
}

// Tier returns the named tier, failing with core.ErrArgument when the
// grid holds no tier of that name.
func (tg *Textgrid) Tier(name string) (tier.Tier, error) {
	t, ok := tg.tiers[name]
	if !ok {
		return nil, fmt.Errorf("%w: textgrid has no tier %q", core.ErrArgument, name)
	}
	return t, nil
}

// IntervalTier returns the named tier as an interval tier, failing with
// core.ErrArgument when the name is unknown or names a point tier.
func (tg *Textgrid) IntervalTier(name string) (*tier.IntervalTier, error) {
	t, err := tg.Tier(name)
	if err != nil {
		return nil, err
	}
	it, ok := t.(*tier.IntervalTier)
	if !ok {
		return nil, fmt.Errorf("%w: tier %q is not an interval tier", core.ErrArgument, name)
	}
	return it, nil
}

// PointTier returns the named tier as a point tier, failing with
// core.ErrArgument when the name is unknown or names an interval tier.
func (tg *Textgrid) PointTier(name string) (*tier.PointTier, error) {
	t, err := tg.Tier(name)
	if err != nil {
		return nil, err
	}
	pt, ok := t.(*tier.PointTier)
	if !ok {
		return nil, fmt.Errorf("%w: tier %q is not a point tier", core.ErrArgument, name)
	}
	return pt, nil
}

// AddTier appends a tier to the grid. The grid's range expands to cover
// the tier; range drift on an already-bounded grid is reported per
// reporting. Fails with core.ErrTierNameExists on a duplicate name.
func (tg *Textgrid) AddTier(t tier.Tier, reporting core.ReportingMode) error {
	return tg.AddTierAt(t, len(tg.tierNames), reporting)
}

// AddTierAt inserts a tier at the given display position, otherwise
// behaving like AddTier.
func (tg *Textgrid) AddTierAt(t tier.Tier, index int, reporting core.ReportingMode) error {
	if err := reporting.Validate("reportingMode"); err != nil {
		return err
	}
	if index < 0 || index > len(tg.tierNames) {
		return &core.OutOfBoundsError{Time: float64(index), Min: 0, Max: float64(len(tg.tierNames))}
	}
	if _, exists := tg.tiers[t.Name()]; exists {
		return fmt.Errorf("%w: %q", core.ErrTierNameExists, t.Name())
	}
	if !tg.hasBounds {
		tg.minTime, tg.maxTime = t.MinTime(), t.MaxTime()
		tg.hasBounds = true
	} else {
		if t.MinTime() < tg.minTime && !core.Isclose(t.MinTime(), tg.minTime) {
			if err := reporting.Report(&core.OutOfBoundsError{Time: t.MinTime(), Min: tg.minTime, Max: tg.maxTime}); err != nil {
				return err
			}
			tg.minTime = t.MinTime()
		}
		if t.MaxTime() > tg.maxTime && !core.Isclose(t.MaxTime(), tg.maxTime) {
			if err := reporting.Report(&core.OutOfBoundsError{Time: t.MaxTime(), Min: tg.minTime, Max: tg.maxTime}); err != nil {
				return err
			}
			tg.maxTime = t.MaxTime()
		}
	}
	tg.tierNames = append(tg.tierNames, "")
	copy(tg.tierNames[index+1:], tg.tierNames[index:])
	tg.tierNames[index] = t.Name()
	tg.tiers[t.Name()] = t
	return nil
}

// RemoveTier removes and returns the named tier. The grid's range is
// left untouched.
func (tg *Textgrid) RemoveTier(name string) (tier.Tier, error) {
	t, err := tg.Tier(name)
	if err != nil {
		return nil, err
	}
	delete(tg.tiers, name)
	for i, n := range tg.tierNames {
		if n == name {
			tg.tierNames = append(tg.tierNames[:i], tg.tierNames[i+1:]...)
			break
		}
	}
	return t, nil
}

// RenameTier renames a tier in place, keeping its display position.
func (tg *Textgrid) RenameTier(oldName, newName string) error {
	t, err := tg.Tier(oldName)
	if err != nil {
		return err
	}
	if _, exists := tg.tiers[newName]; exists && newName != oldName {
		return fmt.Errorf("%w: %q", core.ErrTierNameExists, newName)
	}
	renamed := renameTier(t, newName)
	delete(tg.tiers, oldName)
	tg.tiers[newName] = renamed
	for i, n := range tg.tierNames {
		if n == oldName {
			tg.tierNames[i] = newName
			break
		}
	}
	return nil
}

// renameTier dispatches WithName over the closed tier set.
func renameTier(t tier.Tier, name string) tier.Tier {
	switch v := t.(type) {
	case *tier.IntervalTier:
		return v.WithName(name)
	case *tier.PointTier:
		return v.WithName(name)
	default:
		panic(fmt.Sprintf("textgrid: unknown tier kind %T", t))
	}
}

// ReplaceTier swaps the named tier for a new one, keeping the display
// position. The replacement's name decides the slot's new name and must
// not clash with another tier.
func (tg *Textgrid) ReplaceTier(name string, t tier.Tier) error {
	if _, err := tg.Tier(name); err != nil {
		return err
	}
	if _, exists := tg.tiers[t.Name()]; exists && t.Name() != name {
		return fmt.Errorf("%w: %q", core.ErrTierNameExists, t.Name())
	}
	delete(tg.tiers, name)
	tg.tiers[t.Name()] = t
	for i, n := range tg.tierNames {
		if n == name {
			tg.tierNames[i] = t.Name()
			break
		}
	}
	if t.MinTime() < tg.minTime {
		tg.minTime = t.MinTime()
	}
	if t.MaxTime() > tg.maxTime {
		tg.maxTime = t.MaxTime()
	}
	return nil
}

// Clone returns an independent deep copy of the grid.
func (tg *Textgrid) Clone() *Textgrid {
	c := New()
	c.minTime, c.maxTime, c.hasBounds = tg.minTime, tg.maxTime, tg.hasBounds
	for _, t := range tg.Tiers() {
		c.tierNames = append(c.tierNames, t.Name())
		c.tiers[t.Name()] = cloneTier(t)
	}
	return c
}

// cloneTier dispatches Clone over the closed tier set.
func cloneTier(t tier.Tier) tier.Tier {
	switch v := t.(type) {
	case *tier.IntervalTier:
		return v.Clone()
	case *tier.PointTier:
		return v.Clone()
	default:
		panic(fmt.Sprintf("textgrid: unknown tier kind %T", t))
	}
}

// Equal reports whether two grids carry tolerantly equal ranges and the
// same tiers, by name, order, kind, and content.
func (tg *Textgrid) Equal(other *Textgrid) bool {
	if other == nil || len(tg.tierNames) != len(other.tierNames) {
		return false
	}
	if !core.Isclose(tg.minTime, other.minTime) || !core.Isclose(tg.maxTime, other.maxTime) {
		return false
	}
	for i, name := range tg.tierNames {
		if other.tierNames[i] != name {
			return false
		}
		if !tiersEqual(tg.tiers[name], other.tiers[name]) {
			return false
		}
	}
	return true
}

// tiersEqual compares two tiers of possibly different kinds.
func tiersEqual(a, b tier.Tier) bool {
	switch av := a.(type) {
	case *tier.IntervalTier:
		bv, ok := b.(*tier.IntervalTier)
		return ok && av.Equal(bv)
	case *tier.PointTier:
		bv, ok := b.(*tier.PointTier)
		return ok && av.Equal(bv)
	default:
		return false
	}
}

// Validate checks that every tier satisfies its own invariants and lies
// within the grid's range, reporting violations per the given mode.
func (tg *Textgrid) Validate(reporting core.ReportingMode) (bool, error) {
	if err := reporting.Validate("reportingMode"); err != nil {
		return false, err
	}
	valid := true
	if tg.minTime > tg.maxTime {
		valid = false
		condition := fmt.Errorf("%w: textgrid range [%s, %s] is inverted",
			core.ErrState, core.FormatNum(tg.minTime), core.FormatNum(tg.maxTime))
		if err := reporting.Report(condition); err != nil {
			return false, err
		}
	}
	for _, t := range tg.Tiers() {
		if t.MinTime() < tg.minTime || t.MaxTime() > tg.maxTime {
			valid = false
			bad := t.MinTime()
			if t.MaxTime() > tg.maxTime {
				bad = t.MaxTime()
			}
			if err := reporting.Report(&core.OutOfBoundsError{Time: bad, Min: tg.minTime, Max: tg.maxTime}); err != nil {
				return false, err
			}
		}
		ok, err := t.Validate(reporting)
		if err != nil {
			return false, err
		}
		valid = valid && ok
	}
	return valid, nil
}
