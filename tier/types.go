// Package tier: shared declarations.
//
// This file gathers everything the two tier kinds have in common:
//   - the sealed Tier interface a container composes over,
//   - the policy enums steering Crop / EraseRegion / InsertEntry /
//     InsertSpace / Find behavior,
//   - tier construction options (explicit bounds).
//
// Each enum owns a Validate method that rejects undeclared values with
// a core.WrongOptionError, so policy typos surface at the call site
// instead of silently selecting a default branch.
package tier

import (
	"github.com/katalvlaran/timegrid/core"
)

// Tier is the read-only face shared by IntervalTier and PointTier.
//
// The interface is sealed: only the two concrete types in this package
// satisfy it, which lets consumers branch over the closed set with a
// type switch and keeps concrete operations returning concrete types.
type Tier interface {
	// Name returns the tier's name.
	Name() string
	// MinTime returns the lower bound of the tier's time range.
	MinTime() float64
	// MaxTime returns the upper bound of the tier's time range.
	MaxTime() float64
	// Len reports the number of entries.
	Len() int
	// Timestamps returns every distinct time referenced by the tier's
	// entries, ascending.
	Timestamps() []float64
	// Validate checks the tier's ordering and bounds invariants,
	// reporting violations per the given mode. It returns false when at
	// least one violation was found, and a non-nil error only when
	// reporting is core.ReportError (or the mode itself is invalid).
	Validate(reporting core.ReportingMode) (bool, error)

	// sealed marker; only this package implements Tier.
	isTier()
}

// CropMode decides the fate of entries that only partially overlap a
// crop window.
type CropMode int

const (
	// CropStrict keeps only entries wholly contained in the window.
	CropStrict CropMode = iota
	// CropLax keeps any entry with positive overlap, unclipped.
	CropLax
	// CropTruncated keeps overlapping entries clipped to the window.
	CropTruncated
)

var cropModeNames = []string{"strict", "lax", "truncated"}

// String implements fmt.Stringer.
func (m CropMode) String() string {
	if m < 0 || int(m) >= len(cropModeNames) {
		return "unknown"
	}
	return cropModeNames[m]
}

// Validate rejects undeclared CropMode values.
func (m CropMode) Validate() error {
	if m < 0 || int(m) >= len(cropModeNames) {
		return &core.WrongOptionError{Argument: "cropMode", Value: m.String(), Valid: cropModeNames}
	}
	return nil
}

// EraseMode decides the fate of entries that straddle an erased region's
// edge.
type EraseMode int

const (
	// EraseTruncate keeps the out-of-region remainder of straddling
	// entries.
	EraseTruncate EraseMode = iota
	// EraseCategorical removes straddling entries entirely.
	EraseCategorical
	// EraseError fails when the region overlaps any entry.
	EraseError
)

var eraseModeNames = []string{"truncated", "categorical", "error"}

// String implements fmt.Stringer.
func (m EraseMode) String() string {
	if m < 0 || int(m) >= len(eraseModeNames) {
		return "unknown"
	}
	return eraseModeNames[m]
}

// Validate rejects undeclared EraseMode values.
func (m EraseMode) Validate() error {
	if m < 0 || int(m) >= len(eraseModeNames) {
		return &core.WrongOptionError{Argument: "eraseMode", Value: m.String(), Valid: eraseModeNames}
	}
	return nil
}

// InsertMode decides how InsertEntry resolves collisions with existing
// entries.
type InsertMode int

const (
	// InsertError fails on any collision, leaving the tier untouched.
	InsertError InsertMode = iota
	// InsertReplace removes every colliding entry first.
	InsertReplace
	// InsertMerge fuses the new entry with every colliding one into a
	// single entry spanning their union, labels joined with "-".
	InsertMerge
)

var insertModeNames = []string{"error", "replace", "merge"}

// String implements fmt.Stringer.
func (m InsertMode) String() string {
	if m < 0 || int(m) >= len(insertModeNames) {
		return "unknown"
	}
	return insertModeNames[m]
}

// Validate rejects undeclared InsertMode values.
func (m InsertMode) Validate() error {
	if m < 0 || int(m) >= len(insertModeNames) {
		return &core.WrongOptionError{Argument: "insertMode", Value: m.String(), Valid: insertModeNames}
	}
	return nil
}

// SpaceMode decides the fate of an interval that straddles an
// InsertSpace insertion point.
type SpaceMode int

const (
	// SpaceStretch lengthens the straddling interval by the inserted
	// duration.
	SpaceStretch SpaceMode = iota
	// SpaceSplit cuts the straddling interval in two around the gap,
	// both halves keeping the label.
	SpaceSplit
	// SpaceNoChange leaves the straddling interval untouched.
	SpaceNoChange
	// SpaceError fails when any interval straddles the insertion point.
	SpaceError
)

var spaceModeNames = []string{"stretch", "split", "no_change", "error"}

// String implements fmt.Stringer.
func (m SpaceMode) String() string {
	if m < 0 || int(m) >= len(spaceModeNames) {
		return "unknown"
	}
	return spaceModeNames[m]
}

// Validate rejects undeclared SpaceMode values.
func (m SpaceMode) Validate() error {
	if m < 0 || int(m) >= len(spaceModeNames) {
		return &core.WrongOptionError{Argument: "spaceMode", Value: m.String(), Valid: spaceModeNames}
	}
	return nil
}

// MatchMode selects the label comparison used by Find.
type MatchMode int

const (
	// MatchExact accepts labels equal to the pattern.
	MatchExact MatchMode = iota
	// MatchSubstring accepts labels containing the pattern.
	MatchSubstring
	// MatchRegexp accepts labels matching the pattern as a
	// case-insensitive regular expression.
	MatchRegexp
)

var matchModeNames = []string{"exact", "substring", "regexp"}

// String implements fmt.Stringer.
func (m MatchMode) String() string {
	if m < 0 || int(m) >= len(matchModeNames) {
		return "unknown"
	}
	return matchModeNames[m]
}

// Validate rejects undeclared MatchMode values.
func (m MatchMode) Validate() error {
	if m < 0 || int(m) >= len(matchModeNames) {
		return &core.WrongOptionError{Argument: "matchMode", Value: m.String(), Valid: matchModeNames}
	}
	return nil
}

// tierBounds carries optional explicit bounds into a constructor.
type tierBounds struct {
	min, max       float64
	hasMin, hasMax bool
}

// TierOption configures tier construction.
type TierOption func(*tierBounds)

// WithMinTime pins the tier's lower bound. The effective bound still
// expands to cover any earlier entry.
func WithMinTime(t float64) TierOption {
	return func(b *tierBounds) { b.min, b.hasMin = t, true }
}

// WithMaxTime pins the tier's upper bound. The effective bound still
// expands to cover any later entry.
func WithMaxTime(t float64) TierOption {
	return func(b *tierBounds) { b.max, b.hasMax = t, true }
}
