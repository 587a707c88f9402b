package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the timegrid module. Typed errors below unwrap to
// one of these, so callers can branch with errors.Is.
var (
	// ErrArgument indicates a bad parameter, e.g. a crop window whose
	// start does not precede its end.
	ErrArgument = errors.New("timegrid: invalid argument")

	// ErrCollision indicates entries overlap under a policy that forbids it.
	ErrCollision = errors.New("timegrid: entries collide")

	// ErrState indicates a structural invariant was violated (unsorted or
	// overlapping entries, inconsistent bounds).
	ErrState = errors.New("timegrid: structural invariant violated")

	// ErrOutOfBounds indicates an entry lies outside its tier's time range.
	ErrOutOfBounds = errors.New("timegrid: entry out of bounds")

	// ErrTierNameExists indicates a duplicate tier name in one grid.
	ErrTierNameExists = errors.New("timegrid: tier name already exists")

	// ErrTimelessTier indicates a tier was built with neither entries nor
	// explicit bounds, leaving no time information to infer a range from.
	ErrTimelessTier = errors.New("timegrid: tier has no time information")

	// ErrParsing indicates malformed textgrid data, or a caller-supplied
	// bounds override narrower than the data.
	ErrParsing = errors.New("timegrid: malformed textgrid data")

	// ErrWrongOption indicates an invalid value for a policy parameter.
	ErrWrongOption = errors.New("timegrid: invalid option value")

	// ErrSafeZip indicates positionally paired sequences differ in length.
	ErrSafeZip = errors.New("timegrid: sequences differ in length")
)

// WrongOptionError reports an invalid enum value for a policy parameter,
// naming the offending value and enumerating the valid set.
type WrongOptionError struct {
	// Argument is the parameter name, e.g. "collisionMode".
	Argument string
	// Value is the offending value, rendered as a string.
	Value string
	// Valid enumerates the accepted values.
	Valid []string
}

func (e *WrongOptionError) Error() string {
	return fmt.Sprintf("timegrid: argument %q was given the value %q, expected one of [%s]",
		e.Argument, e.Value, strings.Join(e.Valid, ", "))
}

// Unwrap makes errors.Is(err, ErrWrongOption) succeed.
func (e *WrongOptionError) Unwrap() error { return ErrWrongOption }

// CollisionError reports an entry that overlaps existing entries under a
// policy that forbids (or merely reports) the overlap.
type CollisionError struct {
	// Tier is the name of the tier the entry targets.
	Tier string
	// Entry renders the inserted or erased region.
	Entry string
	// Conflicts renders the overlapping entries, in time order.
	Conflicts []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("timegrid: %s collides with entries [%s] of tier %q",
		e.Entry, strings.Join(e.Conflicts, ", "), e.Tier)
}

// Unwrap makes errors.Is(err, ErrCollision) succeed.
func (e *CollisionError) Unwrap() error { return ErrCollision }

// OutOfBoundsError reports a timestamp outside a tier's [Min, Max] range.
type OutOfBoundsError struct {
	Time float64
	Min  float64
	Max  float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("timegrid: time %s lies outside the range [%s, %s]",
		FormatNum(e.Time), FormatNum(e.Min), FormatNum(e.Max))
}

// Unwrap makes errors.Is(err, ErrOutOfBounds) succeed.
func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }
