// This file declares the Interval and Point entry values and their
// translation and tolerant-equality operations.
package core

import "fmt"

// Interval is a labeled time span. The span is valid only when
// Start < End strictly; zero-length intervals are rejected by tier
// construction. Times are in seconds.
type Interval struct {
	// Start is the beginning of the span, in seconds.
	Start float64

	// End is the end of the span, in seconds. Must exceed Start.
	End float64

	// Label is the annotation text carried by the span.
	Label string
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Shift returns a copy of the interval translated by offset seconds.
// The label is preserved.
func (iv Interval) Shift(offset float64) Interval {
	return Interval{Start: iv.Start + offset, End: iv.End + offset, Label: iv.Label}
}

// Equal reports whether two intervals are the same entry: times compare
// tolerantly (Isclose), labels compare exactly.
func (iv Interval) Equal(other Interval) bool {
	return Isclose(iv.Start, other.Start) &&
		Isclose(iv.End, other.End) &&
		iv.Label == other.Label
}

// String renders the interval as (start, end, "label").
func (iv Interval) String() string {
	return fmt.Sprintf("(%s, %s, %q)", FormatNum(iv.Start), FormatNum(iv.End), iv.Label)
}

// Point is a labeled time instant, in seconds.
type Point struct {
	// Time is the instant the point marks, in seconds.
	Time float64

	// Label is the annotation text carried by the point.
	Label string
}

// Shift returns a copy of the point translated by offset seconds.
// The label is preserved.
func (p Point) Shift(offset float64) Point {
	return Point{Time: p.Time + offset, Label: p.Label}
}

// Equal reports whether two points are the same entry: times compare
// tolerantly (Isclose), labels compare exactly.
func (p Point) Equal(other Point) bool {
	return Isclose(p.Time, other.Time) && p.Label == other.Label
}

// String renders the point as (time, "label").
func (p Point) String() string {
	return fmt.Sprintf("(%s, %q)", FormatNum(p.Time), p.Label)
}
