package core_test

import (
	"testing"

	"github.com/katalvlaran/timegrid/core"
	"github.com/stretchr/testify/assert"
)

// TestInterval_Shift verifies translation preserves the label and moves
// both boundaries by the same offset.
func TestInterval_Shift(t *testing.T) {
	iv := core.Interval{Start: 1.0, End: 2.5, Label: "hello"}

	shifted := iv.Shift(0.5)
	assert.Equal(t, core.Interval{Start: 1.5, End: 3.0, Label: "hello"}, shifted)

	back := shifted.Shift(-0.5)
	assert.True(t, iv.Equal(back), "shifting by x then -x must restore the interval")
}

// TestInterval_Equal_Tolerant verifies times compare tolerantly while
// labels compare exactly.
func TestInterval_Equal_Tolerant(t *testing.T) {
	iv := core.Interval{Start: 1.0, End: 2.0, Label: "a"}

	assert.True(t, iv.Equal(core.Interval{Start: 1.0 + 1e-16, End: 2.0, Label: "a"}),
		"sub-tolerance drift must compare equal")
	assert.False(t, iv.Equal(core.Interval{Start: 1.0, End: 2.0, Label: "b"}),
		"labels compare exactly")
	assert.False(t, iv.Equal(core.Interval{Start: 1.0001, End: 2.0, Label: "a"}),
		"drift beyond tolerance must compare unequal")
}

// TestInterval_Duration checks the End-Start arithmetic.
func TestInterval_Duration(t *testing.T) {
	assert.Equal(t, 1.5, core.Interval{Start: 2.0, End: 3.5}.Duration())
}

// TestPoint_ShiftAndEqual mirrors the interval checks for points.
func TestPoint_ShiftAndEqual(t *testing.T) {
	p := core.Point{Time: 1.25, Label: "peak"}

	assert.Equal(t, core.Point{Time: 2.25, Label: "peak"}, p.Shift(1.0))
	assert.True(t, p.Equal(core.Point{Time: 1.25 + 1e-16, Label: "peak"}))
	assert.False(t, p.Equal(core.Point{Time: 1.25, Label: "valley"}))
}

// TestString_Rendering pins the human-readable forms used in error text.
func TestString_Rendering(t *testing.T) {
	assert.Equal(t, `(1, 2.5, "hi")`, core.Interval{Start: 1, End: 2.5, Label: "hi"}.String())
	assert.Equal(t, `(0.5, "p")`, core.Point{Time: 0.5, Label: "p"}.String())
}
