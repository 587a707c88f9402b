package core

import (
	"math"
	"strconv"
)

// RelTolerance is the relative tolerance used by Isclose. Timestamps in
// annotation data go through long chains of float arithmetic, so exact
// comparison is never appropriate.
const RelTolerance = 1e-14

// Isclose reports whether a and b are equal within RelTolerance,
// relative to the larger magnitude:
//
//	|a-b| <= RelTolerance * max(|a|, |b|)
//
// Complexity: O(1)
func Isclose(a, b float64) bool {
	return IscloseAbs(a, b, 0)
}

// IscloseAbs is Isclose with an additional absolute tolerance floor:
//
//	|a-b| <= max(RelTolerance * max(|a|, |b|), absTol)
func IscloseAbs(a, b, absTol float64) bool {
	return math.Abs(a-b) <= math.Max(RelTolerance*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

// FormatNum renders a timestamp in the canonical TextGrid form: an
// integral value prints without a decimal point ("5", not "5.0"); any
// other value prints in its shortest round-trip representation, using
// plain decimal notation until the magnitude leaves the range where
// that stays readable.
func FormatNum(v float64) string {
	if t := math.Trunc(v); Isclose(v, t) && !math.IsInf(t, 0) && math.Abs(t) < 1<<63 {
		return strconv.FormatInt(int64(t), 10)
	}
	if a := math.Abs(v); a >= 1e-4 && a < 1e16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
