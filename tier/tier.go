package tier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/katalvlaran/timegrid/core"
)

// resolveBounds folds explicit options and entry extremes into the
// effective [min, max] range. It fails with core.ErrTimelessTier when
// neither side can be determined.
func resolveBounds(name string, b tierBounds, entryMins, entryMaxs []float64) (float64, float64, error) {
	mins := entryMins
	if b.hasMin {
		mins = append(mins, b.min)
	}
	maxs := entryMaxs
	if b.hasMax {
		maxs = append(maxs, b.max)
	}
	if len(mins) == 0 || len(maxs) == 0 {
		return 0, 0, fmt.Errorf("%w: tier %q has no entries and no explicit bounds", core.ErrTimelessTier, name)
	}
	minT, maxT := mins[0], maxs[0]
	for _, v := range mins[1:] {
		minT = math.Min(minT, v)
	}
	for _, v := range maxs[1:] {
		maxT = math.Max(maxT, v)
	}
	return minT, maxT, nil
}

// uniqueSortedTimes deduplicates and sorts a time list in place,
// returning the compacted slice. Times closer than the tolerant
// equality are collapsed onto the first occurrence.
func uniqueSortedTimes(times []float64) []float64 {
	sort.Float64s(times)
	out := times[:0]
	for _, t := range times {
		if len(out) > 0 && core.Isclose(out[len(out)-1], t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// snapToNearest returns the value in sortedRef nearest to t when the
// gap is at most maxDifference (inclusive), otherwise t unchanged.
// sortedRef must be ascending.
func snapToNearest(t float64, sortedRef []float64, maxDifference float64) float64 {
	if len(sortedRef) == 0 {
		return t
	}
	i := sort.SearchFloat64s(sortedRef, t)
	best := math.Inf(1)
	snapped := t
	if i < len(sortedRef) {
		if d := sortedRef[i] - t; d < best {
			best, snapped = d, sortedRef[i]
		}
	}
	if i > 0 {
		if d := t - sortedRef[i-1]; d < best {
			best, snapped = d, sortedRef[i-1]
		}
	}
	if best <= maxDifference {
		return snapped
	}
	return t
}

// findLabels returns the indices of labels accepted by the pattern
// under the given MatchMode.
func findLabels(labels []string, pattern string, mode MatchMode) ([]int, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	var match func(string) bool
	switch mode {
	case MatchExact:
		match = func(l string) bool { return l == pattern }
	case MatchSubstring:
		match = func(l string) bool { return strings.Contains(l, pattern) }
	case MatchRegexp:
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid find pattern %q: %v", core.ErrArgument, pattern, err)
		}
		match = re.MatchString
	}
	var hits []int
	for i, l := range labels {
		if match(l) {
			hits = append(hits, i)
		}
	}
	return hits, nil
}

// intervalCollision builds a CollisionError for an entry clashing with
// existing intervals.
func intervalCollision(tierName, entry string, matches []core.Interval) *core.CollisionError {
	conflicts := make([]string, len(matches))
	for i, m := range matches {
		conflicts[i] = m.String()
	}
	return &core.CollisionError{Tier: tierName, Entry: entry, Conflicts: conflicts}
}

// pointCollision builds a CollisionError for an entry clashing with
// existing points.
func pointCollision(tierName, entry string, matches []core.Point) *core.CollisionError {
	conflicts := make([]string, len(matches))
	for i, m := range matches {
		conflicts[i] = m.String()
	}
	return &core.CollisionError{Tier: tierName, Entry: entry, Conflicts: conflicts}
}

// validateInsertReporting restricts InsertEntry reporting to the two
// non-fatal modes; collisions that should be fatal are requested via
// InsertError instead.
func validateInsertReporting(reporting core.ReportingMode) error {
	if reporting != core.ReportSilence && reporting != core.ReportWarning {
		return &core.WrongOptionError{
			Argument: "reportingMode",
			Value:    reporting.String(),
			Valid:    []string{core.ReportSilence.String(), core.ReportWarning.String()},
		}
	}
	return nil
}
