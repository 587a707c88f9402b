package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tier"
)

// iv is shorthand for building interval entries in tests.
func iv(start, end float64, label string) core.Interval {
	return core.Interval{Start: start, End: end, Label: label}
}

// mustIntervalTier builds a tier or fails the test.
func mustIntervalTier(t *testing.T, name string, entries []core.Interval, opts ...tier.TierOption) *tier.IntervalTier {
	t.Helper()
	it, err := tier.NewIntervalTier(name, entries, opts...)
	require.NoError(t, err)
	return it
}

// TestNewIntervalTier_Normalizes verifies that construction sorts
// entries, strips labels, and resolves bounds from entries and options.
func TestNewIntervalTier_Normalizes(t *testing.T) {
	it := mustIntervalTier(t, "words", []core.Interval{
		iv(1.0, 2.5, "  world "),
		iv(0.5, 1.0, "hello"),
	}, tier.WithMaxTime(3.0))

	assert.Equal(t, "words", it.Name())
	assert.Equal(t, 0.5, it.MinTime())
	assert.Equal(t, 3.0, it.MaxTime())
	assert.Equal(t, []core.Interval{iv(0.5, 1.0, "hello"), iv(1.0, 2.5, "world")}, it.Entries())
}

// TestNewIntervalTier_Rejects verifies the construction failure modes.
func TestNewIntervalTier_Rejects(t *testing.T) {
	_, err := tier.NewIntervalTier("bad", []core.Interval{iv(1.0, 1.0, "zero")})
	assert.ErrorIs(t, err, core.ErrState)

	_, err = tier.NewIntervalTier("bad", []core.Interval{iv(0, 1.5, "a"), iv(1.0, 2.0, "b")})
	assert.ErrorIs(t, err, core.ErrState)

	_, err = tier.NewIntervalTier("empty", nil)
	assert.ErrorIs(t, err, core.ErrTimelessTier)

	_, err = tier.NewIntervalTier("empty", nil, tier.WithMinTime(0))
	assert.ErrorIs(t, err, core.ErrTimelessTier)

	_, err = tier.NewIntervalTier("empty", nil, tier.WithMinTime(0), tier.WithMaxTime(5))
	assert.NoError(t, err)
}

// TestIntervalTier_Crop covers the three containment policies over the
// same window.
func TestIntervalTier_Crop(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0.5, 1.0, "a"), iv(1.0, 2.5, "b"), iv(3.0, 3.5, "c"),
	})

	strict, err := src.Crop(0.8, 3.2, tier.CropStrict, false)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(1.0, 2.5, "b")}, strict.Entries())
	assert.Equal(t, 0.8, strict.MinTime())
	assert.Equal(t, 3.2, strict.MaxTime())

	lax, err := src.Crop(0.8, 3.2, tier.CropLax, false)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0.5, 1.0, "a"), iv(1.0, 2.5, "b"), iv(3.0, 3.5, "c")}, lax.Entries())
	// Protruding entries drag the window bounds with them.
	assert.Equal(t, 0.5, lax.MinTime())
	assert.Equal(t, 3.5, lax.MaxTime())

	trunc, err := src.Crop(0.8, 3.2, tier.CropTruncated, false)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0.8, 1.0, "a"), iv(1.0, 2.5, "b"), iv(3.0, 3.2, "c")}, trunc.Entries())
}

// TestIntervalTier_CropRebase verifies the rebase-to-zero shift,
// including the lax case where a protruding entry drags the shift back.
func TestIntervalTier_CropRebase(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0.5, 1.0, "a"), iv(1.0, 2.5, "b"),
	})

	trunc, err := src.Crop(0.8, 2.0, tier.CropTruncated, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, trunc.MinTime())
	assert.InDelta(t, 1.2, trunc.MaxTime(), 1e-12)
	got := trunc.Entries()
	require.Len(t, got, 2)
	assert.InDelta(t, 0.0, got[0].Start, 1e-12)
	assert.InDelta(t, 0.2, got[0].End, 1e-12)

	lax, err := src.Crop(0.8, 2.0, tier.CropLax, true)
	require.NoError(t, err)
	// Shift is pulled back to the first kept entry's start (0.5), and
	// the kept entry protruding right of the window stretches MaxTime.
	assert.Equal(t, 0.0, lax.MinTime())
	assert.InDelta(t, 2.0, lax.MaxTime(), 1e-12)
	assert.InDelta(t, 0.0, lax.Entries()[0].Start, 1e-12)

	// A pulled-back shift must not inflate the upper bound: the window
	// span stays end-start when no entry protrudes past the right edge.
	left := mustIntervalTier(t, "words", []core.Interval{iv(1, 4, "a")},
		tier.WithMinTime(0), tier.WithMaxTime(5))
	laxLeft, err := left.Crop(2, 5, tier.CropLax, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, laxLeft.MinTime())
	assert.InDelta(t, 3.0, laxLeft.MaxTime(), 1e-12)
	require.Len(t, laxLeft.Entries(), 1)
	assert.InDelta(t, 0.0, laxLeft.Entries()[0].Start, 1e-12)
	assert.InDelta(t, 3.0, laxLeft.Entries()[0].End, 1e-12)

	_, err = src.Crop(2.0, 1.0, tier.CropStrict, false)
	assert.ErrorIs(t, err, core.ErrArgument)

	_, err = src.Crop(1.0, 2.0, tier.CropMode(99), false)
	assert.ErrorIs(t, err, core.ErrWrongOption)
}

// TestIntervalTier_CropIdempotent verifies that re-cropping with the
// same window is a no-op: the first truncated crop already confines
// every entry to [start, end].
func TestIntervalTier_CropIdempotent(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0.5, 1.0, "a"), iv(1.0, 2.5, "b"), iv(3.0, 3.5, "c"),
	})

	once, err := src.Crop(0.8, 3.2, tier.CropTruncated, false)
	require.NoError(t, err)
	twice, err := once.Crop(0.8, 3.2, tier.CropTruncated, false)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

// TestIntervalTier_EraseRegion covers the three straddle policies.
func TestIntervalTier_EraseRegion(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0, 1, "hello"), iv(1, 2, "world"),
	})

	trunc, err := src.EraseRegion(0.5, 1.5, tier.EraseTruncate, false)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 0.5, "hello"), iv(1.5, 2, "world")}, trunc.Entries())
	assert.Equal(t, 2.0, trunc.MaxTime())

	cat, err := src.EraseRegion(0.5, 1.5, tier.EraseCategorical, false)
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())

	_, err = src.EraseRegion(0.5, 1.5, tier.EraseError, false)
	assert.ErrorIs(t, err, core.ErrCollision)
	var collision *core.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "words", collision.Tier)
	assert.Len(t, collision.Conflicts, 2)
}

// TestIntervalTier_EraseRegionShrink verifies gap closing and the
// re-fusion of a same-label interval split by the erased window.
func TestIntervalTier_EraseRegionShrink(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0, 1, "hello"), iv(1, 2, "world"),
	})
	shrunk, err := src.EraseRegion(0.5, 1.5, tier.EraseTruncate, true)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 0.5, "hello"), iv(0.5, 1, "world")}, shrunk.Entries())
	assert.Equal(t, 1.0, shrunk.MaxTime())

	single := mustIntervalTier(t, "words", []core.Interval{iv(0, 2, "x")})
	fused, err := single.EraseRegion(0.5, 1.5, tier.EraseTruncate, true)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 1, "x")}, fused.Entries())
	assert.Equal(t, 1.0, fused.MaxTime())
}

// TestIntervalTier_EraseInsertInverse verifies that erasing a window
// covering exactly one entry (Truncate, no shrink) and re-inserting
// that entry restores the original tier.
func TestIntervalTier_EraseInsertInverse(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{
		iv(0, 1, "a"), iv(1, 2, "b"), iv(2, 3, "c"),
	})

	erased, err := src.EraseRegion(1, 2, tier.EraseTruncate, false)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 1, "a"), iv(2, 3, "c")}, erased.Entries())

	require.NoError(t, erased.InsertEntry(iv(1, 2, "b"), tier.InsertError, core.ReportSilence))
	assert.True(t, src.Equal(erased))
}

// TestIntervalTier_InsertEntry covers the three collision policies and
// bound expansion.
func TestIntervalTier_InsertEntry(t *testing.T) {
	base := []core.Interval{iv(1, 2, "b"), iv(2, 3, "c")}

	clean := mustIntervalTier(t, "words", base)
	require.NoError(t, clean.InsertEntry(iv(0, 1, "a"), tier.InsertError, core.ReportSilence))
	assert.Equal(t, []core.Interval{iv(0, 1, "a"), iv(1, 2, "b"), iv(2, 3, "c")}, clean.Entries())
	assert.Equal(t, 0.0, clean.MinTime())

	fail := mustIntervalTier(t, "words", base)
	err := fail.InsertEntry(iv(1.5, 2.5, "x"), tier.InsertError, core.ReportSilence)
	assert.ErrorIs(t, err, core.ErrCollision)
	assert.Equal(t, base, fail.Entries())

	repl := mustIntervalTier(t, "words", base)
	require.NoError(t, repl.InsertEntry(iv(1.5, 2.5, "x"), tier.InsertReplace, core.ReportSilence))
	assert.Equal(t, []core.Interval{iv(1.5, 2.5, "x")}, repl.Entries())

	merge := mustIntervalTier(t, "words", base)
	require.NoError(t, merge.InsertEntry(iv(1.5, 2.5, "x"), tier.InsertMerge, core.ReportSilence))
	assert.Equal(t, []core.Interval{iv(1, 3, "b-x-c")}, merge.Entries())

	bad := mustIntervalTier(t, "words", base)
	err = bad.InsertEntry(iv(0, 1, "a"), tier.InsertError, core.ReportError)
	assert.ErrorIs(t, err, core.ErrWrongOption)
}

// TestIntervalTier_DeleteEntry verifies removal by tolerant equality.
func TestIntervalTier_DeleteEntry(t *testing.T) {
	it := mustIntervalTier(t, "words", []core.Interval{iv(0, 1, "a"), iv(1, 2, "b")})
	require.NoError(t, it.DeleteEntry(iv(0, 1, "a")))
	assert.Equal(t, []core.Interval{iv(1, 2, "b")}, it.Entries())

	err := it.DeleteEntry(iv(5, 6, "nope"))
	assert.ErrorIs(t, err, core.ErrArgument)
}

// TestIntervalTier_InsertSpace covers the four straddle policies.
func TestIntervalTier_InsertSpace(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{iv(0, 1, "a"), iv(1, 2, "b")})

	stretch, err := src.InsertSpace(0.5, 1, tier.SpaceStretch)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 2, "a"), iv(2, 3, "b")}, stretch.Entries())
	assert.Equal(t, 3.0, stretch.MaxTime())

	split, err := src.InsertSpace(0.5, 1, tier.SpaceSplit)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 0.5, "a"), iv(1.5, 2, "a"), iv(2, 3, "b")}, split.Entries())

	same, err := src.InsertSpace(0.5, 1, tier.SpaceNoChange)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 1, "a"), iv(2, 3, "b")}, same.Entries())

	_, err = src.InsertSpace(0.5, 1, tier.SpaceError)
	assert.ErrorIs(t, err, core.ErrCollision)

	_, err = src.InsertSpace(0.5, -1, tier.SpaceStretch)
	assert.ErrorIs(t, err, core.ErrArgument)
}

// TestIntervalTier_EditTimestamps verifies translation, bound
// stretching, zero clamping, and the drop of fully negative entries.
func TestIntervalTier_EditTimestamps(t *testing.T) {
	src := mustIntervalTier(t, "words", []core.Interval{iv(0.5, 1.5, "a")}, tier.WithMinTime(0), tier.WithMaxTime(2))

	right, err := src.EditTimestamps(1.0, core.ReportSilence)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(1.5, 2.5, "a")}, right.Entries())
	assert.Equal(t, 0.0, right.MinTime())
	assert.Equal(t, 2.5, right.MaxTime())

	// Round trip within bounds restores the original tier.
	there, err := src.EditTimestamps(0.25, core.ReportSilence)
	require.NoError(t, err)
	back, err := there.EditTimestamps(-0.25, core.ReportSilence)
	require.NoError(t, err)
	assert.True(t, src.Equal(back))

	clamped, err := src.EditTimestamps(-1.0, core.ReportSilence)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0, 0.5, "a")}, clamped.Entries())

	gone, err := src.EditTimestamps(-2.0, core.ReportSilence)
	require.NoError(t, err)
	assert.Equal(t, 0, gone.Len())

	_, err = src.EditTimestamps(1.0, core.ReportError)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

// TestIntervalTier_Dejitter verifies inclusive snapping onto a
// reference tier's timestamps.
func TestIntervalTier_Dejitter(t *testing.T) {
	ref := mustIntervalTier(t, "ref", []core.Interval{iv(1.0, 2.0, "r")})
	src := mustIntervalTier(t, "words", []core.Interval{iv(0.95, 2.05, "x")}, tier.WithMinTime(0), tier.WithMaxTime(3))

	snapped, err := src.Dejitter(ref, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(1.0, 2.0, "x")}, snapped.Entries())

	far := mustIntervalTier(t, "words", []core.Interval{iv(0.85, 2.2, "x")}, tier.WithMinTime(0), tier.WithMaxTime(3))
	kept, err := far.Dejitter(ref, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{iv(0.85, 2.2, "x")}, kept.Entries())
}

// TestIntervalTier_AppendTier verifies back-to-back concatenation.
func TestIntervalTier_AppendTier(t *testing.T) {
	a := mustIntervalTier(t, "words", []core.Interval{iv(0, 1, "a")}, tier.WithMinTime(0), tier.WithMaxTime(2))
	b := mustIntervalTier(t, "more", []core.Interval{iv(0.5, 1, "b")}, tier.WithMinTime(0), tier.WithMaxTime(1.5))

	joined, err := a.AppendTier(b)
	require.NoError(t, err)
	assert.Equal(t, "words", joined.Name())
	assert.Equal(t, 3.5, joined.MaxTime())
	assert.Equal(t, []core.Interval{iv(0, 1, "a"), iv(2.5, 3, "b")}, joined.Entries())
}

// TestIntervalTier_FindAndTimestamps verifies label search and the
// distinct-timestamp listing.
func TestIntervalTier_FindAndTimestamps(t *testing.T) {
	it := mustIntervalTier(t, "words", []core.Interval{
		iv(0, 1, "hello"), iv(1, 2, "world"), iv(2, 3, "hello there"),
	})

	exact, err := it.Find("hello", tier.MatchExact)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, exact)

	sub, err := it.Find("hello", tier.MatchSubstring)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sub)

	re, err := it.Find("^HELLO", tier.MatchRegexp)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, re)

	_, err = it.Find("(", tier.MatchRegexp)
	assert.ErrorIs(t, err, core.ErrArgument)

	assert.Equal(t, []float64{0, 1, 2, 3}, it.Timestamps())
}

// TestIntervalTier_Validate verifies reporting of invariant violations
// on a tier mutated past its construction guarantees.
func TestIntervalTier_Validate(t *testing.T) {
	it := mustIntervalTier(t, "words", []core.Interval{iv(0, 1, "a")}, tier.WithMaxTime(2))
	ok, err := it.Validate(core.ReportError)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = it.Validate(core.ReportingMode(42))
	assert.ErrorIs(t, err, core.ErrWrongOption)
}
