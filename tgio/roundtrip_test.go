package tgio_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/textgrid"
	"github.com/katalvlaran/timegrid/tgio"
)

// approx treats times within the write/parse noise floor as equal.
var approx = cmpopts.EquateApprox(0, 1e-10)

// gridEntries flattens a grid into comparable per-tier entry lists.
func gridEntries(t *testing.T, tg *textgrid.Textgrid) map[string]any {
	t.Helper()
	out := map[string]any{
		"xmin": tg.MinTime(),
		"xmax": tg.MaxTime(),
	}
	for _, name := range tg.TierNames() {
		if it, err := tg.IntervalTier(name); err == nil {
			out[name] = it.Entries()
			continue
		}
		pt, err := tg.PointTier(name)
		require.NoError(t, err)
		out[name] = pt.Entries()
	}
	return out
}

// TestRoundTripAllFormats writes the sample grid in every format and
// verifies the reparse preserves content.
func TestRoundTripAllFormats(t *testing.T) {
	src := sampleGrid(t)
	want := gridEntries(t, src)

	for _, format := range []tgio.Format{tgio.FormatShort, tgio.FormatLong, tgio.FormatJSON} {
		opts := tgio.DefaultWriteOptions()
		opts.Format = format
		data, err := tgio.Write(src, opts)
		require.NoError(t, err, format.String())

		parsed, err := tgio.Parse(data, tgio.DefaultParseOptions())
		require.NoError(t, err, format.String())

		if diff := cmp.Diff(want, gridEntries(t, parsed), approx); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}
}

// TestRoundTripStable verifies that a second write of a reparsed grid
// is byte-identical to the first.
func TestRoundTripStable(t *testing.T) {
	src := sampleGrid(t)
	opts := tgio.DefaultWriteOptions()

	first, err := tgio.Write(src, opts)
	require.NoError(t, err)
	parsed, err := tgio.Parse(first, tgio.DefaultParseOptions())
	require.NoError(t, err)
	second, err := tgio.Write(parsed, opts)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

// TestSaveOpen verifies the whole-file path through the filesystem.
func TestSaveOpen(t *testing.T) {
	src := sampleGrid(t)
	path := filepath.Join(t.TempDir(), "sample.TextGrid")

	require.NoError(t, tgio.Save(src, path, tgio.DefaultWriteOptions()))
	loaded, err := tgio.Open(path, tgio.DefaultParseOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(gridEntries(t, src), gridEntries(t, loaded), approx); diff != "" {
		t.Errorf("save/open mismatch (-want +got):\n%s", diff)
	}

	_, err = tgio.Open(filepath.Join(t.TempDir(), "missing.TextGrid"), tgio.DefaultParseOptions())
	assert.Error(t, err)
}

// TestRoundTripPreservesEquality verifies container-level equality
// after a short-form round trip.
func TestRoundTripPreservesEquality(t *testing.T) {
	src := sampleGrid(t)
	data, err := tgio.Write(src, tgio.DefaultWriteOptions())
	require.NoError(t, err)
	parsed, err := tgio.Parse(data, tgio.DefaultParseOptions())
	require.NoError(t, err)
	assert.True(t, src.Equal(parsed))
	ok, err := parsed.Validate(core.ReportError)
	require.NoError(t, err)
	assert.True(t, ok)
}
