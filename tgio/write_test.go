package tgio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/textgrid"
	"github.com/katalvlaran/timegrid/tgio"
	"github.com/katalvlaran/timegrid/tier"
)

// iv is shorthand for building interval entries in tests.
func iv(start, end float64, label string) core.Interval {
	return core.Interval{Start: start, End: end, Label: label}
}

// pt is shorthand for building point entries in tests.
func pt(time float64, label string) core.Point {
	return core.Point{Time: time, Label: label}
}

// sampleGrid builds a grid spanning [0, 1.5] with one interval tier and
// one point tier; the second interval label embeds a quote.
func sampleGrid(t *testing.T) *textgrid.Textgrid {
	t.Helper()
	words, err := tier.NewIntervalTier("words", []core.Interval{
		iv(0.25, 0.5, "hello"), iv(0.5, 1.0, `wo"rld`),
	}, tier.WithMinTime(0), tier.WithMaxTime(1.5))
	require.NoError(t, err)
	tones, err := tier.NewPointTier("tones", []core.Point{
		pt(0.75, "H*"),
	}, tier.WithMinTime(0), tier.WithMaxTime(1.5))
	require.NoError(t, err)

	tg := textgrid.New()
	require.NoError(t, tg.AddTier(words, core.ReportSilence))
	require.NoError(t, tg.AddTier(tones, core.ReportSilence))
	return tg
}

// TestWriteShort verifies the exact short-form rendering, including
// blank filling and quote escaping.
func TestWriteShort(t *testing.T) {
	data, err := tgio.Write(sampleGrid(t), tgio.DefaultWriteOptions())
	require.NoError(t, err)

	want := strings.Join([]string{
		`File type = "ooTextFile"`,
		`Object class = "TextGrid"`,
		``,
		`0`,
		`1.5`,
		`<exists>`,
		`2`,
		`"IntervalTier"`,
		`"words"`,
		`0`,
		`1.5`,
		`4`,
		`0`,
		`0.25`,
		`""`,
		`0.25`,
		`0.5`,
		`"hello"`,
		`0.5`,
		`1`,
		`"wo""rld"`,
		`1`,
		`1.5`,
		`""`,
		`"TextTier"`,
		`"tones"`,
		`0`,
		`1.5`,
		`1`,
		`0.75`,
		`"H*"`,
		``,
	}, "\n")
	assert.Equal(t, want, string(data))
}

// TestWriteLong verifies the exact long-form rendering, trailing-space
// quirks included.
func TestWriteLong(t *testing.T) {
	opts := tgio.DefaultWriteOptions()
	opts.Format = tgio.FormatLong
	data, err := tgio.Write(sampleGrid(t), opts)
	require.NoError(t, err)

	want := strings.Join([]string{
		`File type = "ooTextFile"`,
		`Object class = "TextGrid"`,
		``,
		`xmin = 0 `,
		`xmax = 1.5 `,
		`tiers? <exists> `,
		`size = 2 `,
		`item []: `,
		`    item [1]:`,
		`        class = "IntervalTier" `,
		`        name = "words" `,
		`        xmin = 0 `,
		`        xmax = 1.5 `,
		`        intervals: size = 4 `,
		`        intervals [1]:`,
		`            xmin = 0 `,
		`            xmax = 0.25 `,
		`            text = "" `,
		`        intervals [2]:`,
		`            xmin = 0.25 `,
		`            xmax = 0.5 `,
		`            text = "hello" `,
		`        intervals [3]:`,
		`            xmin = 0.5 `,
		`            xmax = 1 `,
		`            text = "wo""rld" `,
		`        intervals [4]:`,
		`            xmin = 1 `,
		`            xmax = 1.5 `,
		`            text = "" `,
		`    item [2]:`,
		`        class = "TextTier" `,
		`        name = "tones" `,
		`        xmin = 0 `,
		`        xmax = 1.5 `,
		`        points: size = 1 `,
		`        points [1]:`,
		`            number = 0.75 `,
		`            mark = "H*" `,
		``,
	}, "\n")
	assert.Equal(t, want, string(data))
}

// TestWriteJSON verifies the JSON mirror, field order included.
func TestWriteJSON(t *testing.T) {
	opts := tgio.DefaultWriteOptions()
	opts.Format = tgio.FormatJSON
	opts.IncludeBlankSpaces = false
	data, err := tgio.Write(sampleGrid(t), opts)
	require.NoError(t, err)

	want := `{"xmin":0,"xmax":1.5,"tiers":[` +
		`{"class":"IntervalTier","name":"words","xmin":0,"xmax":1.5,` +
		`"entries":[[0.25,0.5,"hello"],[0.5,1,"wo\"rld"]]},` +
		`{"class":"TextTier","name":"tones","xmin":0,"xmax":1.5,` +
		`"entries":[[0.75,"H*"]]}]}`
	assert.Equal(t, want, string(data))
}

// TestWriteUltrashortCleanup verifies that slivers left by repeated
// manipulation are merged away on write.
func TestWriteUltrashortCleanup(t *testing.T) {
	words, err := tier.NewIntervalTier("words", []core.Interval{
		iv(0, 0.5, "a"), iv(0.5, 0.5+1e-12, "dust"), iv(0.5+1e-12, 1, "b"),
	}, tier.WithMinTime(0), tier.WithMaxTime(1))
	require.NoError(t, err)
	tg := textgrid.New()
	require.NoError(t, tg.AddTier(words, core.ReportSilence))

	data, err := tgio.Write(tg, tgio.DefaultWriteOptions())
	require.NoError(t, err)

	parsed, err := tgio.Parse(data, tgio.DefaultParseOptions())
	require.NoError(t, err)
	cleaned, err := parsed.IntervalTier("words")
	require.NoError(t, err)
	got := cleaned.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Label)
	assert.Equal(t, "b", got[1].Label)
	assert.InDelta(t, 0.5, got[0].End, 1e-9)
	assert.InDelta(t, 0.5, got[1].Start, 1e-9)
}

// TestWriteRangeOverride verifies widening overrides and the rejection
// of overrides narrower than the data.
func TestWriteRangeOverride(t *testing.T) {
	tg := sampleGrid(t)
	opts := tgio.DefaultWriteOptions()
	wider := 2.0
	opts.MaxTime = &wider
	data, err := tgio.Write(tg, opts)
	require.NoError(t, err)
	parsed, err := tgio.Parse(data, tgio.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, 2.0, parsed.MaxTime())

	narrow := 0.75
	opts.MaxTime = &narrow
	_, err = tgio.Write(tg, opts)
	assert.ErrorIs(t, err, core.ErrParsing)
}

// TestWriteRejectsUnknownFormat verifies the format guard.
func TestWriteRejectsUnknownFormat(t *testing.T) {
	opts := tgio.DefaultWriteOptions()
	opts.Format = tgio.Format(9)
	_, err := tgio.Write(sampleGrid(t), opts)
	assert.ErrorIs(t, err, core.ErrWrongOption)
}
