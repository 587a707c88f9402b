package tgio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/tgio"
)

// shortFixture is a hand-written short-form file with an escaped quote
// and an empty interval.
const shortFixture = `File type = "ooTextFile"
Object class = "TextGrid"

0
1.5
<exists>
2
"IntervalTier"
"words"
0
1.5
3
0
0.25
""
0.25
0.5
"he said ""hi"""
0.5
1.5
"world"
"TextTier"
"tones"
0
1.5
1
0.75
"H*"
`

// longFixture carries the same content in the verbose form.
const longFixture = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 1.5
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 1.5
        intervals: size = 3
        intervals [1]:
            xmin = 0
            xmax = 0.25
            text = ""
        intervals [2]:
            xmin = 0.25
            xmax = 0.5
            text = "he said ""hi"""
        intervals [3]:
            xmin = 0.5
            xmax = 1.5
            text = "world"
    item [2]:
        class = "TextTier"
        name = "tones"
        xmin = 0
        xmax = 1.5
        points: size = 1
        points [1]:
            number = 0.75
            mark = "H*"
`

// requireFixtureContent asserts the parsed grid matches the fixtures.
func requireFixtureContent(t *testing.T, data string, opts tgio.ParseOptions) {
	t.Helper()
	tg, err := tgio.Parse([]byte(data), opts)
	require.NoError(t, err)

	assert.Equal(t, 0.0, tg.MinTime())
	assert.Equal(t, 1.5, tg.MaxTime())
	require.Equal(t, []string{"words", "tones"}, tg.TierNames())

	words, err := tg.IntervalTier("words")
	require.NoError(t, err)
	assert.Equal(t, []core.Interval{
		iv(0.25, 0.5, `he said "hi"`), iv(0.5, 1.5, "world"),
	}, words.Entries())

	tones, err := tg.PointTier("tones")
	require.NoError(t, err)
	assert.Equal(t, []core.Point{pt(0.75, "H*")}, tones.Entries())
}

// TestParseShort verifies short-form decoding with quote unescaping and
// blank-entry dropping.
func TestParseShort(t *testing.T) {
	requireFixtureContent(t, shortFixture, tgio.DefaultParseOptions())
}

// TestParseLong verifies long-form decoding of the same content.
func TestParseLong(t *testing.T) {
	requireFixtureContent(t, longFixture, tgio.DefaultParseOptions())
}

// TestParseKeepsEmptyIntervals verifies the IncludeEmptyIntervals
// escape hatch.
func TestParseKeepsEmptyIntervals(t *testing.T) {
	tg, err := tgio.Parse([]byte(shortFixture), tgio.ParseOptions{IncludeEmptyIntervals: true})
	require.NoError(t, err)
	words, err := tg.IntervalTier("words")
	require.NoError(t, err)
	assert.Equal(t, 3, words.Len())
	assert.Equal(t, "", words.Entries()[0].Label)
}

// TestParseJSON verifies decoding of the JSON mirror.
func TestParseJSON(t *testing.T) {
	doc := `{"xmin":0,"xmax":1.5,"tiers":[` +
		`{"class":"IntervalTier","name":"words","xmin":0,"xmax":1.5,` +
		`"entries":[[0.25,0.5,"he said \"hi\""],[0.5,1.5,"world"]]},` +
		`{"class":"TextTier","name":"tones","xmin":0,"xmax":1.5,` +
		`"entries":[[0.75,"H*"]]}]}`
	requireFixtureContent(t, doc, tgio.DefaultParseOptions())
}

// TestParseUTF16 verifies the BOM probe on a UTF-16LE encoded file.
func TestParseUTF16(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.Bytes(encoder, []byte(shortFixture))
	require.NoError(t, err)

	tg, err := tgio.Parse(encoded, tgio.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"words", "tones"}, tg.TierNames())
}

// TestParseCRLF verifies Windows line-ending normalization.
func TestParseCRLF(t *testing.T) {
	crlf := strings.ReplaceAll(shortFixture, "\n", "\r\n")
	requireFixtureContent(t, crlf, tgio.DefaultParseOptions())
}

// TestParseSniffsShortWithoutMarker verifies the fallback sniff: a file
// with no "ooTextFile short" marker and no "item [" blocks reads as a
// short-form file.
func TestParseSniffsShortWithoutMarker(t *testing.T) {
	requireFixtureContent(t, shortFixture, tgio.DefaultParseOptions())
	assert.NotContains(t, shortFixture, "ooTextFile short")
	assert.NotContains(t, shortFixture, "item [")
}

// TestParseMalformed verifies that malformed inputs surface ErrParsing.
func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"truncated header": "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n0\n",
		"bad number":       strings.Replace(shortFixture, "0.25", "abc", 1),
		"bad json":         `{"xmin":0,"xmax":`,
		"bad class":        strings.Replace(shortFixture, "IntervalTier", "MysteryTier", 1),
	}
	for name, data := range cases {
		_, err := tgio.Parse([]byte(data), tgio.DefaultParseOptions())
		assert.ErrorIs(t, err, core.ErrParsing, name)
	}
}
