package tgio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/textgrid"
	"github.com/katalvlaran/timegrid/tier"
)

// Open reads and parses the TextGrid file at path. The file may be
// UTF-16 (with BOM) or UTF-8, in any of the three wire forms.
func Open(path string, opts ParseOptions) (*textgrid.Textgrid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, opts)
}

// Parse decodes a TextGrid from raw bytes. JSON input is recognized by
// its leading brace; text input is sniffed best-effort: the
// "ooTextFile short" marker, or the absence of "item [", selects the
// short form.
func Parse(raw []byte, opts ParseOptions) (*textgrid.Textgrid, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var tg *textgrid.Textgrid
	switch {
	case strings.HasPrefix(strings.TrimSpace(text), "{"):
		tg, err = parseJSON(text)
	case strings.Contains(text, "ooTextFile short") || !strings.Contains(text, "item ["):
		tg, err = parseShort(text)
	default:
		tg, err = parseLong(text)
	}
	if err != nil {
		return nil, err
	}
	if !opts.IncludeEmptyIntervals {
		if err := dropBlankEntries(tg); err != nil {
			return nil, err
		}
	}
	return tg, nil
}

// decodeText turns raw file bytes into a string, probing for a UTF-16
// byte order mark before assuming UTF-8.
func decodeText(raw []byte) (string, error) {
	if len(raw) >= 2 && (bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) || bytes.HasPrefix(raw, []byte{0xFF, 0xFE})) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", fmt.Errorf("%w: UTF-16 decode failed: %v", core.ErrParsing, err)
		}
		return string(decoded), nil
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	return string(raw), nil
}

// dropBlankEntries strips blank-labeled entries from every tier, so
// padding written for Praat's benefit never reaches the algebra.
func dropBlankEntries(tg *textgrid.Textgrid) error {
	for _, t := range tg.Tiers() {
		switch v := t.(type) {
		case *tier.IntervalTier:
			var kept []core.Interval
			for _, e := range v.Entries() {
				if e.Label != "" {
					kept = append(kept, e)
				}
			}
			trimmed, err := tier.NewIntervalTier(v.Name(), kept,
				tier.WithMinTime(v.MinTime()), tier.WithMaxTime(v.MaxTime()))
			if err != nil {
				return err
			}
			if err := tg.ReplaceTier(v.Name(), trimmed); err != nil {
				return err
			}
		case *tier.PointTier:
			var kept []core.Point
			for _, p := range v.Entries() {
				if p.Label != "" {
					kept = append(kept, p)
				}
			}
			trimmed, err := tier.NewPointTier(v.Name(), kept,
				tier.WithMinTime(v.MinTime()), tier.WithMaxTime(v.MaxTime()))
			if err != nil {
				return err
			}
			if err := tg.ReplaceTier(v.Name(), trimmed); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseJSON decodes the JSON mirror form.
func parseJSON(text string) (*textgrid.Textgrid, error) {
	var doc struct {
		XMin  float64 `json:"xmin"`
		XMax  float64 `json:"xmax"`
		Tiers []struct {
			Class   string  `json:"class"`
			Name    string  `json:"name"`
			XMin    float64 `json:"xmin"`
			XMax    float64 `json:"xmax"`
			Entries [][]any `json:"entries"`
		} `json:"tiers"`
	}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParsing, err)
	}
	tg := textgrid.NewWithRange(doc.XMin, doc.XMax)
	for _, jt := range doc.Tiers {
		var t tier.Tier
		switch jt.Class {
		case classIntervalTier:
			entries := make([]core.Interval, 0, len(jt.Entries))
			for _, row := range jt.Entries {
				if len(row) != 3 {
					return nil, fmt.Errorf("%w: interval entry in tier %q has %d fields, want 3",
						core.ErrParsing, jt.Name, len(row))
				}
				start, okS := row[0].(float64)
				end, okE := row[1].(float64)
				label, okL := row[2].(string)
				if !okS || !okE || !okL {
					return nil, fmt.Errorf("%w: malformed interval entry in tier %q", core.ErrParsing, jt.Name)
				}
				entries = append(entries, core.Interval{Start: start, End: end, Label: label})
			}
			it, err := tier.NewIntervalTier(jt.Name, entries,
				tier.WithMinTime(jt.XMin), tier.WithMaxTime(jt.XMax))
			if err != nil {
				return nil, err
			}
			t = it
		case classPointTier:
			entries := make([]core.Point, 0, len(jt.Entries))
			for _, row := range jt.Entries {
				if len(row) != 2 {
					return nil, fmt.Errorf("%w: point entry in tier %q has %d fields, want 2",
						core.ErrParsing, jt.Name, len(row))
				}
				time, okT := row[0].(float64)
				label, okL := row[1].(string)
				if !okT || !okL {
					return nil, fmt.Errorf("%w: malformed point entry in tier %q", core.ErrParsing, jt.Name)
				}
				entries = append(entries, core.Point{Time: time, Label: label})
			}
			pt, err := tier.NewPointTier(jt.Name, entries,
				tier.WithMinTime(jt.XMin), tier.WithMaxTime(jt.XMax))
			if err != nil {
				return nil, err
			}
			t = pt
		default:
			return nil, fmt.Errorf("%w: unknown tier class %q", core.ErrParsing, jt.Class)
		}
		if err := tg.AddTier(t, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return tg, nil
}

// cursor walks a decoded text file. The text grammars are count-driven:
// every list announces its length before its elements, so the cursor
// only ever moves forward.
type cursor struct {
	data string
	pos  int
}

// nextValue returns the next non-empty line, stripped of surrounding
// whitespace and of one pair of wrapping quotes if present.
func (c *cursor) nextValue() (string, error) {
	for c.pos < len(c.data) {
		end := strings.IndexByte(c.data[c.pos:], '\n')
		var line string
		if end < 0 {
			line, c.pos = c.data[c.pos:], len(c.data)
		} else {
			line, c.pos = c.data[c.pos:c.pos+end], c.pos+end+1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
			line = strings.TrimSpace(line[1 : len(line)-1])
		}
		return line, nil
	}
	return "", fmt.Errorf("%w: unexpected end of input", core.ErrParsing)
}

// nextFloat parses the next non-empty line as a number.
func (c *cursor) nextFloat() (float64, error) {
	word, err := c.nextValue()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: expected a number, got %q", core.ErrParsing, word)
	}
	return v, nil
}

// nextInt parses the next non-empty line as a count.
func (c *cursor) nextInt() (int, error) {
	word, err := c.nextValue()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(word)
	if err != nil {
		return 0, fmt.Errorf("%w: expected a count, got %q", core.ErrParsing, word)
	}
	return v, nil
}

// nextText returns the next quoted string, which may span lines.
// Praat escapes a quote inside a label as a doubled quote, so the
// closing quote is found where a run of quotes has odd length.
func (c *cursor) nextText() (string, error) {
	i := c.pos
	for i < len(c.data) && (c.data[i] == ' ' || c.data[i] == '\t' || c.data[i] == '\n') {
		i++
	}
	if i >= len(c.data) || c.data[i] != '"' {
		return "", fmt.Errorf("%w: expected a quoted string", core.ErrParsing)
	}
	start := i + 1
	j := start
	for {
		q := strings.IndexByte(c.data[j:], '"')
		if q < 0 {
			return "", fmt.Errorf("%w: unterminated quoted string", core.ErrParsing)
		}
		q += j
		run := q
		for run < len(c.data) && c.data[run] == '"' {
			run++
		}
		if (run-q)%2 == 1 {
			text := c.data[start : run-1]
			c.pos = run
			// Skip the remainder of the line.
			if nl := strings.IndexByte(c.data[c.pos:], '\n'); nl >= 0 {
				c.pos += nl + 1
			} else {
				c.pos = len(c.data)
			}
			return strings.ReplaceAll(strings.TrimSpace(text), `""`, `"`), nil
		}
		j = run
	}
}

// seekKey advances the cursor just past the next occurrence of key.
func (c *cursor) seekKey(key string) error {
	i := strings.Index(c.data[c.pos:], key)
	if i < 0 {
		return fmt.Errorf("%w: missing %q", core.ErrParsing, strings.TrimSpace(key))
	}
	c.pos += i + len(key)
	return nil
}

// keyedFloat finds key and parses the value following it.
func (c *cursor) keyedFloat(key string) (float64, error) {
	if err := c.seekKey(key); err != nil {
		return 0, err
	}
	return c.nextFloat()
}

// keyedInt finds key and parses the count following it.
func (c *cursor) keyedInt(key string) (int, error) {
	if err := c.seekKey(key); err != nil {
		return 0, err
	}
	return c.nextInt()
}

// keyedText finds key and parses the quoted string following it.
func (c *cursor) keyedText(key string) (string, error) {
	if err := c.seekKey(key); err != nil {
		return "", err
	}
	return c.nextText()
}

// parseShort decodes the compact positional text form.
func parseShort(text string) (*textgrid.Textgrid, error) {
	c := &cursor{data: text}
	// Header: file type, object class, grid range, tier marker, count.
	if _, err := c.nextValue(); err != nil {
		return nil, err
	}
	if _, err := c.nextValue(); err != nil {
		return nil, err
	}
	minT, err := c.nextFloat()
	if err != nil {
		return nil, err
	}
	maxT, err := c.nextFloat()
	if err != nil {
		return nil, err
	}
	if _, err := c.nextValue(); err != nil { // <exists>
		return nil, err
	}
	tierCount, err := c.nextInt()
	if err != nil {
		return nil, err
	}
	tg := textgrid.NewWithRange(minT, maxT)
	for i := 0; i < tierCount; i++ {
		class, err := c.nextText()
		if err != nil {
			return nil, err
		}
		name, err := c.nextText()
		if err != nil {
			return nil, err
		}
		tierMin, err := c.nextFloat()
		if err != nil {
			return nil, err
		}
		tierMax, err := c.nextFloat()
		if err != nil {
			return nil, err
		}
		entryCount, err := c.nextInt()
		if err != nil {
			return nil, err
		}
		var t tier.Tier
		switch class {
		case classIntervalTier:
			entries := make([]core.Interval, 0, entryCount)
			for j := 0; j < entryCount; j++ {
				start, err := c.nextFloat()
				if err != nil {
					return nil, err
				}
				end, err := c.nextFloat()
				if err != nil {
					return nil, err
				}
				label, err := c.nextText()
				if err != nil {
					return nil, err
				}
				entries = append(entries, core.Interval{Start: start, End: end, Label: label})
			}
			it, err := tier.NewIntervalTier(name, entries,
				tier.WithMinTime(tierMin), tier.WithMaxTime(tierMax))
			if err != nil {
				return nil, err
			}
			t = it
		case classPointTier:
			entries := make([]core.Point, 0, entryCount)
			for j := 0; j < entryCount; j++ {
				time, err := c.nextFloat()
				if err != nil {
					return nil, err
				}
				label, err := c.nextText()
				if err != nil {
					return nil, err
				}
				entries = append(entries, core.Point{Time: time, Label: label})
			}
			pt, err := tier.NewPointTier(name, entries,
				tier.WithMinTime(tierMin), tier.WithMaxTime(tierMax))
			if err != nil {
				return nil, err
			}
			t = pt
		default:
			return nil, fmt.Errorf("%w: unknown tier class %q", core.ErrParsing, class)
		}
		if err := tg.AddTier(t, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return tg, nil
}

// parseLong decodes the verbose key = value text form.
func parseLong(text string) (*textgrid.Textgrid, error) {
	c := &cursor{data: text}
	minT, err := c.keyedFloat("xmin = ")
	if err != nil {
		return nil, err
	}
	maxT, err := c.keyedFloat("xmax = ")
	if err != nil {
		return nil, err
	}
	tierCount, err := c.keyedInt("size = ")
	if err != nil {
		return nil, err
	}
	tg := textgrid.NewWithRange(minT, maxT)
	for i := 0; i < tierCount; i++ {
		class, err := c.keyedText("class = ")
		if err != nil {
			return nil, err
		}
		name, err := c.keyedText("name = ")
		if err != nil {
			return nil, err
		}
		tierMin, err := c.keyedFloat("xmin = ")
		if err != nil {
			return nil, err
		}
		tierMax, err := c.keyedFloat("xmax = ")
		if err != nil {
			return nil, err
		}
		entryCount, err := c.keyedInt("size = ")
		if err != nil {
			return nil, err
		}
		var t tier.Tier
		switch class {
		case classIntervalTier:
			entries := make([]core.Interval, 0, entryCount)
			for j := 0; j < entryCount; j++ {
				start, err := c.keyedFloat("xmin = ")
				if err != nil {
					return nil, err
				}
				end, err := c.keyedFloat("xmax = ")
				if err != nil {
					return nil, err
				}
				label, err := c.keyedText("text = ")
				if err != nil {
					return nil, err
				}
				entries = append(entries, core.Interval{Start: start, End: end, Label: label})
			}
			it, err := tier.NewIntervalTier(name, entries,
				tier.WithMinTime(tierMin), tier.WithMaxTime(tierMax))
			if err != nil {
				return nil, err
			}
			t = it
		case classPointTier:
			entries := make([]core.Point, 0, entryCount)
			for j := 0; j < entryCount; j++ {
				time, err := c.keyedFloat("number = ")
				if err != nil {
					return nil, err
				}
				label, err := c.keyedText("mark = ")
				if err != nil {
					return nil, err
				}
				entries = append(entries, core.Point{Time: time, Label: label})
			}
			pt, err := tier.NewPointTier(name, entries,
				tier.WithMinTime(tierMin), tier.WithMaxTime(tierMax))
			if err != nil {
				return nil, err
			}
			t = pt
		default:
			return nil, fmt.Errorf("%w: unknown tier class %q", core.ErrParsing, class)
		}
		if err := tg.AddTier(t, core.ReportSilence); err != nil {
			return nil, err
		}
	}
	return tg, nil
}
