package tgio

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/timegrid/core"
	"github.com/katalvlaran/timegrid/textgrid"
	"github.com/katalvlaran/timegrid/tier"
)

// Write renders the grid in the requested wire form.
func Write(tg *textgrid.Textgrid, opts WriteOptions) ([]byte, error) {
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	prepped, err := prepareForWrite(tg, opts)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatShort:
		return renderShort(prepped), nil
	case FormatLong:
		return renderLong(prepped), nil
	default:
		return renderJSON(prepped)
	}
}

// Save renders the grid and writes it to path as UTF-8.
func Save(tg *textgrid.Textgrid, path string, opts WriteOptions) error {
	data, err := Write(tg, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// prepareForWrite applies the range overrides, blank filling, and
// sliver cleanup to a copy of the grid.
func prepareForWrite(tg *textgrid.Textgrid, opts WriteOptions) (*textgrid.Textgrid, error) {
	minT, maxT := tg.MinTime(), tg.MaxTime()
	if opts.MinTime != nil {
		minT = *opts.MinTime
	}
	if opts.MaxTime != nil {
		maxT = *opts.MaxTime
	}
	out := textgrid.NewWithRange(minT, maxT)
	for _, t := range tg.Tiers() {
		switch v := t.(type) {
		case *tier.IntervalTier:
			entries := v.Entries()
			if opts.IncludeBlankSpaces {
				var err error
				entries, err = fillBlanks(v.Name(), entries, minT, maxT)
				if err != nil {
					return nil, err
				}
				if opts.MinimumIntervalLength > 0 {
					entries = removeUltrashortIntervals(entries, opts.MinimumIntervalLength, minT)
				}
			}
			filled, err := tier.NewIntervalTier(v.Name(), entries,
				tier.WithMinTime(v.MinTime()), tier.WithMaxTime(v.MaxTime()))
			if err != nil {
				return nil, err
			}
			if err := out.AddTier(filled, core.ReportSilence); err != nil {
				return nil, err
			}
		case *tier.PointTier:
			if err := out.AddTier(v.Clone(), core.ReportSilence); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// fillBlanks pads the gaps between intervals, and before the first and
// after the last one, with blank intervals so the tier covers
// [minT, maxT] without holes.
func fillBlanks(name string, entries []core.Interval, minT, maxT float64) ([]core.Interval, error) {
	if len(entries) == 0 {
		return []core.Interval{{Start: minT, End: maxT}}, nil
	}
	if entries[0].Start < minT && !core.Isclose(entries[0].Start, minT) {
		return nil, fmt.Errorf("%w: tier %q holds data before the requested start time (%s < %s)",
			core.ErrParsing, name, core.FormatNum(entries[0].Start), core.FormatNum(minT))
	}
	lastEnd := entries[len(entries)-1].End
	if lastEnd > maxT && !core.Isclose(lastEnd, maxT) {
		return nil, fmt.Errorf("%w: tier %q holds data past the requested end time (%s > %s)",
			core.ErrParsing, name, core.FormatNum(lastEnd), core.FormatNum(maxT))
	}
	out := make([]core.Interval, 0, 2*len(entries)+1)
	if entries[0].Start > minT {
		out = append(out, core.Interval{Start: minT, End: entries[0].Start})
	}
	prevEnd := entries[0].Start
	for _, e := range entries {
		if prevEnd < e.Start {
			out = append(out, core.Interval{Start: prevEnd, End: e.Start})
		}
		out = append(out, e)
		prevEnd = e.End
	}
	if prevEnd < maxT {
		out = append(out, core.Interval{Start: prevEnd, End: maxT})
	}
	return out, nil
}

// removeUltrashortIntervals drops intervals shorter than minLength,
// stretching the previous interval over the hole, then snaps boundary
// pairs left less than minLength apart.
func removeUltrashortIntervals(entries []core.Interval, minLength, minTimestamp float64) []core.Interval {
	var out []core.Interval
	for _, e := range entries {
		if e.End-e.Start < minLength {
			if len(out) > 0 {
				out[len(out)-1].End = e.End
			}
			continue
		}
		if len(out) == 0 && e.Start != minTimestamp {
			e.Start = minTimestamp
		}
		out = append(out, e)
	}
	for j := 0; j+1 < len(out); j++ {
		diff := math.Abs(out[j].End - out[j+1].Start)
		if diff > 0 && diff < minLength {
			out[j].End = out[j+1].Start
		}
	}
	return out
}

// escapeQuotes escapes label quotes the way Praat does.
func escapeQuotes(text string) string {
	return strings.ReplaceAll(text, `"`, `""`)
}

func tierClass(t tier.Tier) string {
	if _, ok := t.(*tier.PointTier); ok {
		return classPointTier
	}
	return classIntervalTier
}

// renderShort renders the compact positional text form.
func renderShort(tg *textgrid.Textgrid) []byte {
	var b strings.Builder
	b.WriteString("File type = \"ooTextFile\"\n")
	b.WriteString("Object class = \"TextGrid\"\n\n")
	fmt.Fprintf(&b, "%s\n%s\n", core.FormatNum(tg.MinTime()), core.FormatNum(tg.MaxTime()))
	fmt.Fprintf(&b, "<exists>\n%d\n", tg.Len())
	for _, t := range tg.Tiers() {
		fmt.Fprintf(&b, "\"%s\"\n", tierClass(t))
		fmt.Fprintf(&b, "\"%s\"\n", escapeQuotes(t.Name()))
		fmt.Fprintf(&b, "%s\n%s\n%d\n", core.FormatNum(t.MinTime()), core.FormatNum(t.MaxTime()), t.Len())
		switch v := t.(type) {
		case *tier.IntervalTier:
			for _, e := range v.Entries() {
				fmt.Fprintf(&b, "%s\n%s\n\"%s\"\n",
					core.FormatNum(e.Start), core.FormatNum(e.End), escapeQuotes(e.Label))
			}
		case *tier.PointTier:
			for _, p := range v.Entries() {
				fmt.Fprintf(&b, "%s\n\"%s\"\n", core.FormatNum(p.Time), escapeQuotes(p.Label))
			}
		}
	}
	return []byte(b.String())
}

// renderLong renders the verbose key = value text form. Praat pads each
// value line with a trailing space; that quirk is preserved so output
// is byte-identical with files Praat writes.
func renderLong(tg *textgrid.Textgrid) []byte {
	const tab = "    "
	var b strings.Builder
	b.WriteString("File type = \"ooTextFile\"\n")
	b.WriteString("Object class = \"TextGrid\"\n\n")
	fmt.Fprintf(&b, "xmin = %s \n", core.FormatNum(tg.MinTime()))
	fmt.Fprintf(&b, "xmax = %s \n", core.FormatNum(tg.MaxTime()))
	b.WriteString("tiers? <exists> \n")
	fmt.Fprintf(&b, "size = %d \n", tg.Len())
	b.WriteString("item []: \n")
	for i, t := range tg.Tiers() {
		fmt.Fprintf(&b, "%sitem [%d]:\n", tab, i+1)
		fmt.Fprintf(&b, "%sclass = \"%s\" \n", tab+tab, tierClass(t))
		fmt.Fprintf(&b, "%sname = \"%s\" \n", tab+tab, escapeQuotes(t.Name()))
		fmt.Fprintf(&b, "%sxmin = %s \n", tab+tab, core.FormatNum(t.MinTime()))
		fmt.Fprintf(&b, "%sxmax = %s \n", tab+tab, core.FormatNum(t.MaxTime()))
		switch v := t.(type) {
		case *tier.IntervalTier:
			fmt.Fprintf(&b, "%sintervals: size = %d \n", tab+tab, v.Len())
			for j, e := range v.Entries() {
				fmt.Fprintf(&b, "%sintervals [%d]:\n", tab+tab, j+1)
				fmt.Fprintf(&b, "%sxmin = %s \n", tab+tab+tab, core.FormatNum(e.Start))
				fmt.Fprintf(&b, "%sxmax = %s \n", tab+tab+tab, core.FormatNum(e.End))
				fmt.Fprintf(&b, "%stext = \"%s\" \n", tab+tab+tab, escapeQuotes(e.Label))
			}
		case *tier.PointTier:
			fmt.Fprintf(&b, "%spoints: size = %d \n", tab+tab, v.Len())
			for j, p := range v.Entries() {
				fmt.Fprintf(&b, "%spoints [%d]:\n", tab+tab, j+1)
				fmt.Fprintf(&b, "%snumber = %s \n", tab+tab+tab, core.FormatNum(p.Time))
				fmt.Fprintf(&b, "%smark = \"%s\" \n", tab+tab+tab, escapeQuotes(p.Label))
			}
		}
	}
	return []byte(b.String())
}

// jsonTier mirrors one tier in the JSON form; field order follows the
// native layout.
type jsonTier struct {
	Class   string  `json:"class"`
	Name    string  `json:"name"`
	XMin    float64 `json:"xmin"`
	XMax    float64 `json:"xmax"`
	Entries []any   `json:"entries"`
}

// jsonGrid mirrors the whole grid in the JSON form.
type jsonGrid struct {
	XMin  float64    `json:"xmin"`
	XMax  float64    `json:"xmax"`
	Tiers []jsonTier `json:"tiers"`
}

// renderJSON renders the JSON mirror: interval entries as
// [start, end, label] triples, point entries as [time, label] pairs.
func renderJSON(tg *textgrid.Textgrid) ([]byte, error) {
	doc := jsonGrid{XMin: tg.MinTime(), XMax: tg.MaxTime(), Tiers: make([]jsonTier, 0, tg.Len())}
	for _, t := range tg.Tiers() {
		jt := jsonTier{Class: tierClass(t), Name: t.Name(), XMin: t.MinTime(), XMax: t.MaxTime(), Entries: []any{}}
		switch v := t.(type) {
		case *tier.IntervalTier:
			for _, e := range v.Entries() {
				jt.Entries = append(jt.Entries, []any{e.Start, e.End, e.Label})
			}
		case *tier.PointTier:
			for _, p := range v.Entries() {
				jt.Entries = append(jt.Entries, []any{p.Time, p.Label})
			}
		}
		doc.Tiers = append(doc.Tiers, jt)
	}
	return json.Marshal(doc)
}
