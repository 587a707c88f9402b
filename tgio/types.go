package tgio

import (
	"github.com/katalvlaran/timegrid/core"
)

// Praat class names used on the wire.
const (
	classIntervalTier = "IntervalTier"
	classPointTier    = "TextTier"
)

// MinIntervalLength is the default threshold below which intervals are
// treated as numerical debris and merged into a neighbor when writing.
// Repeated small manipulations can leave slivers around 1e-15 seconds
// long; Praat itself chokes on them.
const MinIntervalLength = 1e-8

// Format selects a TextGrid wire form.
type Format int

const (
	// FormatShort is the compact positional text format.
	FormatShort Format = iota
	// FormatLong is the verbose key = value text format.
	FormatLong
	// FormatJSON is the JSON mirror of the TextGrid structure.
	FormatJSON
)

var formatNames = []string{"short_textgrid", "long_textgrid", "json"}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Validate rejects undeclared Format values.
func (f Format) Validate() error {
	if f < 0 || int(f) >= len(formatNames) {
		return &core.WrongOptionError{Argument: "format", Value: f.String(), Valid: formatNames}
	}
	return nil
}

// ParseFormat maps a format name back to its Format value.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, &core.WrongOptionError{Argument: "format", Value: name, Valid: formatNames}
}

// WriteOptions steers rendering. Use DefaultWriteOptions as the
// starting point.
type WriteOptions struct {
	// Format selects the wire form.
	Format Format
	// IncludeBlankSpaces fills gaps in interval tiers with blank
	// intervals so the output covers the grid's whole range, as Praat
	// expects of a well-formed file.
	IncludeBlankSpaces bool
	// MinimumIntervalLength is the sliver threshold applied after blank
	// filling; intervals shorter than this are merged into the previous
	// entry. Zero or negative disables the cleanup.
	MinimumIntervalLength float64
	// MinTime / MaxTime override the grid's range in the output. A nil
	// pointer keeps the grid's own bound. Overrides narrower than the
	// annotated data fail the write.
	MinTime *float64
	MaxTime *float64
}

// DefaultWriteOptions renders the short format with blank filling and
// the standard sliver threshold.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Format:                FormatShort,
		IncludeBlankSpaces:    true,
		MinimumIntervalLength: MinIntervalLength,
	}
}

// ParseOptions steers decoding. Use DefaultParseOptions as the starting
// point.
type ParseOptions struct {
	// IncludeEmptyIntervals keeps blank-labeled entries instead of
	// dropping them after the parse.
	IncludeEmptyIntervals bool
}

// DefaultParseOptions drops blank-labeled entries.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}
