// Package timegrid is an in-memory toolkit for time-aligned annotation
// data: ordered, labeled time spans and instants grouped into named tiers
// inside a TextGrid document, with lossless reading and writing of the
// Praat TextGrid file formats.
//
// 🚀 What is timegrid?
//
//	A pure-Go library for speech and phonetics annotation work:
//		• Entry values: Interval (labeled time span) and Point (labeled instant)
//		• Tiers: sorted, non-overlapping, bounds-checked entry sequences
//		• A Textgrid container of uniquely named, ordered tiers
//		• An interval/point algebra: crop, erase, insert, dejitter, morph,
//		  union/intersection/difference/label-merge, each with explicit,
//		  reproducible collision policies
//		• A serializer for the short, long, and JSON TextGrid encodings
//
// ✨ Why choose timegrid?
//
//   - Value semantics – every algebra operation returns a new tier or grid
//   - Explicit policies – collisions and bound drift never resolve silently
//   - Praat-compatible – files round-trip with Praat's own reader
//   - Small API – a handful of focused packages, clear naming
//
// Under the hood, everything is organized under four subpackages:
//
//	core/     — Interval & Point values, tolerant float equality, reporting modes, errors
//	tier/     — IntervalTier & PointTier and the full annotation algebra
//	textgrid/ — the Textgrid container and container-level operations
//	tgio/     — short/long/JSON parsing and writing, encoding probe, file I/O
//
// Quick sketch of a three-tier grid:
//
//	words:  |  hello  |      |  world  |
//	phones: |h|e|l|o  |      |w|o|r|l|d|
//	pitch:  *     *       *        *
//
// Dive into the package docs and example tests for full walkthroughs.
//
//	go get github.com/katalvlaran/timegrid
package timegrid
