// Package tgio reads and writes Praat TextGrid files in the three wire
// forms Praat understands: the short text format, the long (verbose)
// text format, and the JSON mirror of the same structure.
//
// 🚀 Capabilities:
//
//	• Write / Save — render a grid in any of the three formats, with
//	  blank-gap filling, ultra-short interval cleanup, and optional
//	  range overrides
//	• Parse / Open — decode any of the three formats; the text variant
//	  is sniffed best-effort ("ooTextFile short" marker, or absence of
//	  "item [")
//	• UTF-16 files (BOM) are probed first, falling back to UTF-8;
//	  Windows line endings are normalized
//
// ✨ Fidelity notes:
//
//   - labels travel quoted, with `"` escaped as `""` in both directions
//   - numbers render without a decimal point when integral, otherwise
//     in the shortest form that round-trips
//   - by default blank-labeled entries are dropped on read and gaps are
//     refilled with blank intervals on write, so algebra in between
//     never sees padding entries
package tgio
