// Package core defines the entry value types shared by every timegrid
// package: Interval (a labeled time span), Point (a labeled instant),
// tolerant float comparison, canonical number formatting, the
// ReportingMode policy enum, and the module-wide error taxonomy.
//
// 🚀 What lives here?
//
//	• Interval{Start, End, Label} — a labeled [Start, End) time span
//	• Point{Time, Label} — a single labeled instant
//	• Isclose — tolerant float equality (relative tolerance 1e-14)
//	• FormatNum — canonical number rendering for the TextGrid formats
//	  (integral floats print without a decimal point)
//	• ReportingMode — Silence | Warning | Error, threaded through every
//	  bounds-changing operation; Warning surfaces through log/slog
//	• Sentinel errors (ErrCollision, ErrOutOfBounds, …) plus typed
//	  errors carrying structured context (CollisionError, WrongOptionError)
//
// All value types are immutable: Shift returns a translated copy, and
// equality is tolerant on times but exact on labels.
package core
