// Package tier implements the annotation tiers at the heart of timegrid:
// IntervalTier (ordered, non-overlapping labeled spans) and PointTier
// (ordered labeled instants), both bounded by a [MinTime, MaxTime] range,
// plus the full interval/point algebra over them.
//
// 🚀 What can a tier do?
//
//	• Crop         — restrict to a window (Strict | Lax | Truncated)
//	• EraseRegion  — blank a window (Truncate | Categorical | Error),
//	  optionally shrinking to close the gap
//	• InsertEntry  — add one entry (Error | Replace | Merge collisions)
//	• InsertSpace  — open a silent gap (Stretch | Split | NoChange | Error)
//	• EditTimestamps — translate every entry by a constant offset
//	• Dejitter     — snap near-duplicate boundaries onto a reference tier
//	• Morph        — retarget durations to a second tier's, pairwise
//	• Union / Intersection / Difference / MergeLabels — set algebra
//	• AppendTier, Find, Timestamps, Validate, ToZeroCrossings
//
// ✨ Invariants, always:
//
//   - entries sorted ascending by start (intervals) or time (points)
//   - interval spans never overlap; point times never repeat
//   - every entry lies inside the tier's [MinTime, MaxTime]
//   - labels are whitespace-stripped on ingestion
//
// Every operation above is value-producing: it returns a new tier and
// never mutates the receiver. The two exceptions, InsertEntry and
// DeleteEntry, edit the entry list in place and must only be used on a
// tier its caller exclusively owns (typically during incremental
// construction).
//
// Collision and containment policies are explicit enums; passing an
// undeclared value fails immediately with core.ErrWrongOption naming the
// valid set. Bounds drift obeys the core.ReportingMode threaded through
// the bounds-changing operations.
package tier
