// Package textgrid provides the Textgrid container: an ordered,
// name-indexed collection of annotation tiers sharing one
// [MinTime, MaxTime] range.
//
// 🚀 Highlights:
//
//	• AddTier / AddTierAt / RemoveTier / RenameTier / ReplaceTier —
//	  ordered tier management with duplicate-name protection
//	• Crop / EraseRegion / InsertSpace / EditTimestamps — the tier
//	  algebra lifted to every tier at once, bounds kept coherent
//	• AppendTextgrid — concatenate two grids back to back, tier-wise
//	• MergeTiers — fold several tiers into one per kind
//	• Validate / Equal / ToZeroCrossings
//
// ✨ The container's range always covers every tier: adding a tier that
// protrudes expands the range, with the drift reported per the
// core.ReportingMode handed to AddTier. Lifted operations return new
// grids; the receiver is never mutated.
package textgrid
