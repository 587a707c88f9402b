package core

import "log/slog"

// ReportingMode controls how bounds-changing operations surface
// non-fatal conditions, such as an entry drifting outside its tier's
// range or a grid's bounds widening to admit a new tier.
//
//   - ReportSilence — the condition is ignored and the operation proceeds.
//   - ReportWarning — the operation proceeds but the condition is logged.
//   - ReportError   — the condition aborts the operation with an error.
//
// Structural invariant violations and malformed input never obey the
// mode: those always fail.
type ReportingMode int

const (
	// ReportSilence suppresses the condition entirely.
	ReportSilence ReportingMode = iota

	// ReportWarning logs the condition through slog and proceeds.
	ReportWarning

	// ReportError turns the condition into a returned error.
	ReportError
)

// reportingModeNames enumerates the valid modes for error messages.
var reportingModeNames = []string{"silence", "warning", "error"}

// String returns the lowercase mode name, or "unknown" out of range.
func (m ReportingMode) String() string {
	if m < ReportSilence || m > ReportError {
		return "unknown"
	}
	return reportingModeNames[m]
}

// Validate returns a WrongOptionError when m is not a declared mode.
func (m ReportingMode) Validate(argument string) error {
	if m < ReportSilence || m > ReportError {
		return &WrongOptionError{Argument: argument, Value: m.String(), Valid: reportingModeNames}
	}
	return nil
}

// Report applies the mode to a condition: nil under ReportSilence, nil
// after logging under ReportWarning, and the condition itself under
// ReportError. Callers propagate the returned error unchanged.
func (m ReportingMode) Report(condition error) error {
	switch m {
	case ReportWarning:
		slog.Warn(condition.Error())
		return nil
	case ReportError:
		return condition
	default:
		return nil
	}
}
