package tier

import (
	"github.com/katalvlaran/timegrid/core"
)

// DefaultZeroCrossingStep is the window, in seconds, searched around a
// boundary for the nearest zero crossing.
const DefaultZeroCrossingStep = 0.002

// WavQuery answers the two audio questions boundary snapping needs.
// Implementations typically wrap a decoded wav file.
type WavQuery interface {
	// Duration returns the audio length in seconds.
	Duration() float64
	// FindNearestZeroCrossing returns the time of the zero crossing
	// nearest to targetTime, widening the search window by timeStep
	// until one is found.
	FindNearestZeroCrossing(targetTime, timeStep float64) (float64, error)
}

// ToZeroCrossings returns a new tier with every interval boundary moved
// to the nearest zero crossing in the audio, clamped to the audio's
// extent. Snapping boundaries prevents clicks when the intervals are
// later cut out of the recording.
func (t *IntervalTier) ToZeroCrossings(wav WavQuery) (*IntervalTier, error) {
	entries := make([]core.Interval, len(t.entries))
	for i, iv := range t.entries {
		start, err := snapToZeroCrossing(wav, iv.Start)
		if err != nil {
			return nil, err
		}
		end, err := snapToZeroCrossing(wav, iv.End)
		if err != nil {
			return nil, err
		}
		entries[i] = core.Interval{Start: start, End: end, Label: iv.Label}
	}
	return newIntervalTier(t.name, entries, t.minTime, t.maxTime)
}

// ToZeroCrossings returns a new tier with every point moved to the
// nearest zero crossing in the audio, clamped to the audio's extent.
func (t *PointTier) ToZeroCrossings(wav WavQuery) (*PointTier, error) {
	entries := make([]core.Point, len(t.entries))
	for i, p := range t.entries {
		snapped, err := snapToZeroCrossing(wav, p.Time)
		if err != nil {
			return nil, err
		}
		entries[i] = core.Point{Time: snapped, Label: p.Label}
	}
	return newPointTier(t.name, entries, t.minTime, t.maxTime)
}

func snapToZeroCrossing(wav WavQuery, target float64) (float64, error) {
	snapped, err := wav.FindNearestZeroCrossing(target, DefaultZeroCrossingStep)
	if err != nil {
		return 0, err
	}
	if snapped < 0 {
		snapped = 0
	}
	if max := wav.Duration(); snapped > max {
		snapped = max
	}
	return snapped, nil
}
