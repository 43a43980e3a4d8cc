package core

import (
	"github.com/mfaulds/driftline/schema"
)

// Extract converts raw score lines into anomaly flags. A sample is flagged
// only when its confidence strictly exceeds the threshold; a score sitting
// exactly at the threshold passes unflagged. The returned flags are ordered
// by ascending index.
func Extract(scores []schema.ScoreLine, threshold, normConst float64) []schema.AnomalyFlag {
	var flags []schema.AnomalyFlag
	for _, s := range scores {
		confidence := clamp(s.Divergence/normConst, 0, 1)
		if confidence > threshold {
			flags = append(flags, schema.AnomalyFlag{
				Index:      s.Index,
				Confidence: confidence,
			})
		}
	}
	return flags
}

// clamp bounds v to the [lo, hi] interval.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
