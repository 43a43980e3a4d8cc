package scorer

import (
	"context"
	"math"
	"sort"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
)

// Synthetic implements the Scorer interface without the proprietary binary.
// Divergence is the relative deviation of each sample from the series median,
// optionally exponentially smoothed. It is fully deterministic: the seed and
// threshold parameters are accepted for interface parity and ignored.
type Synthetic struct{}

var _ contract.Scorer = Synthetic{} // Compile-time check

// NewSynthetic creates the deterministic test/development scorer.
func NewSynthetic() Synthetic {
	return Synthetic{}
}

// Score computes one divergence per sample, in input order.
func (Synthetic) Score(_ context.Context, series schema.TimeSeries, cfg contract.ScorerConfig) ([]schema.ScoreLine, error) {
	baseline := median(series.Values)
	scale := math.Abs(baseline)
	if scale < 1e-9 {
		scale = 1e-9
	}

	lines := make([]schema.ScoreLine, 0, series.Len())
	prev := 0.0
	for i, v := range series.Values {
		d := math.Abs(v-baseline) / scale
		if cfg.Smoothing > 0 {
			alpha := math.Min(cfg.Smoothing, 1)
			if i > 0 {
				d = alpha*d + (1-alpha)*prev
			}
			prev = d
		}
		lines = append(lines, schema.ScoreLine{Index: i + 1, Divergence: d})
	}
	return lines, nil
}

// median returns the median of values, or 0 for an empty slice.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
