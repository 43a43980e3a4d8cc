package scorer

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreLog(t *testing.T) {
	out := []byte(`{"divergence":0.1,"window_id":3,"integrity":"af91"}
{"divergence":0.55,"integrity":"b002"}

{"divergence":0.0}
`)
	lines, err := ParseScoreLog(out)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, schema.ScoreLine{Index: 1, Divergence: 0.1}, lines[0])
	assert.Equal(t, schema.ScoreLine{Index: 2, Divergence: 0.55}, lines[1])
	assert.Equal(t, schema.ScoreLine{Index: 3, Divergence: 0.0}, lines[2])
}

func TestParseScoreLogDropsBadLines(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want int
	}{
		{"not json", "garbage\n{\"divergence\":0.2}\n", 1},
		{"missing divergence", "{\"window_id\":1}\n{\"divergence\":0.2}\n", 1},
		{"negative divergence", "{\"divergence\":-0.5}\n{\"divergence\":0.2}\n", 1},
		{"empty output", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ParseScoreLog([]byte(tt.out))
			require.NoError(t, err)
			assert.Len(t, lines, tt.want)
		})
	}
}

func TestVerifyCount(t *testing.T) {
	lines := []schema.ScoreLine{{Index: 1, Divergence: 0.1}, {Index: 2, Divergence: 0.2}}

	got, err := verifyCount(lines, 2)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	_, err = verifyCount(lines, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrScorerContractViolation))
}

func TestExternalMissingBinary(t *testing.T) {
	s := NewExternal("definitely-not-installed-rnse-core")
	series := schema.TimeSeries{Values: []float64{1, 2, 3}}

	_, err := s.Score(context.Background(), series, contract.ScorerConfig{Seed: 1, Threshold: 0.3, Window: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrScorerUnavailable))
}

func TestExternalCancelledContext(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewExternal("sh")
	series := schema.TimeSeries{Values: []float64{1, 2, 3}}
	_, err := s.Score(ctx, series, contract.ScorerConfig{Seed: 1, Threshold: 0.3, Window: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, contract.ErrScorerContractViolation))
	assert.False(t, errors.Is(err, contract.ErrScorerUnavailable))
}

func TestSyntheticFlatSeries(t *testing.T) {
	series := schema.TimeSeries{Values: []float64{10, 10, 10, 10, 10}}

	lines, err := NewSynthetic().Score(context.Background(), series, contract.ScorerConfig{})
	require.NoError(t, err)
	require.Len(t, lines, 5)
	for i, l := range lines {
		assert.Equal(t, i+1, l.Index)
		assert.Equal(t, 0.0, l.Divergence)
	}
}

func TestSyntheticDeviationFromBaseline(t *testing.T) {
	// Baseline (median) is 10; the spike at 15.5 diverges by 5.5/10 = 0.55.
	values := make([]float64, 20)
	for i := range values {
		values[i] = 10.0
	}
	values[7] = 15.5

	lines, err := NewSynthetic().Score(context.Background(), schema.TimeSeries{Values: values}, contract.ScorerConfig{})
	require.NoError(t, err)
	require.Len(t, lines, 20)
	assert.InDelta(t, 0.55, lines[7].Divergence, 1e-9)
	assert.InDelta(t, 0.0, lines[6].Divergence, 1e-9)
}

func TestSyntheticDeterministic(t *testing.T) {
	series := schema.TimeSeries{Values: []float64{1, 5, 2, 9, 4, 4, 4, 8, 2, 3}}
	cfg := contract.ScorerConfig{Seed: 1, Smoothing: 0.5, Window: 4}

	a, err := NewSynthetic().Score(context.Background(), series, cfg)
	require.NoError(t, err)
	b, err := NewSynthetic().Score(context.Background(), series, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Seed must not matter for the synthetic variant.
	cfg.Seed = 999
	c, err := NewSynthetic().Score(context.Background(), series, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, c)
}
