package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/recordstore"
	"github.com/mfaulds/driftline/internal/scorer"
	"github.com/mfaulds/driftline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scorerFunc adapts a function to the Scorer interface for tests.
type scorerFunc func(ctx context.Context, series schema.TimeSeries, cfg contract.ScorerConfig) ([]schema.ScoreLine, error)

func (f scorerFunc) Score(ctx context.Context, series schema.TimeSeries, cfg contract.ScorerConfig) ([]schema.ScoreLine, error) {
	return f(ctx, series, cfg)
}

func pipelineConfig() *contract.Config {
	return &contract.Config{
		ScorerKind:      schema.SyntheticKind,
		Threshold:       contract.DefaultThreshold,
		NormConst:       contract.DefaultNormConst,
		MinSeriesLength: contract.DefaultMinSeriesLength,
		Window:          contract.DefaultWindow,
		Seed:            contract.DefaultSeed,
	}
}

// spikeCSV builds a 100-row upload at baseline 10.0 with rows 40 to 45
// (1-based) raised to 15.5.
func spikeCSV() []byte {
	var sb strings.Builder
	sb.WriteString("timestamp,value\n")
	for i := 1; i <= 100; i++ {
		v := 10.0
		if i >= 40 && i <= 45 {
			v = 15.5
		}
		fmt.Fprintf(&sb, "2026-03-01T%02d:00:00Z,%g\n", i%24, v)
	}
	return []byte(sb.String())
}

func TestRunAnalysisSpikeScenario(t *testing.T) {
	store, err := recordstore.NewRecordStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	cfg := pipelineConfig()
	ctx := context.Background()

	summary, err := RunAnalysis(ctx, scorer.NewSynthetic(), store, cfg, "alice", "spike.csv", spikeCSV())
	require.NoError(t, err)

	assert.Greater(t, summary.ID, int64(0))
	assert.Equal(t, "spike.csv", summary.Filename)
	assert.Equal(t, 100, summary.SampleCount)

	// Only the spike rows cross the threshold: divergence |15.5-10|/10 = 0.55.
	assert.Equal(t, []int{40, 41, 42, 43, 44, 45}, summary.Indices)
	for _, c := range summary.Confidences {
		assert.InDelta(t, 0.55, c, 1e-9)
		assert.Greater(t, c, cfg.Threshold)
	}

	// The stored record round-trips through the download format.
	data, err := DownloadRecord(ctx, store, "alice", summary.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 101) // header + 100 samples
	assert.Equal(t, "index,value,is_anomaly,confidence", lines[0])
	assert.Equal(t, "40,15.5,true,0.55", lines[40])
	assert.Equal(t, "46,10,false,0", lines[46])
}

func TestRunAnalysisIsDeterministic(t *testing.T) {
	store, err := recordstore.NewRecordStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	cfg := pipelineConfig()
	ctx := context.Background()

	first, err := RunAnalysis(ctx, scorer.NewSynthetic(), store, cfg, "alice", "spike.csv", spikeCSV())
	require.NoError(t, err)
	second, err := RunAnalysis(ctx, scorer.NewSynthetic(), store, cfg, "alice", "spike.csv", spikeCSV())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Indices, second.Indices)
	assert.Equal(t, first.Confidences, second.Confidences)

	firstData, err := DownloadRecord(ctx, store, "alice", first.ID)
	require.NoError(t, err)
	secondData, err := DownloadRecord(ctx, store, "alice", second.ID)
	require.NoError(t, err)
	assert.Equal(t, firstData, secondData)
}

func TestRunAnalysisWithoutStore(t *testing.T) {
	cfg := pipelineConfig()

	summary, err := RunAnalysis(context.Background(), scorer.NewSynthetic(), nil, cfg, "alice", "spike.csv", spikeCSV())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.ID)
	assert.Equal(t, 6, summary.AnomalyCount)
}

func TestRunAnalysisPassesFlagsToStore(t *testing.T) {
	store := &recordstore.MockRecordStore{}
	store.On("Create", mock.Anything, "alice", "spike.csv", mock.Anything,
		mock.MatchedBy(func(flags []schema.AnomalyFlag) bool {
			if len(flags) != 6 {
				return false
			}
			return flags[0].Index == 40 && flags[5].Index == 45
		})).Return(int64(7), nil)

	cfg := pipelineConfig()
	summary, err := RunAnalysis(context.Background(), scorer.NewSynthetic(), store, cfg, "alice", "spike.csv", spikeCSV())
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.ID)
	store.AssertExpectations(t)
}

func TestRunAnalysisStoreFailure(t *testing.T) {
	store := &recordstore.MockRecordStore{}
	store.On("Create", mock.Anything, "alice", "spike.csv", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("disk full"))

	cfg := pipelineConfig()
	_, err := RunAnalysis(context.Background(), scorer.NewSynthetic(), store, cfg, "alice", "spike.csv", spikeCSV())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist record")
	assert.Contains(t, err.Error(), "disk full")
	store.AssertExpectations(t)
}

func TestDownloadRecordStoreError(t *testing.T) {
	store := &recordstore.MockRecordStore{}
	store.On("Get", mock.Anything, "alice", int64(3)).
		Return(schema.AnalysisRecord{}, contract.ErrNotFound)

	_, err := DownloadRecord(context.Background(), store, "alice", 3)
	assert.ErrorIs(t, err, contract.ErrNotFound)
	store.AssertExpectations(t)
}

func TestRunAnalysisCountInvariant(t *testing.T) {
	cfg := pipelineConfig()

	short := scorerFunc(func(_ context.Context, series schema.TimeSeries, _ contract.ScorerConfig) ([]schema.ScoreLine, error) {
		lines := make([]schema.ScoreLine, 0, series.Len()-1)
		for i := 1; i < series.Len(); i++ {
			lines = append(lines, schema.ScoreLine{Index: i, Divergence: 0})
		}
		return lines, nil
	})

	_, err := RunAnalysis(context.Background(), short, nil, cfg, "alice", "spike.csv", spikeCSV())
	assert.ErrorIs(t, err, contract.ErrScorerContractViolation)
}

func TestRunAnalysisDecodeFailures(t *testing.T) {
	cfg := pipelineConfig()
	sc := scorer.NewSynthetic()

	_, err := RunAnalysis(context.Background(), sc, nil, cfg, "alice", "empty.csv", []byte("  \n"))
	assert.ErrorIs(t, err, contract.ErrMalformedInput)

	short := []byte("timestamp,value\na,1\nb,2\nc,3\n")
	_, err = RunAnalysis(context.Background(), sc, nil, cfg, "alice", "short.csv", short)
	assert.ErrorIs(t, err, contract.ErrInsufficientData)
}

func TestRunAnalysisScorerErrorPropagates(t *testing.T) {
	cfg := pipelineConfig()

	down := scorerFunc(func(context.Context, schema.TimeSeries, contract.ScorerConfig) ([]schema.ScoreLine, error) {
		return nil, contract.ErrScorerUnavailable
	})

	_, err := RunAnalysis(context.Background(), down, nil, cfg, "alice", "spike.csv", spikeCSV())
	assert.ErrorIs(t, err, contract.ErrScorerUnavailable)
}

func TestNewScorerFromConfig(t *testing.T) {
	cfg := pipelineConfig()
	assert.IsType(t, scorer.Synthetic{}, NewScorerFromConfig(cfg))

	cfg.ScorerKind = schema.ExternalKind
	cfg.ScorerPath = "rnse-core"
	assert.IsType(t, &scorer.External{}, NewScorerFromConfig(cfg))
}

func TestDownloadRecordNotFound(t *testing.T) {
	store, err := recordstore.NewRecordStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = DownloadRecord(context.Background(), store, "alice", 42)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}
