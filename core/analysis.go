package core

import (
	"context"
	"fmt"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/scorer"
	"github.com/mfaulds/driftline/internal/seriescsv"
	"github.com/mfaulds/driftline/schema"
)

// NewScorerFromConfig selects the scorer implementation for the configured kind.
func NewScorerFromConfig(cfg *contract.Config) contract.Scorer {
	if cfg.ScorerKind == schema.SyntheticKind {
		return scorer.NewSynthetic()
	}
	return scorer.NewExternal(cfg.ScorerPath)
}

// RunAnalysis runs the full pipeline for one uploaded series: decode the CSV,
// score it, extract anomaly flags and persist the record. The returned summary
// carries the flags in ascending index order.
//
// With a nil store the analysis still runs but nothing is persisted and the
// summary's record id is zero.
func RunAnalysis(ctx context.Context, sc contract.Scorer, store contract.RecordStore, cfg *contract.Config, owner, filename string, raw []byte) (schema.RecordSummary, error) {
	series, err := seriescsv.Decode(raw, cfg.MinSeriesLength)
	if err != nil {
		return schema.RecordSummary{}, err
	}

	scores, err := sc.Score(ctx, series, contract.ScorerConfigFromConfig(cfg))
	if err != nil {
		return schema.RecordSummary{}, err
	}
	// Scoring a series must yield exactly one score per sample. A scorer that
	// returns anything else cannot be trusted for extraction.
	if len(scores) != series.Len() {
		return schema.RecordSummary{}, fmt.Errorf(
			"%w: got %d scores for %d samples",
			contract.ErrScorerContractViolation, len(scores), series.Len())
	}

	flags := Extract(scores, cfg.Threshold, cfg.NormConst)

	rec := schema.AnalysisRecord{
		Owner:    owner,
		Filename: filename,
		Series:   series,
		Flags:    flags,
	}
	if store != nil {
		rec.ID, err = store.Create(ctx, owner, filename, series, flags)
		if err != nil {
			return schema.RecordSummary{}, fmt.Errorf("failed to persist record: %w", err)
		}
	}

	return schema.Summarize(rec), nil
}
