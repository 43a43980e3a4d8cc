// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/mfaulds/driftline/schema"
)

// ScorerConfig carries the parameters handed to the external scoring function.
// Seed, Threshold and Window are always passed; Smoothing is optional and
// omitted when zero.
type ScorerConfig struct {
	Seed      int64
	Threshold float64
	Window    int
	Smoothing float64
}

// Scorer is the capability boundary around the divergence scorer. The
// production variant shells out to the proprietary rnse-core binary; the
// synthetic variant produces deterministic divergence for tests and local
// development. Implementations must return exactly one ScoreLine per input
// sample, in input order, or fail with ErrScorerContractViolation.
type Scorer interface {
	Score(ctx context.Context, series schema.TimeSeries, cfg ScorerConfig) ([]schema.ScoreLine, error)
}

// RecordStore defines the interface for persisting analysis records.
// Records are write-once: Create is the only mutation besides Clear.
// Get must report records owned by a different owner as ErrNotFound so that
// record existence is never confirmed to non-owners.
type RecordStore interface {
	// Create persists a new record atomically and returns its fresh id.
	Create(ctx context.Context, owner, filename string, series schema.TimeSeries, flags []schema.AnomalyFlag) (int64, error)

	// Get returns the full record for (owner, id), or ErrNotFound.
	Get(ctx context.Context, owner string, id int64) (schema.AnalysisRecord, error)

	// ListByOwner returns the owner's record summaries, most-recent first.
	ListByOwner(ctx context.Context, owner string) ([]schema.RecordSummary, error)

	// GetStatus returns status information about the record store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRecordRows returns every record in flat export shape.
	GetAllRecordRows() ([]schema.RecordExportRow, error)

	// GetAllSampleRows returns every stored sample joined with its flag state.
	GetAllSampleRows() ([]schema.SampleExportRow, error)

	// Clear removes all stored records.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
