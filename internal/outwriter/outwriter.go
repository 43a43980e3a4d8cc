// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints an analysis summary using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.RecordSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResult(summary, cfg, duration)
}

// WriteHistory prints record summaries using the configured output format.
func (ow *OutWriter) WriteHistory(summaries []schema.RecordSummary, cfg *contract.Config) error {
	return WriteHistoryResults(summaries, cfg)
}
