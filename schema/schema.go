// Package schema has configs, models and shared constants for all parts of driftline.
package schema

import "time"

// TimeSeries is an ordered sequence of numeric samples, 1-indexed by position.
// Labels carries the optional first-column text from the source CSV (usually a
// timestamp); it is informational only and never used for ordering. When
// present it has the same length as Values.
type TimeSeries struct {
	Values []float64 `json:"values"`
	Labels []string  `json:"labels,omitempty"`
}

// Len returns the number of samples in the series.
func (ts TimeSeries) Len() int {
	return len(ts.Values)
}

// ScoreLine is one scorer output entry. Index corresponds 1:1 with the input
// sample at the same position; Divergence is the non-negative deviation
// magnitude the external scorer emitted for it. All other fields the scorer
// emits are opaque and dropped at the adapter boundary.
type ScoreLine struct {
	Index      int     `json:"index"`
	Divergence float64 `json:"divergence"`
}

// AnomalyFlag marks one sample as anomalous. Confidence is divergence
// normalized to [0,1]. Flags are always ordered ascending by Index and an
// index appears at most once per record.
type AnomalyFlag struct {
	Index      int     `json:"index"`
	Confidence float64 `json:"confidence"`
}

// AnalysisRecord is the persisted, immutable outcome of one upload-and-score
// run. Records are write-once and owned exclusively by one owner identity.
type AnalysisRecord struct {
	ID        int64         `json:"id"`
	Owner     string        `json:"-"`
	Filename  string        `json:"filename"`
	Series    TimeSeries    `json:"series"`
	Flags     []AnomalyFlag `json:"flags"`
	CreatedAt time.Time     `json:"created_at"`
}

// AnomalyCount returns the number of flagged samples.
func (r AnalysisRecord) AnomalyCount() int {
	return len(r.Flags)
}

// RecordSummary is the lightweight view of a record used for history listings
// and upload responses. Indices and Confidences are populated only on upload
// responses; history listings omit them to keep payloads small.
type RecordSummary struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	SampleCount  int       `json:"sample_count"`
	AnomalyCount int       `json:"anomaly_count"`
	CreatedAt    time.Time `json:"created_at"`

	Indices     []int     `json:"anomaly_indices,omitempty"`
	Confidences []float64 `json:"confidence_scores,omitempty"`
}

// Summarize builds the full upload-response summary for a record.
func Summarize(r AnalysisRecord) RecordSummary {
	s := RecordSummary{
		ID:           r.ID,
		Filename:     r.Filename,
		SampleCount:  r.Series.Len(),
		AnomalyCount: len(r.Flags),
		CreatedAt:    r.CreatedAt,
	}
	for _, f := range r.Flags {
		s.Indices = append(s.Indices, f.Index)
		s.Confidences = append(s.Confidences, f.Confidence)
	}
	return s
}
