package schema

import "time"

// StoreStatus holds status information about the record store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRecords  int64            `json:"total_records"`
	LastRecordID  int64            `json:"last_record_id"`
	LastCreatedAt time.Time        `json:"last_created_at"`
	OldestCreated time.Time        `json:"oldest_created_at"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RecordExportRow is the flat per-record shape used for data export.
type RecordExportRow struct {
	RecordID    int64
	Owner       string
	Filename    string
	CreatedAt   time.Time
	SampleCount int
	FlagCount   int
}

// SampleExportRow is the flat per-sample shape used for data export. It joins
// the stored series with its flags the same way the CSV download does.
type SampleExportRow struct {
	RecordID   int64
	Index      int
	Value      float64
	IsAnomaly  bool
	Confidence float64
}
