// Package parquet provides data structures and functions for exporting stored
// analysis records to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mfaulds/driftline/schema"
	"github.com/parquet-go/parquet-go"
)

// Record represents one stored analysis record with its counts.
// This struct maps to the driftline_records database table.
type Record struct {
	// RecordID is the unique identifier for this record
	RecordID int64 `parquet:"record_id,snappy"`

	// Owner is the opaque owner token the record belongs to
	Owner string `parquet:"owner,snappy"`

	// Filename is the name the series was uploaded under
	Filename string `parquet:"filename,snappy"`

	// CreatedAt is when the record was persisted (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// SampleCount is the number of samples in the stored series
	SampleCount int32 `parquet:"sample_count,snappy"`

	// FlagCount is the number of anomaly flags on the record
	FlagCount int32 `parquet:"flag_count,snappy"`
}

// Sample represents a single stored sample joined with its flag state.
// One row per sample, in the same layout as the CSV download.
type Sample struct {
	// RecordID references the parent record
	RecordID int64 `parquet:"record_id,snappy"`

	// Index is the 1-based position of the sample in its series
	Index int32 `parquet:"idx,snappy"`

	// Value is the sample value
	Value float64 `parquet:"value,snappy"`

	// IsAnomaly reports whether the sample was flagged
	IsAnomaly bool `parquet:"is_anomaly,snappy"`

	// Confidence is the flag confidence, 0 for unflagged samples
	Confidence float64 `parquet:"confidence,snappy"`
}

// WriteRecordsParquet writes a slice of Record structs to a Parquet file.
func WriteRecordsParquet(data []Record, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Record struct tags
	writer := parquet.NewGenericWriter[Record](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSamplesParquet writes a slice of Sample structs to a Parquet file.
func WriteSamplesParquet(data []Sample, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Sample struct tags
	writer := parquet.NewGenericWriter[Sample](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRecordRows converts schema.RecordExportRow to Record for Parquet export.
func ConvertRecordRows(rows []schema.RecordExportRow) []Record {
	result := make([]Record, len(rows))
	for i, row := range rows {
		result[i] = Record{
			RecordID:    row.RecordID,
			Owner:       row.Owner,
			Filename:    row.Filename,
			CreatedAt:   row.CreatedAt,
			SampleCount: int32(row.SampleCount),
			FlagCount:   int32(row.FlagCount),
		}
	}
	return result
}

// ConvertSampleRows converts schema.SampleExportRow to Sample for Parquet export.
func ConvertSampleRows(rows []schema.SampleExportRow) []Sample {
	result := make([]Sample, len(rows))
	for i, row := range rows {
		result[i] = Sample{
			RecordID:   row.RecordID,
			Index:      int32(row.Index),
			Value:      row.Value,
			IsAnomaly:  row.IsAnomaly,
			Confidence: row.Confidence,
		}
	}
	return result
}
