package recordstore

import (
	"errors"
	"fmt"

	"github.com/mfaulds/driftline/internal/parquet"
)

// ExecuteRecordsExport performs the actual export of stored records to Parquet files.
func ExecuteRecordsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the record store
	store := Manager.GetRecordStore()
	if store == nil {
		return errors.New("record store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRecords == 0 {
		return errors.New("no records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total records: %d\n", status.TotalRecords)
	fmt.Printf("Total samples: %d\n", status.TableSizes[samplesTable])

	// Retrieve all records
	recordRows, err := store.GetAllRecordRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve records: %w", err)
	}

	// Retrieve all samples with their flag state
	sampleRows, err := store.GetAllSampleRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve samples: %w", err)
	}

	// Convert to Parquet format
	parquetRecords := parquet.ConvertRecordRows(recordRows)
	parquetSamples := parquet.ConvertSampleRows(sampleRows)

	// Write records to Parquet
	recordsFile := outputFile + ".records.parquet"
	if err := parquet.WriteRecordsParquet(parquetRecords, recordsFile); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	fmt.Printf("Exported %d records to: %s\n", len(parquetRecords), recordsFile)

	// Write samples to Parquet
	samplesFile := outputFile + ".samples.parquet"
	if err := parquet.WriteSamplesParquet(parquetSamples, samplesFile); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	fmt.Printf("Exported %d sample rows to: %s\n", len(parquetSamples), samplesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
