package cmd

import (
	"fmt"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/recordstore"
	"github.com/mfaulds/driftline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordsSetup loads minimal configuration needed for record management.
// This is used by commands that need store access without full shared setup.
func recordsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("records-backend")
	connStr := viper.GetString("records-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Output file is used by the export command
	outputFile := viper.GetString("output-file")

	if err := recordstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.RecordsBackend = backend
	cfg.RecordsDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// recordsSetupWrapper wraps recordsSetup to provide PreRunE for records commands.
func recordsSetupWrapper(_ *cobra.Command, _ []string) error {
	return recordsSetup()
}

// recordsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func recordsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("records-backend")
	connStr := viper.GetString("records-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRecordsDBFilePath()
	}

	cfg.RecordsBackend = backend
	cfg.RecordsDBConnect = connStr

	return nil
}

// recordsMigrateSetupWrapper wraps recordsMigrateSetup to provide PreRunE for migrate command.
func recordsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return recordsMigrateSetup()
}

// recordsCmd focused on record store management.
//
// Note: Record subcommands use minimal initialization (recordsSetup) instead of
// the full sharedSetup used by analysis commands. This avoids scorer config
// processing for simple store operations.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the stored analysis records",
	Long: `Manage the record store that holds persisted analysis results.

Every successful analysis stores:
- Record metadata (owner, filename, creation time)
- The decoded series samples with their labels
- The anomaly flags with confidence scores

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show record store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored records
  migrate - Run database schema migrations

Examples:
  # Check store status
  driftline records status

  # Export for analysis in pandas/DuckDB
  driftline records export --output-file record-data.parquet`,
}

// recordsStatusCmd shows record store status.
var recordsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show detailed information about the record store.

Displays:
- Backend type and connection status
- Total number of records stored
- Last and oldest record timestamps
- Database table sizes

Examples:
  # Check record store status
  driftline records status`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := recordstore.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get record store status", err)
		}
		recordstore.PrintStoreStatus(status)
	},
}

// recordsExportCmd exports record data to Parquet files.
var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records to Parquet for BI tools and analytics",
	Long: `Export all stored records to Parquet format for use with analytics tools.

Exports two datasets:
- Records - metadata about each stored analysis result
- Samples - per-sample values with anomaly flags and confidences

Parquet format enables fast querying with DuckDB, Apache Spark and pandas,
plus direct import into BI tools.

Requires: --output-file parameter

Examples:
  # Export all data
  driftline records export --output-file record-data.parquet

  # Use with DuckDB for analysis
  driftline records export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.samples.parquet') LIMIT 10"`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := recordstore.ExecuteRecordsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export record data", err)
		}
	},
}

// recordsClearCmd clears the stored records.
var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored analysis records",
	Long: `Delete all stored records, samples and anomaly flags.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  driftline records export --output-file backup.parquet
  driftline records clear`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := recordstore.ClearRecords(cfg.RecordsBackend, contract.GetRecordsDBFilePath(), cfg.RecordsDBConnect); err != nil {
			contract.LogFatal("Failed to clear record data", err)
		}
		fmt.Println("Record data cleared successfully.")
	},
}

// recordsMigrateCmd runs database migrations for the record store.
var recordsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the record store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  driftline records migrate

  # Migrate to specific version
  driftline records migrate --target-version 1

  # Rollback all migrations
  driftline records migrate --target-version 0`,
	PreRunE: recordsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := recordstore.MigrateRecords(cfg.RecordsBackend, cfg.RecordsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
