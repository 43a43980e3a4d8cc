package recordstore

import (
	"database/sql"
	"fmt"

	"github.com/mfaulds/driftline/schema"
)

// createRecordTables creates the record storage tables if they do not exist.
// The `records migrate` command manages versioned schema changes on top of
// this baseline. Statements are executed one at a time; the pgx stdlib driver
// rejects multi-statement Exec calls.
func createRecordTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries := []string{
		getCreateRecordsQuery(backend),
		getCreateSamplesQuery(backend),
		getCreateFlagsQuery(backend),
	}
	if q := getCreateOwnerIndexQuery(backend); q != "" {
		queries = append(queries, q)
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create record schema: %w", err)
		}
	}
	return nil
}

// getCreateRecordsQuery returns the CREATE TABLE query for driftline_records.
func getCreateRecordsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(recordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				owner VARCHAR(255) NOT NULL,
				filename VARCHAR(512) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				sample_count INT NOT NULL,
				flag_count INT NOT NULL,
				INDEX idx_records_owner (owner)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGSERIAL PRIMARY KEY,
				owner TEXT NOT NULL,
				filename TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				sample_count INT NOT NULL,
				flag_count INT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER PRIMARY KEY AUTOINCREMENT,
				owner TEXT NOT NULL,
				filename TEXT NOT NULL,
				created_at TEXT NOT NULL,
				sample_count INTEGER NOT NULL,
				flag_count INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateOwnerIndexQuery returns the owner index query for ListByOwner.
// MySQL declares the index inline in the CREATE TABLE.
func getCreateOwnerIndexQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(recordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return ""
	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_records_owner ON %s (owner);`, quotedTableName)
	}
}

// getCreateSamplesQuery returns the CREATE TABLE query for driftline_samples.
func getCreateSamplesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(samplesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				idx INT NOT NULL,
				value DOUBLE NOT NULL,
				label VARCHAR(255),
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				idx INT NOT NULL,
				value DOUBLE PRECISION NOT NULL,
				label TEXT,
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER NOT NULL,
				idx INTEGER NOT NULL,
				value REAL NOT NULL,
				label TEXT,
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)
	}
}

// getCreateFlagsQuery returns the CREATE TABLE query for driftline_flags.
func getCreateFlagsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(flagsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				idx INT NOT NULL,
				confidence DOUBLE NOT NULL,
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				idx INT NOT NULL,
				confidence DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER NOT NULL,
				idx INTEGER NOT NULL,
				confidence REAL NOT NULL,
				PRIMARY KEY (record_id, idx)
			);
		`, quotedTableName)
	}
}
