package recordstore

import (
	"fmt"
	"time"

	"github.com/mfaulds/driftline/schema"
)

// GetStatus returns status information about the record store.
func (s *SQLStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.quote(recordsTable))
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	if status.TotalRecords > 0 {
		lastQuery := fmt.Sprintf("SELECT record_id, created_at FROM %s ORDER BY record_id DESC LIMIT 1", s.quote(recordsTable))
		if err := s.scanIDAndTime(lastQuery, &status.LastRecordID, &status.LastCreatedAt); err != nil {
			return status, fmt.Errorf("failed to get last record info: %w", err)
		}

		var oldestID int64
		oldestQuery := fmt.Sprintf("SELECT record_id, created_at FROM %s ORDER BY record_id ASC LIMIT 1", s.quote(recordsTable))
		if err := s.scanIDAndTime(oldestQuery, &oldestID, &status.OldestCreated); err != nil {
			return status, fmt.Errorf("failed to get oldest record info: %w", err)
		}
	}

	for _, table := range []string{recordsTable, samplesTable, flagsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.quote(table))
		if err := s.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// scanIDAndTime scans an (id, created_at) pair, handling the SQLite text
// timestamp representation.
func (s *SQLStore) scanIDAndTime(query string, id *int64, t *time.Time) error {
	row := s.db.QueryRow(query)
	if s.backend == schema.SQLiteBackend {
		var timeStr string
		if err := row.Scan(id, &timeStr); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, timeStr)
		if err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		*t = parsed
		return nil
	}
	return row.Scan(id, t)
}

// GetAllRecordRows returns every record in flat export shape, ordered by id.
func (s *SQLStore) GetAllRecordRows() ([]schema.RecordExportRow, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT record_id, owner, filename, created_at, sample_count, flag_count FROM %s ORDER BY record_id",
		s.quote(recordsTable))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RecordExportRow
	for rows.Next() {
		var r schema.RecordExportRow
		if s.backend == schema.SQLiteBackend {
			var createdStr string
			if err := rows.Scan(&r.RecordID, &r.Owner, &r.Filename, &createdStr, &r.SampleCount, &r.FlagCount); err != nil {
				return nil, fmt.Errorf("failed to scan record row: %w", err)
			}
			r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at: %w", err)
			}
		} else {
			if err := rows.Scan(&r.RecordID, &r.Owner, &r.Filename, &r.CreatedAt, &r.SampleCount, &r.FlagCount); err != nil {
				return nil, fmt.Errorf("failed to scan record row: %w", err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return results, nil
}

// GetAllSampleRows returns every stored sample joined with its flag state,
// ordered by record then index. The join mirrors the CSV download layout.
func (s *SQLStore) GetAllSampleRows() ([]schema.SampleExportRow, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT s.record_id, s.idx, s.value,
		       CASE WHEN f.idx IS NULL THEN 0 ELSE 1 END,
		       COALESCE(f.confidence, 0)
		FROM %s s
		LEFT JOIN %s f ON f.record_id = s.record_id AND f.idx = s.idx
		ORDER BY s.record_id, s.idx`,
		s.quote(samplesTable), s.quote(flagsTable))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SampleExportRow
	for rows.Next() {
		var r schema.SampleExportRow
		var flagged int
		if err := rows.Scan(&r.RecordID, &r.Index, &r.Value, &flagged, &r.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		r.IsAnomaly = flagged == 1
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sample rows: %w", err)
	}
	return results, nil
}
