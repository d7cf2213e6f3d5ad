package calibration

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists calibration run metadata (version, sample count, date range,
// production time) to a local SQLite database (§4.11). The percentile tables
// themselves are not stored here; they live in the YAML document.
type Store struct {
	db *sql.DB
}

// OpenStore opens, creating if needed, the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS calibration_runs (
			version           TEXT PRIMARY KEY,
			sample_charts     INTEGER NOT NULL,
			date_range_start  TEXT NOT NULL,
			date_range_end    TEXT NOT NULL,
			produced_at       TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// RecordRun inserts or replaces the metadata row for one calibration run.
func (s *Store) RecordRun(version string, sampleCharts int, start, end time.Time) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO calibration_runs (version, sample_charts, date_range_start, date_range_end, produced_at) VALUES (?, ?, ?, ?, ?)`,
		version, sampleCharts, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LatestVersion returns the most recently produced calibration version, and
// whether any run has been recorded yet.
func (s *Store) LatestVersion() (string, bool, error) {
	row := s.db.QueryRow(`SELECT version FROM calibration_runs ORDER BY produced_at DESC LIMIT 1`)
	var version string
	if err := row.Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return version, true, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
