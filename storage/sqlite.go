package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"carneiros_checker/models"
)

// SQLiteStore holds the daemon's operational data: check-run records,
// their logs and the site health probe outcomes. Prices are never
// stored here.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS check_runs (
		id INTEGER PRIMARY KEY,
		batch_id TEXT NOT NULL,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		listings_checked INTEGER DEFAULT 0,
		listings_available INTEGER DEFAULT 0,
		errors_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS check_logs (
		id INTEGER PRIMARY KEY,
		run_id INTEGER,
		timestamp DATETIME,
		level TEXT,
		message TEXT,
		listing_key TEXT
	);

	CREATE TABLE IF NOT EXISTS site_health (
		id INTEGER PRIMARY KEY,
		checked_at DATETIME,
		healthy BOOLEAN,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON check_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_logs_run ON check_logs(run_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_health_checked ON site_health(checked_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateRun(run *models.CheckRun) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO check_runs (batch_id, started_at, status, listings_checked, listings_available, errors_count)
		VALUES (?, ?, ?, 0, 0, 0)`,
		run.BatchID, run.StartedAt, run.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) UpdateRun(run *models.CheckRun) error {
	_, err := s.db.Exec(`
		UPDATE check_runs SET finished_at = ?, status = ?, listings_checked = ?,
			listings_available = ?, errors_count = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.ListingsChecked,
		run.ListingsAvailable, run.ErrorsCount, run.ID)
	return err
}

func (s *SQLiteStore) Log(runID *int64, level models.LogLevel, message, listingKey string) error {
	_, err := s.db.Exec(`
		INSERT INTO check_logs (run_id, timestamp, level, message, listing_key)
		VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now(), level, message, listingKey)
	return err
}

// RecentRuns returns the latest runs, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]models.CheckRun, error) {
	rows, err := s.db.Query(`
		SELECT id, batch_id, started_at, finished_at, status,
			listings_checked, listings_available, errors_count
		FROM check_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.CheckRun
	for rows.Next() {
		var run models.CheckRun
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.BatchID, &run.StartedAt, &finished, &run.Status,
			&run.ListingsChecked, &run.ListingsAvailable, &run.ErrorsCount); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) RecordHealth(healthy bool, detail string) error {
	_, err := s.db.Exec(`
		INSERT INTO site_health (checked_at, healthy, detail)
		VALUES (?, ?, ?)`,
		time.Now(), healthy, detail)
	return err
}

// LastHealth returns the most recent probe outcome, or nil when no
// probe has run yet.
func (s *SQLiteStore) LastHealth() (*models.SiteHealth, error) {
	row := s.db.QueryRow(`
		SELECT checked_at, healthy, detail
		FROM site_health ORDER BY checked_at DESC LIMIT 1`)

	var h models.SiteHealth
	err := row.Scan(&h.CheckedAt, &h.Healthy, &h.Detail)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
