package monitor

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Cycle statuses recorded in poll_history.
const (
	CycleStatusStarted      = "STARTED"
	CycleStatusOK           = "OK"
	CycleStatusScrapeFailed = "SCRAPE_FAILED"
)

// CycleRecord is one row of poll history: what a single poll cycle saw and
// did. The history is operational metadata only; the snapshot file remains
// the sole source of truth for the last-known state.
type CycleRecord struct {
	CycleStart   time.Time
	CycleEnd     time.Time
	Status       string
	TotalUnits   int
	AddedUnits   int
	RemovedUnits int
	Notified     bool
	ErrorSummary string
}

// HistoryDB wraps the SQL database connection holding poll cycle history.
type HistoryDB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryDB initializes a new HistoryDB connection and ensures the schema
// is set up.
func NewHistoryDB(dataSourceName string, logger zerolog.Logger) (*HistoryDB, error) {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history database directory '%s': %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for '%s': %w", dataSourceName, err)
	}

	db := &HistoryDB{
		db:     dbInstance,
		logger: logger.With().Str("component", "HistoryDB").Logger(),
	}

	if err := db.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	db.logger.Info().Str("path", dataSourceName).Msg("Poll history database initialized")
	return db, nil
}

// Close closes the database connection.
func (d *HistoryDB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *HistoryDB) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS poll_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cycle_start DATETIME NOT NULL,
		cycle_end DATETIME NOT NULL,
		status TEXT NOT NULL,
		total_units INTEGER DEFAULT 0,
		added_units INTEGER DEFAULT 0,
		removed_units INTEGER DEFAULT 0,
		notified INTEGER DEFAULT 0,
		error_summary TEXT
	);
	`
	_, err := d.db.Exec(query)
	return err
}

// RecordCycle appends one poll cycle record. A nil receiver is a no-op so the
// history can be disabled by configuration.
func (d *HistoryDB) RecordCycle(rec CycleRecord) error {
	if d == nil || d.db == nil {
		return nil
	}

	query := `INSERT INTO poll_history
		(cycle_start, cycle_end, status, total_units, added_units, removed_units, notified, error_summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		rec.CycleStart, rec.CycleEnd, rec.Status,
		rec.TotalUnits, rec.AddedUnits, rec.RemovedUnits,
		rec.Notified, rec.ErrorSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to record poll cycle: %w", err)
	}
	return nil
}

// RecentCycles returns up to limit most recent cycle records, newest first.
func (d *HistoryDB) RecentCycles(limit int) ([]CycleRecord, error) {
	if d == nil || d.db == nil {
		return nil, nil
	}

	query := `SELECT cycle_start, cycle_end, status, total_units, added_units, removed_units, notified, COALESCE(error_summary, '')
		FROM poll_history ORDER BY id DESC LIMIT ?`
	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll history: %w", err)
	}
	defer rows.Close()

	var records []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		if err := rows.Scan(&rec.CycleStart, &rec.CycleEnd, &rec.Status,
			&rec.TotalUnits, &rec.AddedUnits, &rec.RemovedUnits,
			&rec.Notified, &rec.ErrorSummary); err != nil {
			return nil, fmt.Errorf("failed to scan poll history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
