package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SpotFetch/internal/model"
)

// datetimeLayout is the stored form of the primary key, always UTC.
const datetimeLayout = "2006-01-02 15:04:05"

// SQLiteStore persists price rows to a SQLite database, one table per
// indicator.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database, creating the
// parent directory if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while a fetch writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

// TableName returns the table for an indicator. Indicator 600 keeps the
// historical_prices name for compatibility with existing databases.
func TableName(indicatorID int) string {
	if indicatorID == model.DefaultIndicator {
		return "historical_prices"
	}
	return fmt.Sprintf("spot_prices_%d", indicatorID)
}

func (s *SQLiteStore) migrate(indicatorID int) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		datetime          TEXT PRIMARY KEY,
		year              INTEGER,
		month             INTEGER,
		day               INTEGER,
		hour              INTEGER,
		minute            INTEGER,
		price_eur_per_mwh REAL
	)`, TableName(indicatorID))
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("create table %s: %w", TableName(indicatorID), err)
	}
	return nil
}

// InsertPrices upserts all records of the series inside one transaction.
// The datetime primary key makes re-fetching an already stored range
// harmless.
func (s *SQLiteStore) InsertPrices(series *model.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.migrate(series.IndicatorID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT OR REPLACE INTO %s
		(datetime, year, month, day, hour, minute, price_eur_per_mwh)
		VALUES (?,?,?,?,?,?,?)`, TableName(series.IndicatorID)))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range series.Records {
		ts := r.Time.UTC()
		price, _ := r.Price.Float64()
		if _, err := stmt.Exec(
			ts.Format(datetimeLayout),
			ts.Year(), int(ts.Month()), ts.Day(), ts.Hour(), ts.Minute(),
			price,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", ts.Format(datetimeLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LatestTimestamp returns the newest stored datetime for the indicator.
// ok is false when the table is missing or empty.
func (s *SQLiteStore) LatestTimestamp(indicatorID int) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest sql.NullString
	row := s.db.QueryRow(fmt.Sprintf("SELECT MAX(datetime) FROM %s", TableName(indicatorID)))
	if err := row.Scan(&latest); err != nil {
		// Table doesn't exist yet.
		return time.Time{}, false, nil
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	ts, err := time.ParseInLocation(datetimeLayout, latest.String, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse stored datetime %q: %w", latest.String, err)
	}
	return ts, true, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
