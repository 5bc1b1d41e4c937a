package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SpotWatch/internal/model"
)

// SQLiteStore persists the price timeline to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so export/graph reads don't block a concurrent fetch.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			zone               TEXT    NOT NULL,
			ts                 INTEGER NOT NULL,
			value              REAL    NOT NULL,
			currency           TEXT    NOT NULL,
			resolution_minutes INTEGER NOT NULL,
			PRIMARY KEY (zone, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_zone_ts ON prices(zone, ts)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Upsert writes the batch inside a single transaction. An existing row at
// (zone, ts) is overwritten in place.
func (s *SQLiteStore) Upsert(points []model.PricePoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO prices (zone, ts, value, currency, resolution_minutes)
		VALUES (?,?,?,?,?)
		ON CONFLICT(zone, ts) DO UPDATE SET
			value = excluded.value,
			currency = excluded.currency,
			resolution_minutes = excluded.resolution_minutes`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.Zone, p.Timestamp.Unix(), p.Value, p.Currency, p.Resolution.Minutes()); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("upsert %s@%s: %w", p.Zone, p.Timestamp.Format(time.RFC3339), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return len(points), nil
}

// Range reads points for a zone over [start, end), ascending by timestamp.
func (s *SQLiteStore) Range(zone string, start, end time.Time) ([]TimelinePoint, error) {
	rows, err := s.db.Query(`SELECT ts, value, currency, resolution_minutes
		FROM prices WHERE zone = ? AND ts >= ? AND ts < ? ORDER BY ts`,
		zone, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	defer rows.Close()

	var points []TimelinePoint
	for rows.Next() {
		var (
			ts      int64
			value   float64
			cur     string
			resMins int
		)
		if err := rows.Scan(&ts, &value, &cur, &resMins); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		points = append(points, TimelinePoint{
			Zone:       zone,
			Timestamp:  time.Unix(ts, 0).UTC(),
			Value:      value,
			Currency:   cur,
			Resolution: model.Resolution(resMins),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return points, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
