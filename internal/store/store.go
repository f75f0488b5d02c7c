package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ajmayo/fortscan/internal/model"
)

// Store owns the SQLite database holding fort records, their period child
// rows, and the scrape log. Fort identity is (name_primary, state_territory,
// source_url): re-scraping a page updates in place.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Concurrent page workers all write here; a single connection keeps
	// SQLite from returning busy errors under load.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS forts (
			fort_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name_primary TEXT NOT NULL,
			alt_names TEXT,
			state_territory TEXT NOT NULL,
			state_full_name TEXT,
			location_text TEXT,
			fort_type TEXT,
			nationality TEXT,
			dates_raw TEXT,
			earliest_year INTEGER,
			latest_year INTEGER,
			source_url TEXT NOT NULL,
			source_section TEXT,
			description_raw TEXT,
			entry_raw TEXT,
			lat REAL,
			lon REAL,
			geocode_confidence TEXT,
			geocode_source TEXT,
			geocode_query TEXT,
			geocoded_at TEXT,
			scraped_at TEXT,
			UNIQUE(name_primary, state_territory, source_url)
		)`,
		`CREATE TABLE IF NOT EXISTS fort_periods (
			period_id INTEGER PRIMARY KEY AUTOINCREMENT,
			fort_id INTEGER NOT NULL REFERENCES forts(fort_id) ON DELETE CASCADE,
			start_year INTEGER,
			end_year INTEGER,
			period_notes TEXT,
			period_order INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_periods_fort_id ON fort_periods(fort_id)`,
		`CREATE INDEX IF NOT EXISTS idx_forts_state ON forts(state_territory)`,
		`CREATE TABLE IF NOT EXISTS scrape_log (
			url TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			forts_found INTEGER NOT NULL DEFAULT 0,
			error_message TEXT,
			scraped_at TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveFort upserts one flattened record and rewrites its period child rows.
// Returns the fort's row id.
func (s *Store) SaveFort(ctx context.Context, flat model.FlatRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO forts (
			name_primary, alt_names, state_territory, state_full_name,
			location_text, fort_type, nationality, dates_raw,
			earliest_year, latest_year, source_url, source_section,
			description_raw, entry_raw, scraped_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name_primary, state_territory, source_url) DO UPDATE SET
			alt_names=excluded.alt_names,
			state_full_name=excluded.state_full_name,
			location_text=excluded.location_text,
			fort_type=excluded.fort_type,
			nationality=excluded.nationality,
			dates_raw=excluded.dates_raw,
			earliest_year=excluded.earliest_year,
			latest_year=excluded.latest_year,
			source_section=excluded.source_section,
			description_raw=excluded.description_raw,
			entry_raw=excluded.entry_raw,
			scraped_at=excluded.scraped_at`,
		flat.NamePrimary, nullStr(flat.AltNames), flat.StateTerritory,
		nullStr(flat.StateFullName), nullStr(flat.LocationText),
		nullStr(flat.FortType), nullStr(flat.Nationality), nullStr(flat.DatesRaw),
		flat.EarliestYear, flat.LatestYear, flat.SourceURL,
		nullStr(flat.SourceSection), nullStr(flat.DescriptionRaw),
		nullStr(flat.EntryRaw), now,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting fort: %w", err)
	}

	var fortID int64
	err = tx.QueryRowContext(ctx,
		`SELECT fort_id FROM forts
		 WHERE name_primary = ? AND state_territory = ? AND source_url = ?`,
		flat.NamePrimary, flat.StateTerritory, flat.SourceURL,
	).Scan(&fortID)
	if err != nil {
		return 0, fmt.Errorf("resolving fort id: %w", err)
	}

	// Periods are rewritten wholesale on every save.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM fort_periods WHERE fort_id = ?`, fortID); err != nil {
		return 0, fmt.Errorf("clearing old periods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fort_periods (fort_id, start_year, end_year, period_notes, period_order)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing period insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range flat.Periods {
		if _, err := stmt.ExecContext(ctx,
			fortID, p.StartYear, p.EndYear, nullStr(p.Notes), p.Order); err != nil {
			return 0, fmt.Errorf("inserting period %d: %w", p.Order, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing fort: %w", err)
	}
	return fortID, nil
}

// LogScrape records the outcome of one page fetch+parse attempt.
func (s *Store) LogScrape(ctx context.Context, url, status string, fortsFound int, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO scrape_log (url, status, forts_found, error_message, scraped_at)
		 VALUES (?, ?, ?, ?, ?)`,
		url, status, fortsFound, nullStr(errMsg), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("logging scrape: %w", err)
	}
	return nil
}

// ScrapeStatus reports whether a URL was already scraped successfully and
// how many forts it yielded.
func (s *Store) ScrapeStatus(ctx context.Context, url string) (status string, fortsFound int, found bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT status, forts_found FROM scrape_log WHERE url = ?`, url,
	).Scan(&status, &fortsFound)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("querying scrape status: %w", err)
	}
	return status, fortsFound, true, nil
}

// nullStr maps empty strings to NULL so optional columns stay comparable.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
