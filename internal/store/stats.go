package store

import (
	"context"
	"fmt"
	"time"
)

// StateCount pairs a state code with its fort count.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// Stats summarizes database contents.
type Stats struct {
	TotalForts   int          `json:"total_forts"`
	TotalPeriods int          `json:"total_periods"`
	PagesScraped int          `json:"pages_scraped"`
	FortsByState []StateCount `json:"forts_by_state"`
}

// Stats returns totals plus a per-state breakdown ordered by count.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM forts`, &st.TotalForts},
		{`SELECT COUNT(*) FROM fort_periods`, &st.TotalPeriods},
		{`SELECT COUNT(*) FROM scrape_log WHERE status = 'success'`, &st.PagesScraped},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, fmt.Errorf("counting: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT state_territory, COUNT(*) FROM forts
		 GROUP BY state_territory ORDER BY COUNT(*) DESC`)
	if err != nil {
		return st, fmt.Errorf("querying state breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc StateCount
		if err := rows.Scan(&sc.State, &sc.Count); err != nil {
			return st, fmt.Errorf("scanning state row: %w", err)
		}
		st.FortsByState = append(st.FortsByState, sc)
	}
	return st, rows.Err()
}

// GeocodeStats summarizes geocoding progress.
type GeocodeStats struct {
	TotalForts   int            `json:"total_forts"`
	Geocoded     int            `json:"geocoded"`
	Pending      int            `json:"pending"`
	ByConfidence map[string]int `json:"by_confidence"`
}

// GeocodeStats reports how many forts have coordinates and at what
// confidence.
func (s *Store) GeocodeStats(ctx context.Context) (GeocodeStats, error) {
	st := GeocodeStats{ByConfidence: map[string]int{}}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM forts`, &st.TotalForts},
		{`SELECT COUNT(*) FROM forts WHERE geocode_confidence IS NOT NULL`, &st.Geocoded},
		{`SELECT COUNT(*) FROM forts
		  WHERE geocode_confidence IS NULL AND location_text IS NOT NULL AND location_text != ''`, &st.Pending},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, fmt.Errorf("counting: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT geocode_confidence, COUNT(*) FROM forts
		 WHERE geocode_confidence IS NOT NULL GROUP BY geocode_confidence`)
	if err != nil {
		return st, fmt.Errorf("querying confidence breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var conf string
		var n int
		if err := rows.Scan(&conf, &n); err != nil {
			return st, fmt.Errorf("scanning confidence row: %w", err)
		}
		st.ByConfidence[conf] = n
	}
	return st, rows.Err()
}

// GeocodeTarget is one fort awaiting geocoding.
type GeocodeTarget struct {
	FortID        int64
	LocationText  string
	StateFullName string
}

// PendingGeocodes returns forts with a location but no coordinates yet.
// limit <= 0 means no limit.
func (s *Store) PendingGeocodes(ctx context.Context, limit int) ([]GeocodeTarget, error) {
	query := `SELECT fort_id, location_text, COALESCE(state_full_name, '')
		FROM forts
		WHERE geocode_confidence IS NULL
		  AND location_text IS NOT NULL AND location_text != ''`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pending geocodes: %w", err)
	}
	defer rows.Close()

	var targets []GeocodeTarget
	for rows.Next() {
		var t GeocodeTarget
		if err := rows.Scan(&t.FortID, &t.LocationText, &t.StateFullName); err != nil {
			return nil, fmt.Errorf("scanning geocode target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// UpdateGeocode writes a geocoding outcome back to a fort row. lat and lon
// may be nil for failed lookups; the confidence value is still recorded so
// the fort is not retried forever.
func (s *Store) UpdateGeocode(ctx context.Context, fortID int64, lat, lon *float64, confidence, source, query string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE forts SET
			lat = ?, lon = ?, geocode_confidence = ?, geocode_source = ?,
			geocode_query = ?, geocoded_at = ?
		 WHERE fort_id = ?`,
		lat, lon, confidence, source, query,
		time.Now().UTC().Format(time.RFC3339), fortID)
	if err != nil {
		return fmt.Errorf("updating geocode: %w", err)
	}
	return nil
}
