package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ExportCSV writes forts.csv and fort_periods.csv into dir, creating it if
// needed. Returns the number of fort and period rows written.
func (s *Store) ExportCSV(ctx context.Context, dir string) (forts, periods int, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("creating export directory: %w", err)
	}

	forts, err = s.exportQuery(ctx, filepath.Join(dir, "forts.csv"),
		`SELECT fort_id, name_primary, alt_names, state_territory, state_full_name,
			location_text, fort_type, nationality, dates_raw, earliest_year,
			latest_year, source_url, source_section, lat, lon, geocode_confidence
		 FROM forts ORDER BY state_territory, name_primary`,
		[]string{"fort_id", "name_primary", "alt_names", "state_territory",
			"state_full_name", "location_text", "fort_type", "nationality",
			"dates_raw", "earliest_year", "latest_year", "source_url",
			"source_section", "lat", "lon", "geocode_confidence"})
	if err != nil {
		return 0, 0, err
	}

	periods, err = s.exportQuery(ctx, filepath.Join(dir, "fort_periods.csv"),
		`SELECT p.fort_id, f.name_primary, f.state_territory,
			p.start_year, p.end_year, p.period_notes, p.period_order
		 FROM fort_periods p JOIN forts f ON p.fort_id = f.fort_id
		 ORDER BY f.state_territory, f.name_primary, p.period_order`,
		[]string{"fort_id", "name_primary", "state_territory",
			"start_year", "end_year", "period_notes", "period_order"})
	if err != nil {
		return forts, 0, err
	}

	return forts, periods, nil
}

func (s *Store) exportQuery(ctx context.Context, path, query string, header []string) (int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("querying export rows: %w", err)
	}
	defer rows.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return count, fmt.Errorf("scanning export row: %w", err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
			case []byte:
				record[i] = string(val)
			default:
				record[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := w.Write(record); err != nil {
			return count, fmt.Errorf("writing row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return count, fmt.Errorf("flushing %s: %w", path, err)
	}
	return count, nil
}
