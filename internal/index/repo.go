package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PeriodRow represents a row in the periods table.
type PeriodRow struct {
	Path      string
	Kind      string
	Year      int
	Month     int
	Week      int
	Title     string
	Weight    float64
	Pending   int
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// UpsertPeriod inserts or replaces a period file and its FTS entry
// within a transaction.
func (db *DB) UpsertPeriod(r PeriodRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO periods (path, kind, year, month, week, title, weight, pending, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind       = excluded.kind,
			year       = excluded.year,
			month      = excluded.month,
			week       = excluded.week,
			title      = excluded.title,
			weight     = excluded.weight,
			pending    = excluded.pending,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, r.Path, r.Kind, r.Year, r.Month, r.Week, r.Title, r.Weight, r.Pending, r.Checksum, body, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert period: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, r.Path, r.Title, body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePeriod removes a period file and its FTS entry.
func (db *DB) DeletePeriod(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM periods WHERE path = ?`, path)

	return tx.Commit()
}

// GetPeriod returns one indexed row, or nil when the path is unknown.
func (db *DB) GetPeriod(path string) (*PeriodRow, error) {
	var r PeriodRow
	err := db.conn.QueryRow(`
		SELECT path, kind, year, month, week, title, weight, pending, checksum, updated_at
		FROM periods WHERE path = ?
	`, path).Scan(&r.Path, &r.Kind, &r.Year, &r.Month, &r.Week, &r.Title, &r.Weight, &r.Pending, &r.Checksum, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get period %s: %w", path, err)
	}
	return &r, nil
}

// ListPeriods returns rows, optionally filtered by kind, newest period
// first. Total is the unpaginated count for the same filter.
func (db *DB) ListPeriods(kind string, limit, offset int) ([]PeriodRow, int, error) {
	if limit <= 0 {
		limit = 50
	}

	var total int
	if err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM periods WHERE (? = '' OR kind = ?)
	`, kind, kind).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count periods: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT path, kind, year, month, week, title, weight, pending, checksum, updated_at
		FROM periods
		WHERE (? = '' OR kind = ?)
		ORDER BY year DESC, month DESC, week DESC
		LIMIT ? OFFSET ?
	`, kind, kind, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list periods: %w", err)
	}
	defer rows.Close()

	var out []PeriodRow
	for rows.Next() {
		var r PeriodRow
		if err := rows.Scan(&r.Path, &r.Kind, &r.Year, &r.Month, &r.Week, &r.Title, &r.Weight, &r.Pending, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// GetChecksum returns the stored checksum for a path, or empty string
// if not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM periods WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum %s: %w", path, err)
	}
	return cs, nil
}

// AllChecksums returns path to checksum for every indexed file.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM periods`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
