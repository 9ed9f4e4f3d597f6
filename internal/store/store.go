// Package store persists reports and their section widths in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/dvlayout/internal/report"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a report or section does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	created  INTEGER NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
	id         TEXT PRIMARY KEY,
	report_id  TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	kind       TEXT NOT NULL,
	title      TEXT NOT NULL,
	width      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sections_report ON sections(report_id, position);
CREATE INDEX IF NOT EXISTS idx_reports_updated ON reports(updated);
`

// Store is a SQLite-backed report store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	// One connection keeps per-connection pragmas (foreign_keys) in force.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database. Safe on a nil receiver.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// SaveReport writes r and replaces its sections.
func (s *Store) SaveReport(ctx context.Context, r *report.Report) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UnixNano()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reports (id, name, created, updated) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated = excluded.updated`,
		r.ID.String(), r.Name, now, now,
	); err != nil {
		return fmt.Errorf("upsert report %s: %w", r.ID, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE report_id = ?", r.ID.String()); err != nil {
		return fmt.Errorf("clear sections %s: %w", r.ID, err)
	}
	for i, sec := range r.Sections {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sections (id, report_id, position, kind, title, width) VALUES (?, ?, ?, ?, ?, ?)",
			sec.ID.String(), r.ID.String(), i, string(sec.Kind), sec.Title, sec.Width,
		); err != nil {
			return fmt.Errorf("insert section %s: %w", sec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	log.Debug().Str("report", r.ID.String()).Int("sections", len(r.Sections)).Msg("report saved")
	return nil
}

// LoadReport reads a report and its sections in position order.
func (s *Store) LoadReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &report.Report{ID: id}
	err := s.db.QueryRowContext(ctx, "SELECT name FROM reports WHERE id = ?", id.String()).Scan(&r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, position, kind, title, width FROM sections WHERE report_id = ? ORDER BY position",
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("load sections %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sec     report.Section
			rawID   string
			rawKind string
		)
		if err := rows.Scan(&rawID, &sec.Position, &rawKind, &sec.Title, &sec.Width); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		if sec.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("section id %q: %w", rawID, err)
		}
		sec.Kind = report.SectionKind(rawKind)
		r.Sections = append(r.Sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return r, nil
}

// LatestReport returns the most recently updated report.
func (s *Store) LatestReport(ctx context.Context) (*report.Report, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	var rawID string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM reports ORDER BY updated DESC LIMIT 1").Scan(&rawID)
	s.mu.Unlock()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("report id %q: %w", rawID, err)
	}
	return s.LoadReport(ctx, id)
}

// UpdateSectionWidth persists a committed section width and bumps the
// owning report's updated time.
func (s *Store) UpdateSectionWidth(ctx context.Context, sectionID uuid.UUID, width int) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin width update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, "UPDATE sections SET width = ? WHERE id = ?", width, sectionID.String())
	if err != nil {
		return fmt.Errorf("update width %s: %w", sectionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("section %s: %w", sectionID, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reports SET updated = ? WHERE id = (SELECT report_id FROM sections WHERE id = ?)",
		time.Now().UnixNano(), sectionID.String(),
	); err != nil {
		return fmt.Errorf("touch report for %s: %w", sectionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit width update: %w", err)
	}
	log.Debug().Str("section", sectionID.String()).Int("width", width).Msg("section width saved")
	return nil
}
