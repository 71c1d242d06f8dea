// Package store persists synthesized selectors per instrument code and
// field, so operators can inspect which structural queries currently
// re-locate each value without re-running the heuristic scan. The cache
// is a diagnostic artifact; primary extraction never consults it.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/susumOyaji/quotelens/internal/model"
)

// SelectorRecord is one cached selector for a (code, field) pair.
type SelectorRecord struct {
	ID         string      `json:"id"`
	Code       string      `json:"code"`
	Field      model.Field `json:"field"`
	Query      string      `json:"selector"`
	MatchCount int         `json:"match_count"`
	SampleText string      `json:"sample_text"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// SelectorStore is a sqlite-backed selector cache.
type SelectorStore struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at the given path and
// configures WAL mode.
func Open(dsn string) (*SelectorStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &SelectorStore{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS selectors (
	id          TEXT PRIMARY KEY,
	code        TEXT NOT NULL,
	field       TEXT NOT NULL,
	selector    TEXT NOT NULL,
	match_count INTEGER NOT NULL DEFAULT 0,
	sample_text TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(code, field)
);

CREATE INDEX IF NOT EXISTS idx_selectors_code ON selectors(code);
`

// Migrate creates the schema if it does not exist.
func (s *SelectorStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (s *SelectorStore) Close() error {
	return s.db.Close()
}

// Save upserts the cached selector for the record's (code, field) pair.
func (s *SelectorStore) Save(ctx context.Context, rec SelectorRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selectors (id, code, field, selector, match_count, sample_text, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code, field) DO UPDATE SET
			selector = excluded.selector,
			match_count = excluded.match_count,
			sample_text = excluded.sample_text,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Code, string(rec.Field), rec.Query, rec.MatchCount, rec.SampleText, now,
	)
	return eris.Wrapf(err, "store: save selector %s/%s", rec.Code, rec.Field)
}

// Get returns the cached selectors for a code, ordered by field name.
func (s *SelectorStore) Get(ctx context.Context, code string) ([]SelectorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, field, selector, match_count, sample_text, updated_at
		FROM selectors WHERE code = ? ORDER BY field`,
		code,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "store: get selectors for %s", code)
	}
	defer rows.Close() //nolint:errcheck

	var out []SelectorRecord
	for rows.Next() {
		var rec SelectorRecord
		var field string
		if err := rows.Scan(&rec.ID, &rec.Code, &field, &rec.Query, &rec.MatchCount, &rec.SampleText, &rec.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan selector row")
		}
		rec.Field = model.Field(field)
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate selector rows")
}
