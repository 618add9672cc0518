package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/lodestarhq/lodestar/internal/plan"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    document   TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite implements Store using a local SQLite database in WAL mode.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode
// and busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled
	// connections that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Save upserts a plan document. A plan without an ID is assigned one.
// The full document — tasks, settings, and any scheduling annotations —
// is rewritten on every save.
func (s *SQLite) Save(ctx context.Context, p *plan.Plan) error {
	if p.ID == "" {
		p.ID = newID()
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: encode plan %q: %w", p.ID, err)
	}

	const q = `
		INSERT INTO plans (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, p.ID, p.Name, string(doc), p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("store: save plan %q: %w", p.ID, err)
	}
	return nil
}

// Get loads a plan document by ID.
func (s *SQLite) Get(ctx context.Context, id string) (*plan.Plan, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM plans WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get plan %q: %w", id, err)
	}

	var p plan.Plan
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("store: decode plan %q: %w", id, err)
	}
	return &p, nil
}

// List returns summaries of all stored plans, most recently updated first.
func (s *SQLite) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, document, updated_at FROM plans ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("store: list plans: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var doc string
		if err := rows.Scan(&sum.ID, &sum.Name, &doc, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan plan row: %w", err)
		}
		var p plan.Plan
		if err := json.Unmarshal([]byte(doc), &p); err == nil {
			sum.TotalTasks = len(p.Tasks)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list plans: %w", err)
	}
	return out, nil
}

// Delete removes a stored plan. Deleting a missing plan returns
// ErrPlanNotFound.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: delete plan %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}

// newID returns a random 8-byte hex plan identifier.
func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
