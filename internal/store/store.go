// Package store persists resumes in a local sqlite database so they can be
// referenced by ID in match and select runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no resume exists for the requested ID.
var ErrNotFound = errors.New("resume not found")

// Resume is one stored resume with its extracted plain text.
type Resume struct {
	ID        string
	Name      string
	Text      string
	CreatedAt time.Time
}

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS resumes (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %q: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores a resume under a fresh UUID and returns the stored record.
func (s *Store) Add(ctx context.Context, name, text string) (*Resume, error) {
	r := &Resume{
		ID:        uuid.NewString(),
		Name:      name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resumes (id, name, text, created_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.Name, r.Text, r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting resume: %w", err)
	}
	return r, nil
}

// Get fetches one resume by ID.
func (s *Store) Get(ctx context.Context, id string) (*Resume, error) {
	var r Resume
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, text, created_at FROM resumes WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Text, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching resume %s: %w", id, err)
	}
	return &r, nil
}

// List returns all resumes, newest first.
func (s *Store) List(ctx context.Context) ([]Resume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, text, created_at FROM resumes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Name, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return resumes, nil
}

// Delete removes a resume by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resume %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
