// Package sqlite provides a SQLite-backed implementation of store.Store.
// Containers are persisted as JSON documents alongside indexed uuid, subject
// and timestamp columns so listing and subject search stay in SQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vcon-dev/fake-vcons/store"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// Store provides SQLite-backed persistence for vCon containers.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if necessary) a SQLite store at the provided path and
// applies pending schema migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{sqlDB: sqlDB}
	if err := applyMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// DB returns the underlying sql.DB instance.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the container document keyed by UUID.
func (s *Store) Save(ctx context.Context, v *vcon.Vcon) error {
	if v == nil || v.UUID == "" {
		return fmt.Errorf("vcon uuid is required")
	}
	document, err := v.Encode()
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO vcons (uuid, subject, created_at, updated_at, document)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(uuid) DO UPDATE SET
    subject = excluded.subject,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at,
    document = excluded.document
`, v.UUID, v.Subject, v.CreatedAt, v.UpdatedAt, string(document))
	if err != nil {
		return fmt.Errorf("save vcon %s: %w", v.UUID, err)
	}
	return nil
}

// Get returns the container for the UUID or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, uuid string) (*vcon.Vcon, error) {
	var document string
	err := s.sqlDB.QueryRowContext(ctx, "SELECT document FROM vcons WHERE uuid = ?", uuid).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vcon %s: %w", uuid, err)
	}
	return vcon.Decode([]byte(document))
}

// List returns all stored UUIDs ordered by creation timestamp.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT uuid FROM vcons ORDER BY created_at, uuid")
	if err != nil {
		return nil, fmt.Errorf("list vcons: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vcon row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vcon rows: %w", err)
	}
	return ids, nil
}

// Search returns containers whose subject contains the substring, case
// insensitively, ordered by creation timestamp.
func (s *Store) Search(ctx context.Context, subject string) ([]*vcon.Vcon, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT document FROM vcons
WHERE subject LIKE '%' || ? || '%' COLLATE NOCASE
ORDER BY created_at, uuid
`, subject)
	if err != nil {
		return nil, fmt.Errorf("search vcons: %w", err)
	}
	defer rows.Close()

	var hits []*vcon.Vcon
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scan vcon row: %w", err)
		}
		v, err := vcon.Decode([]byte(document))
		if err != nil {
			return nil, err
		}
		hits = append(hits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vcon rows: %w", err)
	}
	return hits, nil
}

// Delete removes the container or returns store.ErrNotFound.
func (s *Store) Delete(ctx context.Context, uuid string) error {
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM vcons WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("delete vcon %s: %w", uuid, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vcon %s: %w", uuid, err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
