// Package store persists documents in SQLite. Each row carries the
// document's native JSON encoding plus naming and timestamp metadata;
// decoding repairs malformed rows the same way file loading does and
// reports the repairs as warnings.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MaddTheSane/Sketch/model"
)

// ErrNotFound reports a document ID with no stored row.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Meta describes a stored document without its content.
type Meta struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stored bundles a decoded document with its row metadata and any
// repair warnings from decoding.
type Stored struct {
	Meta     Meta
	Document *model.Document
	Warnings []model.Warning
}

// Store reads and writes documents in a SQLite database.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the documents table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Create inserts a new document row under a fresh ID.
func (s *Store) Create(ctx context.Context, name string, d *model.Document) (Meta, error) {
	data, err := encode(d)
	if err != nil {
		return Meta{}, err
	}

	now := time.Now()
	meta := Meta{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO documents (id, name, data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, meta.ID, meta.Name, data, now.Unix(), now.Unix())
	if err != nil {
		return Meta{}, fmt.Errorf("insert document: %w", err)
	}
	return meta, nil
}

// Get loads the document with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Stored, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, data, created_at, updated_at
        FROM documents
        WHERE id = ?
    `, id)

	var (
		st               Stored
		data             []byte
		created, updated int64
	)
	if err := row.Scan(&st.Meta.ID, &st.Meta.Name, &data, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st.Meta.CreatedAt = time.Unix(created, 0)
	st.Meta.UpdatedAt = time.Unix(updated, 0)

	d, warnings, err := model.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	st.Document = d
	st.Warnings = warnings
	return &st, nil
}

// Put replaces the content of an existing document row.
func (s *Store) Put(ctx context.Context, id string, d *model.Document) (Meta, error) {
	data, err := encode(d)
	if err != nil {
		return Meta{}, err
	}

	now := time.Now()
	res, err := s.db.ExecContext(ctx, `
        UPDATE documents SET data = ?, updated_at = ? WHERE id = ?
    `, data, now.Unix(), id)
	if err != nil {
		return Meta{}, fmt.Errorf("update document: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return Meta{}, err
	}
	return s.Stat(ctx, id)
}

// Rename changes the display name of an existing document row.
func (s *Store) Rename(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE documents SET name = ?, updated_at = ? WHERE id = ?
    `, name, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	return checkAffected(res)
}

// Delete removes the document row with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return checkAffected(res)
}

// List returns metadata for every stored document, most recently
// updated first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, created_at, updated_at
        FROM documents
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var meta Meta
		var created, updated int64
		if err := rows.Scan(&meta.ID, &meta.Name, &created, &updated); err != nil {
			return nil, err
		}
		meta.CreatedAt = time.Unix(created, 0)
		meta.UpdatedAt = time.Unix(updated, 0)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// Stat returns a document's metadata without decoding its content.
func (s *Store) Stat(ctx context.Context, id string) (Meta, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, created_at, updated_at
        FROM documents
        WHERE id = ?
    `, id)

	var meta Meta
	var created, updated int64
	if err := row.Scan(&meta.ID, &meta.Name, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Meta{}, ErrNotFound
		}
		return Meta{}, err
	}
	meta.CreatedAt = time.Unix(created, 0)
	meta.UpdatedAt = time.Unix(updated, 0)
	return meta, nil
}

func encode(d *model.Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("no document to store")
	}
	var buf bytes.Buffer
	if err := model.WriteDocument(&buf, d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Open opens the SQLite database at the given path, creating parent
// directories as needed. The caller owns the handle.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
