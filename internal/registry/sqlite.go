package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// ErrNotFound is returned when no row exists for a secure filename
var ErrNotFound = errors.New("registry: file not found")

const tableName = "stored_files"

// Registry records metadata about persisted uploads
type Registry struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path. Use ":memory:" in tests.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	r, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// New creates the schema on an existing connection
func New(db *sql.DB) (*Registry, error) {
	query := `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
	secure_filename TEXT PRIMARY KEY,
	original_name TEXT NOT NULL,
	path TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	content_type TEXT NOT NULL,
	detected_type TEXT,
	checksum TEXT,
	created_at DATETIME NOT NULL
);`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set up table: %w", err)
	}
	return &Registry{db: db}, nil
}

// Close closes the underlying database
func (r *Registry) Close() error {
	return r.db.Close()
}

// Insert records a stored file
func (r *Registry) Insert(ctx context.Context, f *model.StoredFile) error {
	query := "INSERT INTO " + tableName +
		" (secure_filename, original_name, path, size_bytes, content_type, detected_type, checksum, created_at)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?);"
	_, err := r.db.ExecContext(ctx, query,
		f.SecureFilename,
		f.OriginalName,
		f.Path,
		f.SizeBytes,
		f.ContentType,
		f.DetectedType,
		f.Checksum,
		f.CreatedAt.UTC(),
	)
	return err
}

// Get returns the metadata for a secure filename
func (r *Registry) Get(ctx context.Context, secureFilename string) (*model.StoredFile, error) {
	query := "SELECT secure_filename, original_name, path, size_bytes, content_type, detected_type, checksum, created_at FROM " +
		tableName + " WHERE secure_filename = ?;"
	f, err := scanFile(r.db.QueryRowContext(ctx, query, secureFilename))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns stored files, newest first
func (r *Registry) List(ctx context.Context) ([]model.StoredFile, error) {
	query := "SELECT secure_filename, original_name, path, size_bytes, content_type, detected_type, checksum, created_at FROM " +
		tableName + " ORDER BY created_at DESC, secure_filename;"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []model.StoredFile{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// Delete removes a row; a missing row is not an error
func (r *Registry) Delete(ctx context.Context, secureFilename string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+tableName+" WHERE secure_filename = ?;", secureFilename)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*model.StoredFile, error) {
	var f model.StoredFile
	var detected, checksum sql.NullString
	var created time.Time
	if err := s.Scan(
		&f.SecureFilename,
		&f.OriginalName,
		&f.Path,
		&f.SizeBytes,
		&f.ContentType,
		&detected,
		&checksum,
		&created,
	); err != nil {
		return nil, err
	}
	f.DetectedType = detected.String
	f.Checksum = checksum.String
	f.CreatedAt = created
	return &f, nil
}
