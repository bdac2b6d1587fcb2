// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReturn upserts the return row for ret.Email. An existing row keeps
// its ID; only the data and timestamp are replaced.
func (s *SQLiteStore) SaveReturn(ctx context.Context, ret *models.SavedReturn) error {
	if ret.Email == "" {
		return fmt.Errorf("failed to save return: email is required")
	}

	data, err := storage.EncodeState(ret.State)
	if err != nil {
		return err
	}

	id := ret.ID
	if id == "" {
		id = uuid.New().String()
	}
	modified := s.now().Unix()

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO saved_returns (id, email, data, last_modified)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			data = excluded.data,
			last_modified = excluded.last_modified
		RETURNING id
	`, id, ret.Email, data, modified).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("failed to save return: %w", err)
	}

	ret.LastModified = modified
	return nil
}

// GetReturnByEmail retrieves the saved return for an email.
func (s *SQLiteStore) GetReturnByEmail(ctx context.Context, email string) (*models.SavedReturn, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, data, last_modified FROM saved_returns WHERE email = ?",
		email,
	)
	return scanReturn(row)
}

// ReturnOwner returns the email a saved return is keyed by.
func (s *SQLiteStore) ReturnOwner(ctx context.Context, id string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		"SELECT email FROM saved_returns WHERE id = ?",
		id,
	).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get return owner: %w", err)
	}
	return email, nil
}

// DeleteReturn removes a saved return by ID.
func (s *SQLiteStore) DeleteReturn(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_returns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete return: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func scanReturn(row *sql.Row) (*models.SavedReturn, error) {
	ret := &models.SavedReturn{}
	var data []byte
	err := row.Scan(&ret.ID, &ret.Email, &data, &ret.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get return: %w", err)
	}

	state, err := storage.DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("return %s: %w", ret.ID, err)
	}
	ret.State = state

	return ret, nil
}
