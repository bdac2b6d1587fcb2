// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/taxwiser/internal/models"
)

var (
	// ErrNotFound is returned when no saved return matches.
	ErrNotFound = errors.New("saved return not found")

	// ErrCorrupt is returned when a stored record cannot be decoded.
	ErrCorrupt = errors.New("stored return is malformed")
)

// Store defines the interface for return and user storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// SaveReturn upserts the return keyed by email. The first save assigns
	// ret.ID; later saves keep it and overwrite the state. LastModified is
	// stamped by the store. Concurrent saves for one email are last write
	// wins.
	SaveReturn(ctx context.Context, ret *models.SavedReturn) error

	// GetReturnByEmail retrieves the saved return for an email.
	// Returns ErrNotFound if there is none.
	GetReturnByEmail(ctx context.Context, email string) (*models.SavedReturn, error)

	// ReturnOwner returns the email a saved return belongs to, without
	// decoding it. Returns ErrNotFound if there is none.
	ReturnOwner(ctx context.Context, id string) (string, error)

	// DeleteReturn removes a saved return by ID.
	// Returns ErrNotFound if there is none.
	DeleteReturn(ctx context.Context, id string) error

	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns nil, nil if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// TouchUser records a repeat sign-in, updating the display name.
	TouchUser(ctx context.Context, id, displayName string) error

	// Close releases any resources held by the store.
	Close() error
}
