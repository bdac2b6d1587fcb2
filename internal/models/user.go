package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who has signed in. There is no credential: intake asks
// only for a first name and an email address, and the email keys the saved
// return.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique).
	Email string

	// DisplayName is the first name given at sign-in.
	DisplayName string

	// CreatedAt is the Unix timestamp of the first sign-in.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the latest sign-in.
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName string) *User {
	now := time.Now().Unix()
	return &User{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
