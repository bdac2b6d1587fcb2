package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mmynk/taxwiser/internal/models"
)

var (
	ErrInvalidEmail = errors.New("please enter a valid email address")
	ErrMissingName  = errors.New("please enter your first name")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchUser(ctx context.Context, id, displayName string) error
}

// Authenticator signs people in by first name and email address. There is
// no credential; the email only keys the saved return.
type Authenticator struct {
	storage UserStorage
}

// NewAuthenticator creates a new intake authenticator.
func NewAuthenticator(storage UserStorage) *Authenticator {
	return &Authenticator{
		storage: storage,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the intake fields and returns them normalized.
func Validate(email, firstName string) (string, string, error) {
	email = NormalizeEmail(email)
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return "", "", ErrMissingName
	}
	if !emailPattern.MatchString(email) {
		return "", "", ErrInvalidEmail
	}
	return email, firstName, nil
}

// Login returns the user for an email, creating it on first sign-in.
func (a *Authenticator) Login(ctx context.Context, email, firstName string) (*models.User, error) {
	email, firstName, err := Validate(email, firstName)
	if err != nil {
		return nil, err
	}

	user, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		user = models.NewUser(email, firstName)
		if err := a.storage.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("New user signed in", "user_id", user.ID)
		return user, nil
	}

	if err := a.storage.TouchUser(ctx, user.ID, firstName); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.DisplayName = firstName
	return user, nil
}
