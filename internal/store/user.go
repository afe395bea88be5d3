package store

import (
	"context"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// CreateUser persists a new user.
// Returns ErrAlreadyExists if the ID, email, or username is already taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Create(ctx, user.ID, user)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.Users.Get(ctx, id)
}

// GetUserByEmail retrieves a user by email address.
// The lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "username", username)
}

// normalizeEmail normalizes an email address for consistent lookups.
// Lowercases and trims whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
