// Package service implements the application's business logic on top of the
// store and the external catalog clients.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/domain"
	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// AuthService handles user registration, login, and session introspection.
type AuthService struct {
	store    *store.Store
	tokens   *auth.TokenService
	validate *validation.Validator
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokens *auth.TokenService, validate *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:    store,
		tokens:   tokens,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the authenticated user and a fresh access token.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// Register creates a new user account and signs it in.
// The email is stored lowercased so the persisted record, API responses, and
// token claims all agree with the case-insensitive uniqueness rule.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	// Check both unique fields up front so the caller learns which one
	// collided. The store's unique indexes still guard against races.
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domainerrors.Conflict("email already registered")
	} else if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, domainerrors.Conflict("username already taken")
	} else if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email or username already registered")
		}
		// Registration is the one place persistence failures carry a
		// debug detail in the response body.
		return nil, domainerrors.Internal("failed to register user").
			WithDetails(err.Error()).
			WithCause(err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered",
			"user_id", userID,
			"email", user.Email,
		)
	}

	return &AuthResponse{
		Message: "registration complete",
		User:    user.Sanitized(),
		Token:   token,
	}, nil
}

// Login authenticates a user by email and password.
// Unknown email and wrong password produce the same response so the two
// cases cannot be told apart from outside; logs carry the distinction.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			if s.logger != nil {
				s.logger.Warn("Login attempt for unknown email", "email", req.Email)
			}
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		if s.logger != nil {
			s.logger.Warn("Login attempt with wrong password", "user_id", user.ID)
		}
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID)
	}

	return &AuthResponse{
		Message: "login successful",
		User:    user.Sanitized(),
		Token:   token,
	}, nil
}

// CurrentUser returns the user behind a verified token subject.
// Returns NOT_FOUND when the account no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.Sanitized(), nil
}

// Refresh issues a fresh token for an authenticated user.
func (s *AuthService) Refresh(ctx context.Context, userID string) (*AuthResponse, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResponse{
		Message: "token refreshed",
		User:    user.Sanitized(),
		Token:   token,
	}, nil
}
