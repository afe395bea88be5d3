package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	apperrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
)

// requireAuth is middleware that validates access tokens and attaches the
// caller's identity to the request context.
//
// A missing or malformed Authorization header is AUTH_REQUIRED. An expired
// token gets its own TOKEN_EXPIRED response so clients can prompt for a new
// login; every other verification failure is INVALID_TOKEN.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, apperrors.CodeAuthRequired, "authorization required", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(w, apperrors.CodeAuthRequired, "invalid authorization header format", s.logger)
			return
		}

		claims, err := s.tokens.VerifyAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				response.Error(w, apperrors.CodeTokenExpired, "please log in again", s.logger)
				return
			}
			response.Error(w, apperrors.CodeInvalidToken, "invalid token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}

// getEmail extracts the authenticated user email from request context.
// Returns empty string if not authenticated.
func getEmail(ctx context.Context) string {
	if email, ok := ctx.Value(contextKeyEmail).(string); ok {
		return email
	}
	return ""
}
