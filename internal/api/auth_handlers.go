package api

import (
	"net/http"

	"github.com/pagekeep/pagekeep-server/internal/http/response"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// handleRegister creates a new account and signs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user by email and password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleLogout acknowledges a logout. Tokens are stateless; the client
// discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("User logged out",
		"user_id", getUserID(r.Context()),
		"email", getEmail(r.Context()),
	)

	response.Success(w, map[string]string{
		"message": "logged out",
	}, s.logger)
}

// handleCurrentUser returns the account behind the presented token.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.authService.CurrentUser(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"user": user,
	}, s.logger)
}

// handleRefresh issues a fresh token for the authenticated user.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authService.Refresh(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
