package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagekeep/pagekeep-server/internal/http/response"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// handleUpdateProgress records a new page position for a book.
func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProgressRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.progressService.UpdateProgress(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleProgressHistory returns a book's progress history, newest first.
func (s *Server) handleProgressHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.progressService.History(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
