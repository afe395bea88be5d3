package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagekeep/pagekeep-server/internal/http/response"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// handleListNotes returns a book's notes, newest first.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.noteService.ListForBook(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleCreateNote attaches a note to a book.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req service.NoteRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.noteService.Create(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleGetNote returns a single note with its parent book reference.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.noteService.Get(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleUpdateNote replaces a note's content.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req service.NoteRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp, err := s.noteService.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleDeleteNote removes a note.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "id")

	if err := s.noteService.Delete(r.Context(), getUserID(r.Context()), noteID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{
		"message": "note deleted",
		"noteId":  noteID,
	}, s.logger)
}
