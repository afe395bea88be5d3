package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/http/response"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

// handleListBooks returns one page of the caller's shelf.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	resp, err := s.bookService.List(r.Context(), getUserID(r.Context()), parseBookQuery(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleCreateBook adds a book to the caller's shelf.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, err := s.bookService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, map[string]any{
		"book": book,
	}, s.logger)
}

// handleGetBook returns a single book from the caller's shelf.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.bookService.Get(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"book": book,
	}, s.logger)
}

// handleUpdateBook applies a partial update to a book.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, err := s.bookService.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"book": book,
	}, s.logger)
}

// handleDeleteBook removes a book and its progress history and notes.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	if err := s.bookService.Delete(r.Context(), getUserID(r.Context()), bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{
		"message": "book deleted",
		"bookId":  bookID,
	}, s.logger)
}

// handleBookStats summarizes the caller's shelf.
func (s *Server) handleBookStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.bookService.Stats(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, stats, s.logger)
}

// handleCatalogSearch resolves a query against the external catalogs.
func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := s.lookupService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleLookupByISBN resolves one ISBN against the external catalogs.
func (s *Server) handleLookupByISBN(w http.ResponseWriter, r *http.Request) {
	book, err := s.lookupService.LookupISBN(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"book": book,
	}, s.logger)
}

// parseBookQuery reads listing parameters from the query string.
// Unparseable numbers fall back to defaults rather than erroring.
func parseBookQuery(r *http.Request) store.BookQuery {
	q := r.URL.Query()

	query := store.BookQuery{
		Search:    q.Get("search"),
		Status:    domain.Status(q.Get("status")),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if rating, err := strconv.ParseFloat(q.Get("rating"), 64); err == nil {
		query.MinRating = rating
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		query.Limit = limit
	}

	return query
}
