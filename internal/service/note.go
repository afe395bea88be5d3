package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// NoteService handles per-book reading notes.
type NoteService struct {
	store    *store.Store
	books    *BookService
	validate *validation.Validator
	logger   *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store *store.Store, books *BookService, validate *validation.Validator, logger *slog.Logger) *NoteService {
	return &NoteService{
		store:    store,
		books:    books,
		validate: validate,
		logger:   logger,
	}
}

// NoteRequest contains the content for creating or updating a note.
type NoteRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// NoteListResponse contains one book's notes, newest first.
type NoteListResponse struct {
	BookID string         `json:"bookId"`
	Notes  []*domain.Note `json:"notes"`
}

// NoteResponse contains a single note.
type NoteResponse struct {
	Message string       `json:"message,omitempty"`
	Note    *domain.Note `json:"note"`
}

// ListForBook returns the owner's notes on one book.
// The book must exist and belong to the owner.
func (s *NoteService) ListForBook(ctx context.Context, ownerID, bookID string) (*NoteListResponse, error) {
	if _, err := s.books.Get(ctx, ownerID, bookID); err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotesForBook(ctx, ownerID, bookID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return &NoteListResponse{
		BookID: bookID,
		Notes:  notes,
	}, nil
}

// Create attaches a note to one of the owner's books.
func (s *NoteService) Create(ctx context.Context, ownerID, bookID string, req NoteRequest) (*NoteResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.books.Get(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	note := &domain.Note{
		ID:      noteID,
		OwnerID: ownerID,
		BookID:  bookID,
		Content: req.Content,
	}
	note.InitTimestamps()

	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Note added", "note_id", noteID, "book_id", bookID)
	}

	return &NoteResponse{
		Message: "note added",
		Note:    s.withBookRef(note, book),
	}, nil
}

// Get retrieves one of the owner's notes, with its parent book reference
// populated when the book still exists.
func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (*NoteResponse, error) {
	if err := checkNoteID(noteID); err != nil {
		return nil, err
	}

	note, err := s.store.GetNote(ctx, ownerID, noteID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("note not found")
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	book, err := s.store.GetBook(ctx, ownerID, note.BookID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get note book: %w", err)
	}

	return &NoteResponse{Note: s.withBookRef(note, book)}, nil
}

// Update replaces the content of one of the owner's notes.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, req NoteRequest) (*NoteResponse, error) {
	if err := checkNoteID(noteID); err != nil {
		return nil, err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	note, err := s.store.GetNote(ctx, ownerID, noteID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("note not found")
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	note.Content = req.Content
	note.Touch()

	if err := s.store.UpdateNote(ctx, ownerID, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	book, err := s.store.GetBook(ctx, ownerID, note.BookID)
	if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get note book: %w", err)
	}

	return &NoteResponse{
		Message: "note updated",
		Note:    s.withBookRef(note, book),
	}, nil
}

// Delete removes one of the owner's notes.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if err := checkNoteID(noteID); err != nil {
		return err
	}

	if err := s.store.DeleteNote(ctx, ownerID, noteID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("note not found")
		}
		return fmt.Errorf("delete note: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Note deleted", "note_id", noteID, "user_id", ownerID)
	}

	return nil
}

// withBookRef returns a copy of the note carrying a denormalized reference
// to its parent book. The reference is display-only and never persisted.
func (s *NoteService) withBookRef(note *domain.Note, book *domain.Book) *domain.Note {
	out := *note
	if book != nil {
		out.Book = &domain.NoteBookRef{
			ID:     book.ID,
			Title:  book.Title,
			Author: book.Author,
		}
	}
	return &out
}

// checkNoteID rejects malformed note IDs before they reach the store.
func checkNoteID(noteID string) error {
	if !id.Valid("note", noteID) {
		return domainerrors.Validation("invalid note id")
	}
	return nil
}
