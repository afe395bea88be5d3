package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// ProgressService records reading progress and serves per-book history.
type ProgressService struct {
	store    *store.Store
	books    *BookService
	validate *validation.Validator
	logger   *slog.Logger
}

// NewProgressService creates a new progress service.
func NewProgressService(store *store.Store, books *BookService, validate *validation.Validator, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		store:    store,
		books:    books,
		validate: validate,
		logger:   logger,
	}
}

// UpdateProgressRequest contains a progress update for one book.
// CurrentPage is a pointer so an omitted field can be told apart from zero.
type UpdateProgressRequest struct {
	CurrentPage *int `json:"currentPage" validate:"required,gte=0"`
}

// ProgressResponse contains the updated book, its computed progress, and the
// refreshed history.
type ProgressResponse struct {
	Message         string                  `json:"message"`
	Book            *domain.Book            `json:"book"`
	Progress        int                     `json:"progress"`
	ProgressHistory []*domain.ProgressEntry `json:"progressHistory"`
}

// HistoryResponse contains one book's progress history, most recent first.
type HistoryResponse struct {
	BookID          string                  `json:"bookId"`
	ProgressHistory []*domain.ProgressEntry `json:"progressHistory"`
}

// UpdateProgress sets a book's current page and appends a history entry.
//
// The book update and the history append are two independent writes; a crash
// between them loses the history entry but never the page position.
func (s *ProgressService) UpdateProgress(ctx context.Context, ownerID, bookID string, req UpdateProgressRequest) (*ProgressResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.books.Get(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	book.CurrentPage = *req.CurrentPage
	book.Touch()

	if err := s.store.UpdateBook(ctx, ownerID, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	progress := book.Progress()

	entryID, err := id.Generate("progress")
	if err != nil {
		return nil, fmt.Errorf("generate progress ID: %w", err)
	}

	entry := &domain.ProgressEntry{
		ID:         entryID,
		OwnerID:    ownerID,
		BookID:     bookID,
		Page:       book.CurrentPage,
		Progress:   progress,
		RecordedAt: time.Now(),
	}

	if err := s.store.AppendProgress(ctx, entry); err != nil {
		return nil, fmt.Errorf("append progress: %w", err)
	}

	history, err := s.store.ListProgressForBook(ctx, ownerID, bookID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Progress updated",
			"book_id", bookID,
			"page", book.CurrentPage,
			"progress", progress,
		)
	}

	return &ProgressResponse{
		Message:         "progress updated",
		Book:            book,
		Progress:        progress,
		ProgressHistory: history,
	}, nil
}

// History returns the owner's progress history for one book.
func (s *ProgressService) History(ctx context.Context, ownerID, bookID string) (*HistoryResponse, error) {
	// Gate on book ownership so history for someone else's book reads as
	// not found rather than an empty list.
	if _, err := s.books.Get(ctx, ownerID, bookID); err != nil {
		return nil, err
	}

	history, err := s.store.ListProgressForBook(ctx, ownerID, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("list progress: %w", err)
	}

	return &HistoryResponse{
		BookID:          bookID,
		ProgressHistory: history,
	}, nil
}
