package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// BookService handles the book catalog: CRUD, listing, search, and stats.
type BookService struct {
	store    *store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, validate *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// CreateBookRequest contains the data for adding a book to the shelf.
type CreateBookRequest struct {
	Title         string   `json:"title" validate:"required,max=500"`
	Author        string   `json:"author" validate:"max=500"`
	ISBN          string   `json:"isbn" validate:"max=20"`
	Publisher     string   `json:"publisher" validate:"max=500"`
	PublishDate   string   `json:"publishDate" validate:"max=50"`
	TotalPages    int      `json:"totalPages" validate:"gte=0"`
	CurrentPage   int      `json:"currentPage" validate:"gte=0"`
	Status        string   `json:"status" validate:"omitempty,reading_status"`
	Rating        *float64 `json:"rating" validate:"omitempty,book_rating"`
	CoverImageURL string   `json:"coverImageUrl" validate:"omitempty,url"`
	Description   string   `json:"description"`
}

// UpdateBookRequest contains a partial book update. Nil fields are left
// untouched.
type UpdateBookRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Author        *string    `json:"author" validate:"omitempty,max=500"`
	ISBN          *string    `json:"isbn" validate:"omitempty,max=20"`
	Publisher     *string    `json:"publisher" validate:"omitempty,max=500"`
	PublishDate   *string    `json:"publishDate" validate:"omitempty,max=50"`
	TotalPages    *int       `json:"totalPages" validate:"omitempty,gte=0"`
	CurrentPage   *int       `json:"currentPage" validate:"omitempty,gte=0"`
	Status        *string    `json:"status" validate:"omitempty,reading_status"`
	Rating        *float64   `json:"rating" validate:"omitempty,book_rating"`
	CoverImageURL *string    `json:"coverImageUrl" validate:"omitempty,url"`
	Description   *string    `json:"description"`
	CompletedDate *time.Time `json:"completedDate"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// BookListResponse contains one page of books.
type BookListResponse struct {
	Books      []*domain.Book `json:"books"`
	Pagination Pagination     `json:"pagination"`
}

// Create adds a new book to the owner's shelf.
// Status defaults to unread when omitted. The title is trimmed before
// validation so a whitespace-only title fails the required check.
func (s *BookService) Create(ctx context.Context, ownerID string, req CreateBookRequest) (*domain.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ISBN = strings.TrimSpace(req.ISBN)
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusUnread
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		ID:            bookID,
		OwnerID:       ownerID,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		PublishDate:   req.PublishDate,
		TotalPages:    req.TotalPages,
		CurrentPage:   req.CurrentPage,
		Status:        status,
		Rating:        req.Rating,
		CoverImageURL: req.CoverImageURL,
		Description:   req.Description,
	}
	if status == domain.StatusFinished {
		now := time.Now()
		book.CompletedDate = &now
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book added", "book_id", bookID, "user_id", ownerID)
	}

	return book, nil
}

// Get retrieves one of the owner's books.
func (s *BookService) Get(ctx context.Context, ownerID, bookID string) (*domain.Book, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, ownerID, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List returns one page of the owner's books.
func (s *BookService) List(ctx context.Context, ownerID string, query store.BookQuery) (*BookListResponse, error) {
	books, total, err := s.store.ListBooks(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 20
	}

	totalPages := total / query.Limit
	if total%query.Limit != 0 {
		totalPages++
	}

	return &BookListResponse{
		Books: books,
		Pagination: Pagination{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

// Update applies a partial update to one of the owner's books.
//
// When the status transitions into finished and the request carries no
// explicit completion date, the current time is stamped. A book that is
// already finished keeps its original completion date. An explicit
// completedDate in the request always wins.
func (s *BookService) Update(ctx context.Context, ownerID, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	// Trim before validating so a whitespace-only title fails min=1.
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Author != nil {
		trimmed := strings.TrimSpace(*req.Author)
		req.Author = &trimmed
	}
	if req.ISBN != nil {
		trimmed := strings.TrimSpace(*req.ISBN)
		req.ISBN = &trimmed
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.Get(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	wasFinished := book.Status == domain.StatusFinished

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.PublishDate != nil {
		book.PublishDate = *req.PublishDate
	}
	if req.TotalPages != nil {
		book.TotalPages = *req.TotalPages
	}
	if req.CurrentPage != nil {
		book.CurrentPage = *req.CurrentPage
	}
	if req.Status != nil {
		book.Status = domain.Status(*req.Status)
	}
	if req.Rating != nil {
		book.Rating = req.Rating
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = *req.CoverImageURL
	}
	if req.Description != nil {
		book.Description = *req.Description
	}

	switch {
	case req.CompletedDate != nil:
		book.CompletedDate = req.CompletedDate
	case book.Status == domain.StatusFinished && !wasFinished:
		now := time.Now()
		book.CompletedDate = &now
	}

	book.Touch()

	if err := s.store.UpdateBook(ctx, ownerID, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// Delete removes one of the owner's books along with its progress history
// and notes.
//
// The cascade runs as sequential independent writes. A failure partway
// through leaves orphaned children behind; those failures are logged but do
// not mask a successful book deletion.
func (s *BookService) Delete(ctx context.Context, ownerID, bookID string) error {
	if err := checkBookID(bookID); err != nil {
		return err
	}

	if _, err := s.Get(ctx, ownerID, bookID); err != nil {
		return err
	}

	if n, err := s.store.DeleteProgressForBook(ctx, bookID); err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to delete progress history during cascade",
				"book_id", bookID,
				"error", err,
			)
		}
	} else if n > 0 && s.logger != nil {
		s.logger.Debug("Deleted progress history", "book_id", bookID, "count", n)
	}

	if n, err := s.store.DeleteNotesForBook(ctx, bookID); err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to delete notes during cascade",
				"book_id", bookID,
				"error", err,
			)
		}
	} else if n > 0 && s.logger != nil {
		s.logger.Debug("Deleted notes", "book_id", bookID, "count", n)
	}

	if err := s.store.DeleteBook(ctx, ownerID, bookID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("delete book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book deleted", "book_id", bookID, "user_id", ownerID)
	}

	return nil
}

// Stats summarizes the owner's shelf.
func (s *BookService) Stats(ctx context.Context, ownerID string) (*store.BookStats, error) {
	stats, err := s.store.BookStatsForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("book stats: %w", err)
	}
	return stats, nil
}

// checkBookID rejects malformed book IDs before they reach the store.
func checkBookID(bookID string) error {
	if !id.Valid("book", bookID) {
		return domainerrors.Validation("invalid book id")
	}
	return nil
}
