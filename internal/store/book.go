package store

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// BookQuery describes filtering, sorting, and pagination for book listings.
type BookQuery struct {
	Search    string        // Case-insensitive substring match on title or author
	Status    domain.Status // Exact status match when non-empty
	MinRating float64       // Keep books rated at or above this value when > 0
	SortBy    string        // createdAt, updatedAt, or title (default updatedAt)
	SortOrder string        // asc or desc (default desc)
	Page      int           // 1-based page number (default 1)
	Limit     int           // Page size (default 20)
}

// normalize fills in query defaults and clamps out-of-range values.
func (q *BookQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	switch q.SortBy {
	case "createdAt", "updatedAt", "title":
	default:
		q.SortBy = "updatedAt"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
}

// BookStats summarizes one owner's shelf.
type BookStats struct {
	TotalBooks      int `json:"totalBooks"`
	ReadingCount    int `json:"readingCount"`
	WantCount       int `json:"wantCount"`
	FinishedCount   int `json:"finishedCount"`
	TotalPagesRead  int `json:"totalPagesRead"`
	AverageProgress int `json:"averageProgress"`
}

// CreateBook persists a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	return s.Books.Create(ctx, book.ID, book)
}

// GetBook retrieves a book by ID, scoped to the given owner.
// A book owned by someone else is reported as not found.
func (s *Store) GetBook(ctx context.Context, ownerID, id string) (*domain.Book, error) {
	book, err := s.Books.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return book, nil
}

// UpdateBook persists changes to an existing book, scoped to the given owner.
func (s *Store) UpdateBook(ctx context.Context, ownerID string, book *domain.Book) error {
	if _, err := s.GetBook(ctx, ownerID, book.ID); err != nil {
		return err
	}
	return s.Books.Update(ctx, book.ID, book)
}

// DeleteBook removes a book, scoped to the given owner.
// Returns ErrNotFound if the book does not exist or belongs to someone else.
func (s *Store) DeleteBook(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetBook(ctx, ownerID, id); err != nil {
		return err
	}
	return s.Books.Delete(ctx, id)
}

// ListBooks returns one page of an owner's books plus the total match count.
func (s *Store) ListBooks(ctx context.Context, ownerID string, query BookQuery) ([]*domain.Book, int, error) {
	query.normalize()

	matched, err := s.ownerBooks(ctx, ownerID, func(b *domain.Book) bool {
		return matchesQuery(b, &query)
	})
	if err != nil {
		return nil, 0, err
	}

	sortBooks(matched, query.SortBy, query.SortOrder)

	total := len(matched)
	start := (query.Page - 1) * query.Limit
	if start >= total {
		return []*domain.Book{}, total, nil
	}
	end := min(start+query.Limit, total)
	return matched[start:end], total, nil
}

// BookStatsForOwner computes shelf statistics for one owner.
func (s *Store) BookStatsForOwner(ctx context.Context, ownerID string) (*BookStats, error) {
	books, err := s.ownerBooks(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	stats := &BookStats{TotalBooks: len(books)}
	progressSum := 0.0
	progressCount := 0

	for _, b := range books {
		switch b.Status {
		case domain.StatusReading:
			stats.ReadingCount++
		case domain.StatusUnread:
			stats.WantCount++
		case domain.StatusFinished:
			stats.FinishedCount++
		}
		stats.TotalPagesRead += b.CurrentPage
		if b.TotalPages > 0 {
			progressSum += float64(b.CurrentPage) / float64(b.TotalPages) * 100
			progressCount++
		}
	}

	if progressCount > 0 {
		stats.AverageProgress = int(math.Round(progressSum / float64(progressCount)))
	}

	return stats, nil
}

// ownerBooks collects an owner's books, optionally filtered.
func (s *Store) ownerBooks(ctx context.Context, ownerID string, keep func(*domain.Book) bool) ([]*domain.Book, error) {
	books := make([]*domain.Book, 0)
	for book, err := range s.Books.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(book) {
			books = append(books, book)
		}
	}
	return books, nil
}

func matchesQuery(b *domain.Book, q *BookQuery) bool {
	if q.Status != "" && b.Status != q.Status {
		return false
	}
	if q.MinRating > 0 {
		if b.Rating == nil || *b.Rating < q.MinRating {
			return false
		}
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			return false
		}
	}
	return true
}

func sortBooks(books []*domain.Book, sortBy, order string) {
	sort.SliceStable(books, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "createdAt":
			less = books[i].CreatedAt.Before(books[j].CreatedAt)
		case "title":
			less = strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		default:
			less = books[i].UpdatedAt.Before(books[j].UpdatedAt)
		}
		if order == "desc" {
			return !less && !equalSortKey(books[i], books[j], sortBy)
		}
		return less
	})
}

func equalSortKey(a, b *domain.Book, sortBy string) bool {
	switch sortBy {
	case "createdAt":
		return a.CreatedAt.Equal(b.CreatedAt)
	case "title":
		return strings.EqualFold(a.Title, b.Title)
	default:
		return a.UpdatedAt.Equal(b.UpdatedAt)
	}
}
