package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/metadata"
)

// PrimaryCatalog is the first provider tried for ISBN lookups.
type PrimaryCatalog interface {
	LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
}

// SecondaryCatalog backs the rest of the chain: the ISBN-keyed endpoint, the
// free-text-by-ISBN fallback, and the title search path.
type SecondaryCatalog interface {
	LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
	SearchISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
	SearchTitle(ctx context.Context, title string) ([]metadata.BookMetadata, error)
}

// LookupService resolves raw catalog queries against external providers.
//
// ISBN queries walk a fallback chain: primary provider, then the secondary
// provider's ISBN endpoint, then its free-text search filtered by ISBN. A
// provider that fails or finds nothing hands over to the next; the chain as
// a whole only comes up empty when every link has.
type LookupService struct {
	primary   PrimaryCatalog
	secondary SecondaryCatalog
	logger    *slog.Logger
}

// NewLookupService creates a new external catalog lookup service.
func NewLookupService(primary PrimaryCatalog, secondary SecondaryCatalog, logger *slog.Logger) *LookupService {
	return &LookupService{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// LookupSearchResponse contains external catalog search results.
// An empty Books slice is a valid outcome, not an error.
type LookupSearchResponse struct {
	Query string                  `json:"query"`
	Count int                     `json:"count"`
	Books []metadata.BookMetadata `json:"books"`
}

// Search resolves a raw query string against the external catalogs.
// Queries made of digits and hyphens only are treated as ISBNs; everything
// else is a title search.
func (s *LookupService) Search(ctx context.Context, query string) (*LookupSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("search query is required")
	}

	resp := &LookupSearchResponse{
		Query: query,
		Books: []metadata.BookMetadata{},
	}

	if isbn, ok := classifyISBN(query); ok {
		book, err := s.lookupChain(ctx, isbn)
		if err != nil {
			if domainerrors.Is(err, metadata.ErrNoMatch) {
				return resp, nil
			}
			return nil, err
		}
		resp.Books = append(resp.Books, *book)
	} else {
		books, err := s.secondary.SearchTitle(ctx, query)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Title search failed", "query", query, "error", err)
			}
			return resp, nil
		}
		resp.Books = books
	}

	resp.Count = len(resp.Books)
	return resp, nil
}

// LookupISBN resolves a single ISBN through the full fallback chain.
// Unlike Search, exhausting the chain without a match is a NOT_FOUND error.
func (s *LookupService) LookupISBN(ctx context.Context, rawISBN string) (*metadata.BookMetadata, error) {
	isbn, ok := classifyISBN(strings.TrimSpace(rawISBN))
	if !ok {
		return nil, domainerrors.Validation("invalid isbn")
	}

	book, err := s.lookupChain(ctx, isbn)
	if err != nil {
		if domainerrors.Is(err, metadata.ErrNoMatch) {
			return nil, domainerrors.NotFoundf("no book found for isbn %s", isbn)
		}
		return nil, err
	}
	return book, nil
}

// lookupChain walks the ISBN provider chain. Returns metadata.ErrNoMatch
// only when every link found nothing or failed.
func (s *LookupService) lookupChain(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	type link struct {
		name string
		fn   func(context.Context, string) (*metadata.BookMetadata, error)
	}

	chain := []link{
		{"primary", s.primary.LookupISBN},
		{"secondary", s.secondary.LookupISBN},
		{"secondary-search", s.secondary.SearchISBN},
	}

	for _, l := range chain {
		book, err := l.fn(ctx, isbn)
		if err == nil {
			return book, nil
		}
		if domainerrors.Is(err, metadata.ErrNoMatch) {
			continue
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lookup isbn %s: %w", isbn, ctx.Err())
		}
		// Exhausted provider; the chain keeps going.
		if s.logger != nil {
			s.logger.Warn("Provider lookup failed, trying next",
				"provider", l.name,
				"isbn", isbn,
				"error", err,
			)
		}
	}

	return nil, metadata.ErrNoMatch
}

// classifyISBN reports whether a query is an ISBN and returns it with
// hyphens stripped. A query qualifies when it contains only digits and
// hyphens and at least one digit remains after stripping.
func classifyISBN(query string) (string, bool) {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
		default:
			return "", false
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
