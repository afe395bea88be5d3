package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/metadata"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// stubPrimary and stubSecondary let each chain link be scripted per test.
type stubPrimary struct {
	lookupISBN func(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
}

func (s *stubPrimary) LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	return s.lookupISBN(ctx, isbn)
}

type stubSecondary struct {
	lookupISBN  func(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
	searchISBN  func(ctx context.Context, isbn string) (*metadata.BookMetadata, error)
	searchTitle func(ctx context.Context, title string) ([]metadata.BookMetadata, error)
}

func (s *stubSecondary) LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	return s.lookupISBN(ctx, isbn)
}

func (s *stubSecondary) SearchISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	return s.searchISBN(ctx, isbn)
}

func (s *stubSecondary) SearchTitle(ctx context.Context, title string) ([]metadata.BookMetadata, error) {
	return s.searchTitle(ctx, title)
}

func noMatch(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	return nil, metadata.ErrNoMatch
}

func TestLookupService_Search_EmptyQuery(t *testing.T) {
	svc := service.NewLookupService(&stubPrimary{}, &stubSecondary{}, nil)

	_, err := svc.Search(context.Background(), "   ")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLookupService_Search_ISBNStripsHyphens(t *testing.T) {
	var seen string
	primary := &stubPrimary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			seen = isbn
			return &metadata.BookMetadata{Title: "The Go Programming Language", ISBN: isbn}, nil
		},
	}
	svc := service.NewLookupService(primary, &stubSecondary{}, nil)

	resp, err := svc.Search(context.Background(), "978-0-13-468599-1")
	require.NoError(t, err)
	require.Equal(t, "9780134685991", seen)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "The Go Programming Language", resp.Books[0].Title)
}

func TestLookupService_Search_TitlePath(t *testing.T) {
	primary := &stubPrimary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			t.Fatal("title query must not hit the ISBN chain")
			return nil, nil
		},
	}
	secondary := &stubSecondary{
		searchTitle: func(ctx context.Context, title string) ([]metadata.BookMetadata, error) {
			require.Equal(t, "dune", title)
			return []metadata.BookMetadata{
				{Title: "Dune"},
				{Title: "Dune Messiah"},
			}, nil
		},
	}
	svc := service.NewLookupService(primary, secondary, nil)

	resp, err := svc.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Equal(t, "dune", resp.Query)
	require.Equal(t, 2, resp.Count)
}

func TestLookupService_Search_HyphensOnlyIsNotAnISBN(t *testing.T) {
	primary := &stubPrimary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			t.Fatal("a query without digits must not hit the ISBN chain")
			return nil, nil
		},
	}
	var searched string
	secondary := &stubSecondary{
		searchTitle: func(ctx context.Context, title string) ([]metadata.BookMetadata, error) {
			searched = title
			return nil, nil
		},
	}
	svc := service.NewLookupService(primary, secondary, nil)

	resp, err := svc.Search(context.Background(), "---")
	require.NoError(t, err)
	require.Equal(t, "---", searched)
	require.Equal(t, 0, resp.Count)
}

func TestLookupService_Search_TitleProviderFailure(t *testing.T) {
	secondary := &stubSecondary{
		searchTitle: func(ctx context.Context, title string) ([]metadata.BookMetadata, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := service.NewLookupService(&stubPrimary{}, secondary, nil)

	// A broken provider degrades to an empty result, not a failure.
	resp, err := svc.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Equal(t, 0, resp.Count)
	require.NotNil(t, resp.Books)
	require.Empty(t, resp.Books)
}

func TestLookupService_Search_ChainExhausted(t *testing.T) {
	primary := &stubPrimary{lookupISBN: noMatch}
	secondary := &stubSecondary{lookupISBN: noMatch, searchISBN: noMatch}
	svc := service.NewLookupService(primary, secondary, nil)

	resp, err := svc.Search(context.Background(), "9780134685991")
	require.NoError(t, err)
	require.Equal(t, 0, resp.Count)
	require.Empty(t, resp.Books)
}

func TestLookupService_LookupISBN_FallsThroughChain(t *testing.T) {
	primary := &stubPrimary{lookupISBN: noMatch}
	secondary := &stubSecondary{
		lookupISBN: noMatch,
		searchISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			return &metadata.BookMetadata{Title: "Hyperion", ISBN: isbn}, nil
		},
	}
	svc := service.NewLookupService(primary, secondary, nil)

	book, err := svc.LookupISBN(context.Background(), "9780553283686")
	require.NoError(t, err)
	require.Equal(t, "Hyperion", book.Title)
}

func TestLookupService_LookupISBN_TransportFailureContinues(t *testing.T) {
	primary := &stubPrimary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			return nil, errors.New("request failed after 3 attempts")
		},
	}
	secondary := &stubSecondary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			return &metadata.BookMetadata{Title: "Dune", ISBN: isbn}, nil
		},
	}
	svc := service.NewLookupService(primary, secondary, nil)

	book, err := svc.LookupISBN(context.Background(), "9780441013593")
	require.NoError(t, err)
	require.Equal(t, "Dune", book.Title)
}

func TestLookupService_LookupISBN_Exhausted(t *testing.T) {
	primary := &stubPrimary{lookupISBN: noMatch}
	secondary := &stubSecondary{lookupISBN: noMatch, searchISBN: noMatch}
	svc := service.NewLookupService(primary, secondary, nil)

	_, err := svc.LookupISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLookupService_LookupISBN_Invalid(t *testing.T) {
	svc := service.NewLookupService(&stubPrimary{}, &stubSecondary{}, nil)

	for _, raw := range []string{"", "dune", "978-abc", "---"} {
		_, err := svc.LookupISBN(context.Background(), raw)
		require.ErrorIs(t, err, domainerrors.ErrValidation, "isbn %q", raw)
	}
}

func TestLookupService_LookupISBN_Cancelled(t *testing.T) {
	primary := &stubPrimary{
		lookupISBN: func(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
			return nil, ctx.Err()
		},
	}
	svc := service.NewLookupService(primary, &stubSecondary{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.LookupISBN(ctx, "9780441013593")
	require.ErrorIs(t, err, context.Canceled)
}
