package openlibrary_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/metadata"
	"github.com/pagekeep/pagekeep-server/internal/metadata/openlibrary"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *openlibrary.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return openlibrary.NewClient(5*time.Second, slog.New(slog.DiscardHandler)).WithBaseURL(srv.URL)
}

func TestClient_LookupISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/books", r.URL.Path)
		require.Equal(t, "ISBN:9780441013593", r.URL.Query().Get("bibkeys"))
		require.Equal(t, "data", r.URL.Query().Get("jscmd"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ISBN:9780441013593": {
				"title": "Dune",
				"publish_date": "2005",
				"number_of_pages": 412,
				"authors": [{"name": "Frank Herbert"}],
				"publishers": [{"name": "Ace"}],
				"cover": {
					"small": "http://example.com/small.jpg",
					"medium": "http://example.com/medium.jpg"
				},
				"identifiers": {"isbn_13": ["9780441013593"]}
			}
		}`))
	})

	book, err := client.LookupISBN(context.Background(), "9780441013593")
	require.NoError(t, err)
	require.Equal(t, "Dune", book.Title)
	require.Equal(t, "Frank Herbert", book.Author)
	require.Equal(t, "9780441013593", book.ISBN)
	require.Equal(t, "Ace", book.Publisher)
	require.Equal(t, "2005", book.PublishDate)
	require.Equal(t, 412, book.TotalPages)
	require.Equal(t, "http://example.com/medium.jpg", book.CoverImageURL)
}

func TestClient_LookupISBN_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.LookupISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, metadata.ErrNoMatch)
}

func TestClient_SearchISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		require.Equal(t, "isbn:9780553283686", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{
			"numFound": 1,
			"docs": [{
				"title": "Hyperion",
				"author_name": ["Dan Simmons"],
				"first_publish_year": 1989,
				"number_of_pages_median": 482,
				"cover_i": 12345
			}]
		}`))
	})

	book, err := client.SearchISBN(context.Background(), "9780553283686")
	require.NoError(t, err)
	require.Equal(t, "Hyperion", book.Title)
	require.Equal(t, "Dan Simmons", book.Author)
	require.Equal(t, "9780553283686", book.ISBN)
	require.Equal(t, "1989", book.PublishDate)
	require.Equal(t, 482, book.TotalPages)
	require.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", book.CoverImageURL)
}

func TestClient_SearchISBN_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"numFound": 0, "docs": []}`))
	})

	_, err := client.SearchISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, metadata.ErrNoMatch)
}

func TestClient_SearchTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		require.Equal(t, "dune", r.URL.Query().Get("title"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{
			"numFound": 2,
			"docs": [
				{"title": "Dune", "author_name": ["Frank Herbert"], "isbn": ["9780441013593"]},
				{"title": "Dune Messiah", "author_name": ["Frank Herbert"]}
			]
		}`))
	})

	books, err := client.SearchTitle(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "Dune", books[0].Title)
	require.Equal(t, "9780441013593", books[0].ISBN)
	require.Equal(t, "Dune Messiah", books[1].Title)
	require.Empty(t, books[1].ISBN)
}

func TestClient_SearchTitle_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"numFound": 0, "docs": []}`))
	})

	books, err := client.SearchTitle(context.Background(), "no such book")
	require.NoError(t, err)
	require.Empty(t, books)
}
