package googlebooks_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/metadata"
	"github.com/pagekeep/pagekeep-server/internal/metadata/googlebooks"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *googlebooks.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return googlebooks.NewClient(5*time.Second, slog.New(slog.DiscardHandler)).WithBaseURL(srv.URL)
}

func TestClient_LookupISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes", r.URL.Path)
		require.Equal(t, "isbn:9780441013593", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "abc123",
				"volumeInfo": {
					"title": "Dune",
					"authors": ["Frank Herbert", "Someone Else"],
					"publisher": "Ace",
					"publishedDate": "2005-08-02",
					"description": "Desert planet.",
					"pageCount": 412,
					"industryIdentifiers": [
						{"type": "ISBN_10", "identifier": "0441013597"},
						{"type": "ISBN_13", "identifier": "9780441013593"}
					],
					"imageLinks": {
						"smallThumbnail": "http://example.com/small.jpg",
						"thumbnail": "http://example.com/thumb.jpg"
					}
				}
			}]
		}`))
	})

	book, err := client.LookupISBN(context.Background(), "9780441013593")
	require.NoError(t, err)
	require.Equal(t, "Dune", book.Title)
	require.Equal(t, "Frank Herbert, Someone Else", book.Author)
	require.Equal(t, "9780441013593", book.ISBN)
	require.Equal(t, "Ace", book.Publisher)
	require.Equal(t, "2005-08-02", book.PublishDate)
	require.Equal(t, 412, book.TotalPages)
	require.Equal(t, "http://example.com/thumb.jpg", book.CoverImageURL)
	require.Equal(t, "Desert planet.", book.Description)
}

func TestClient_LookupISBN_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := client.LookupISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, metadata.ErrNoMatch)
}

func TestClient_LookupISBN_FallsBackToQueriedISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"volumeInfo": {"title": "Untagged"}}]
		}`))
	})

	book, err := client.LookupISBN(context.Background(), "9780441013593")
	require.NoError(t, err)
	require.Equal(t, "9780441013593", book.ISBN)
}

func TestClient_LookupISBN_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LookupISBN(context.Background(), "9780441013593")
	require.Error(t, err)
	require.NotErrorIs(t, err, metadata.ErrNoMatch)
}
