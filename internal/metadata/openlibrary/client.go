// Package openlibrary looks up book metadata on the Open Library books and
// search APIs.
package openlibrary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pagekeep/pagekeep-server/internal/metadata"
)

const (
	defaultBaseURL   = "https://openlibrary.org"
	coverBaseURL     = "https://covers.openlibrary.org"
	titleSearchLimit = 10
	isbnSearchLimit  = 1
)

// Client provides access to the Open Library APIs.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new Open Library client.
// Rate limited to roughly one request per second with a small burst.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

// LookupISBN fetches metadata for a single ISBN via the books endpoint.
// Returns metadata.ErrNoMatch when the catalog has no record for it.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	bibkey := "ISBN:" + isbn

	params := url.Values{}
	params.Set("bibkeys", bibkey)
	params.Set("format", "json")
	params.Set("jscmd", "data")

	lookupURL := c.baseURL + "/api/books?" + params.Encode()

	c.logger.Debug("looking up ISBN on Open Library", "isbn", isbn)

	resp := make(map[string]bookData)
	if err := metadata.GetJSON(ctx, c.httpClient, c.rateLimiter, c.logger, lookupURL, &resp); err != nil {
		return nil, fmt.Errorf("open library lookup: %w", err)
	}

	data, ok := resp[bibkey]
	if !ok {
		return nil, metadata.ErrNoMatch
	}

	result := mapBookData(&data, isbn)
	return &result, nil
}

// SearchISBN looks up an ISBN through the search endpoint. It is the last
// resort for ISBNs the books endpoint does not know; only the first search
// hit is used.
func (c *Client) SearchISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	params.Set("limit", strconv.Itoa(isbnSearchLimit))

	docs, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, metadata.ErrNoMatch
	}

	result := mapSearchDoc(&docs[0], isbn)
	return &result, nil
}

// SearchTitle returns up to ten books matching a title query.
// An empty result set is a successful outcome, not an error.
func (c *Client) SearchTitle(ctx context.Context, title string) ([]metadata.BookMetadata, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", strconv.Itoa(titleSearchLimit))

	docs, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}

	results := make([]metadata.BookMetadata, 0, len(docs))
	for i := range docs {
		results = append(results, mapSearchDoc(&docs[i], ""))
	}
	return results, nil
}

func (c *Client) search(ctx context.Context, params url.Values) ([]searchDoc, error) {
	searchURL := c.baseURL + "/search.json?" + params.Encode()

	c.logger.Debug("searching Open Library", "url", searchURL)

	var resp searchResponse
	if err := metadata.GetJSON(ctx, c.httpClient, c.rateLimiter, c.logger, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("open library search: %w", err)
	}
	return resp.Docs, nil
}

// mapBookData normalizes one books-endpoint record.
// Covers prefer the medium size, falling back to small.
func mapBookData(data *bookData, queriedISBN string) metadata.BookMetadata {
	coverURL := data.Cover.Medium
	if coverURL == "" {
		coverURL = data.Cover.Small
	}

	isbn := queriedISBN
	if len(data.Identifiers.ISBN13) > 0 {
		isbn = data.Identifiers.ISBN13[0]
	} else if len(data.Identifiers.ISBN10) > 0 {
		isbn = data.Identifiers.ISBN10[0]
	}

	var publisher string
	if len(data.Publishers) > 0 {
		publisher = data.Publishers[0].Name
	}

	return metadata.BookMetadata{
		Title:         data.Title,
		Author:        joinNames(data.Authors),
		ISBN:          isbn,
		Publisher:     publisher,
		PublishDate:   data.PublishDate,
		TotalPages:    data.NumberOfPages,
		CoverImageURL: coverURL,
	}
}

// mapSearchDoc normalizes one search hit. Search results never carry a
// description; that field stays empty.
func mapSearchDoc(doc *searchDoc, queriedISBN string) metadata.BookMetadata {
	isbn := queriedISBN
	if isbn == "" && len(doc.ISBN) > 0 {
		isbn = doc.ISBN[0]
	}

	var publisher string
	if len(doc.Publisher) > 0 {
		publisher = doc.Publisher[0]
	}

	var publishDate string
	if doc.FirstPublishYear > 0 {
		publishDate = strconv.Itoa(doc.FirstPublishYear)
	}

	var coverURL string
	if doc.CoverID > 0 {
		coverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", coverBaseURL, doc.CoverID)
	}

	return metadata.BookMetadata{
		Title:         doc.Title,
		Author:        strings.Join(doc.AuthorName, ", "),
		ISBN:          isbn,
		Publisher:     publisher,
		PublishDate:   publishDate,
		TotalPages:    doc.NumberOfPagesMedian,
		CoverImageURL: coverURL,
	}
}

func joinNames(links []namedLink) string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		if l.Name != "" {
			names = append(names, l.Name)
		}
	}
	return strings.Join(names, ", ")
}
