// Package googlebooks looks up book metadata on the Google Books volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pagekeep/pagekeep-server/internal/metadata"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client provides access to the Google Books volumes API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new Google Books client.
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

// LookupISBN fetches metadata for a single ISBN.
// Returns metadata.ErrNoMatch when the catalog has no record for it.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	params.Set("maxResults", "1")

	searchURL := c.baseURL + "/volumes?" + params.Encode()

	c.logger.Debug("looking up ISBN on Google Books", "isbn", isbn)

	var resp volumesResponse
	if err := metadata.GetJSON(ctx, c.httpClient, c.rateLimiter, c.logger, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("google books lookup: %w", err)
	}

	if resp.TotalItems == 0 || len(resp.Items) == 0 {
		return nil, metadata.ErrNoMatch
	}

	result := mapVolume(&resp.Items[0], isbn)
	return &result, nil
}

// mapVolume normalizes one volume into the canonical metadata shape.
// The queried ISBN is used when the record carries no identifier of its own.
func mapVolume(v *volume, queriedISBN string) metadata.BookMetadata {
	info := &v.VolumeInfo

	coverURL := info.ImageLinks.Thumbnail
	if coverURL == "" {
		coverURL = info.ImageLinks.SmallThumbnail
	}

	return metadata.BookMetadata{
		Title:         info.Title,
		Author:        strings.Join(info.Authors, ", "),
		ISBN:          pickISBN(info.IndustryIdentifiers, queriedISBN),
		Publisher:     info.Publisher,
		PublishDate:   info.PublishedDate,
		TotalPages:    info.PageCount,
		CoverImageURL: coverURL,
		Description:   info.Description,
	}
}

// pickISBN prefers ISBN_13 over ISBN_10, falling back to the queried value.
func pickISBN(ids []industryIdentifier, fallback string) string {
	var isbn10 string
	for _, id := range ids {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	if isbn10 != "" {
		return isbn10
	}
	return fallback
}
