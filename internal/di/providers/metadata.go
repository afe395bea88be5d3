package providers

import (
	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/logger"
	"github.com/pagekeep/pagekeep-server/internal/metadata/googlebooks"
	"github.com/pagekeep/pagekeep-server/internal/metadata/openlibrary"
)

// GoogleBooksClientHandle wraps the Google Books client.
type GoogleBooksClientHandle struct {
	*googlebooks.Client
}

// ProvideGoogleBooksClient provides the Google Books catalog client.
func ProvideGoogleBooksClient(i do.Injector) (*GoogleBooksClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &GoogleBooksClientHandle{
		Client: googlebooks.NewClient(cfg.Lookup.Timeout, log.Logger),
	}, nil
}

// OpenLibraryClientHandle wraps the Open Library client.
type OpenLibraryClientHandle struct {
	*openlibrary.Client
}

// ProvideOpenLibraryClient provides the Open Library catalog client.
func ProvideOpenLibraryClient(i do.Injector) (*OpenLibraryClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &OpenLibraryClientHandle{
		Client: openlibrary.NewClient(cfg.Lookup.Timeout, log.Logger),
	}, nil
}
