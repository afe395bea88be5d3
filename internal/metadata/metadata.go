// Package metadata defines the canonical book metadata shape shared by all
// external catalog providers, plus the HTTP plumbing they have in common.
package metadata

import "errors"

// ErrNoMatch is returned by provider lookups that completed successfully but
// found no matching record. Callers use it to fall through to the next
// provider in the chain.
var ErrNoMatch = errors.New("no matching records")

// BookMetadata is the normalized result of an external catalog lookup.
// Every provider maps its own response shape into this; fields a provider
// cannot supply are left as zero values, never treated as errors.
type BookMetadata struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Publisher     string `json:"publisher"`
	PublishDate   string `json:"publishDate"`
	TotalPages    int    `json:"totalPages"`
	CoverImageURL string `json:"coverImageUrl"`
	Description   string `json:"description"`
}
