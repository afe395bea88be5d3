package domain

import (
	"math"
	"time"
)

// Status represents where a book sits in the reading lifecycle.
type Status string

// Reading statuses.
const (
	StatusUnread   Status = "unread"
	StatusReading  Status = "reading"
	StatusFinished Status = "finished"
	StatusPaused   Status = "paused"
)

// ValidStatus reports whether s is one of the fixed reading statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusUnread, StatusReading, StatusFinished, StatusPaused:
		return true
	}
	return false
}

// Rating bounds. Ratings move in half-star steps.
const (
	MinRating = 0.5
	MaxRating = 5.0
)

// ValidRating reports whether r is within 0.5-5.0 and on a 0.5 step.
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	return math.Mod(r*2, 1) == 0
}

// Book is a single entry in a user's catalog. Every book belongs to
// exactly one owner; all access is scoped by OwnerID.
type Book struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"ownerId"`
	Title         string     `json:"title"`
	Author        string     `json:"author,omitempty"`
	ISBN          string     `json:"isbn,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishDate   string     `json:"publishDate,omitempty"` // Free-text, as provided
	TotalPages    int        `json:"totalPages,omitempty"`
	CurrentPage   int        `json:"currentPage"`
	Status        Status     `json:"status"`
	Rating        *float64   `json:"rating,omitempty"`
	CoverImageURL string     `json:"coverImageUrl,omitempty"`
	Description   string     `json:"description,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Timestamps
}

// Progress returns the book's completion percentage, clamped to 0-100.
// Books without a known page count always report 0.
func (b *Book) Progress() int {
	return ProgressPercent(b.CurrentPage, b.TotalPages)
}

// ProgressPercent computes min(100, round(page/total*100)), or 0 when the
// total page count is unknown.
func ProgressPercent(page, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(page) / float64(total) * 100))
	return min(100, pct)
}
