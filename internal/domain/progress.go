package domain

import "time"

// ProgressEntry is one append-only record of a reading-progress update.
// Entries are only ever created (on each progress update) or bulk-deleted
// when their parent book is deleted.
type ProgressEntry struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	BookID     string    `json:"bookId"`
	Page       int       `json:"page"`
	Progress   int       `json:"progress"` // 0-100
	RecordedAt time.Time `json:"recordedAt"`
}
