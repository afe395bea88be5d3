package store

import (
	"context"
	"sort"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// AppendProgress persists a new progress history entry.
func (s *Store) AppendProgress(ctx context.Context, entry *domain.ProgressEntry) error {
	return s.Progress.Create(ctx, entry.ID, entry)
}

// ListProgressForBook returns an owner's progress history for one book,
// most recent first.
func (s *Store) ListProgressForBook(ctx context.Context, ownerID, bookID string) ([]*domain.ProgressEntry, error) {
	entries := make([]*domain.ProgressEntry, 0)
	for entry, err := range s.Progress.ListByIndex(ctx, "book", bookID) {
		if err != nil {
			return nil, err
		}
		if entry.OwnerID == ownerID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})
	return entries, nil
}

// DeleteProgressForBook removes every progress entry attached to a book.
// Used by the book delete cascade. Returns the number of entries removed.
func (s *Store) DeleteProgressForBook(ctx context.Context, bookID string) (int, error) {
	var ids []string
	for entry, err := range s.Progress.ListByIndex(ctx, "book", bookID) {
		if err != nil {
			return 0, err
		}
		ids = append(ids, entry.ID)
	}
	for _, id := range ids {
		if err := s.Progress.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
