package store

import (
	"context"
	"sort"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// CreateNote persists a new note.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	return s.Notes.Create(ctx, note.ID, note)
}

// GetNote retrieves a note by ID, scoped to the given owner.
// A note owned by someone else is reported as not found.
func (s *Store) GetNote(ctx context.Context, ownerID, id string) (*domain.Note, error) {
	note, err := s.Notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return note, nil
}

// UpdateNote persists changes to an existing note, scoped to the given owner.
func (s *Store) UpdateNote(ctx context.Context, ownerID string, note *domain.Note) error {
	if _, err := s.GetNote(ctx, ownerID, note.ID); err != nil {
		return err
	}
	return s.Notes.Update(ctx, note.ID, note)
}

// DeleteNote removes a note, scoped to the given owner.
func (s *Store) DeleteNote(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetNote(ctx, ownerID, id); err != nil {
		return err
	}
	return s.Notes.Delete(ctx, id)
}

// ListNotesForBook returns an owner's notes on one book, newest first.
func (s *Store) ListNotesForBook(ctx context.Context, ownerID, bookID string) ([]*domain.Note, error) {
	notes := make([]*domain.Note, 0)
	for note, err := range s.Notes.ListByIndex(ctx, "book", bookID) {
		if err != nil {
			return nil, err
		}
		if note.OwnerID == ownerID {
			notes = append(notes, note)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

// DeleteNotesForBook removes every note attached to a book.
// Used by the book delete cascade. Returns the number of notes removed.
func (s *Store) DeleteNotesForBook(ctx context.Context, bookID string) (int, error) {
	var ids []string
	for note, err := range s.Notes.ListByIndex(ctx, "book", bookID) {
		if err != nil {
			return 0, err
		}
		ids = append(ids, note.ID)
	}
	for _, id := range ids {
		if err := s.Notes.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
