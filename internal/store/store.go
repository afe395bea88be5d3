// Package store provides persistence on top of Badger for users, books,
// reading progress, and notes.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Users    *Entity[domain.User]
	Books    *Entity[domain.Book]
	Notes    *Entity[domain.Note]
	Progress *Entity[domain.ProgressEntry]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initUsers()
	store.initBooks()
	store.initNotes()
	store.initProgress()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// NewInMemory creates a Store backed by an in-memory Badger instance.
// Intended for tests.
func NewInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initUsers()
	store.initBooks()
	store.initNotes()
	store.initProgress()

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initUsers initializes the Users entity on the store.
// Uses case-insensitive email indexing via normalizeEmail transformation.
// Usernames are indexed exactly as stored.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		).
		WithIndex("username", func(u *domain.User) []string {
			return []string{u.Username}
		})
}

// initBooks initializes the Books entity on the store.
// Indexed by owner so one user's shelf can be listed without a full scan.
func (s *Store) initBooks() {
	s.Books = NewEntity[domain.Book](s, "book:").
		WithMultiIndex("owner", func(b *domain.Book) []string {
			return []string{b.OwnerID}
		})
}

// initNotes initializes the Notes entity on the store.
// Indexed by book for per-book note listing and cascade deletes.
func (s *Store) initNotes() {
	s.Notes = NewEntity[domain.Note](s, "note:").
		WithMultiIndex("book", func(n *domain.Note) []string {
			return []string{n.BookID}
		})
}

// initProgress initializes the Progress entity on the store.
// Indexed by book for per-book history listing and cascade deletes.
func (s *Store) initProgress() {
	s.Progress = NewEntity[domain.ProgressEntry](s, "progress:").
		WithMultiIndex("book", func(p *domain.ProgressEntry) []string {
			return []string{p.BookID}
		})
}
