package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

type testServices struct {
	store    *store.Store
	auth     *service.AuthService
	books    *service.BookService
	progress *service.ProgressService
	notes    *service.NoteService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	s, err := store.NewInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	validate := validation.New()

	books := service.NewBookService(s, validate, nil)

	return &testServices{
		store:    s,
		auth:     service.NewAuthService(s, tokens, validate, nil),
		books:    books,
		progress: service.NewProgressService(s, books, validate, nil),
		notes:    service.NewNoteService(s, books, validate, nil),
	}
}
