package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func TestStore_GetUserByEmail_CaseInsensitive(t *testing.T) {
	s := setupTestStore(t)

	user := &domain.User{
		ID:       "user-1",
		Username: "reader",
		Email:    "Reader@Example.com",
	}
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))

	got, err := s.GetUserByEmail(context.Background(), "reader@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)

	got, err = s.GetUserByEmail(context.Background(), "READER@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)
}

func TestStore_CreateUser_DuplicateEmailDiffersByCase(t *testing.T) {
	s := setupTestStore(t)

	first := &domain.User{ID: "user-1", Username: "reader", Email: "reader@example.com"}
	first.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), first))

	second := &domain.User{ID: "user-2", Username: "other", Email: "READER@example.com"}
	second.InitTimestamps()
	err := s.CreateUser(context.Background(), second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestStore_GetUserByUsername(t *testing.T) {
	s := setupTestStore(t)

	user := &domain.User{ID: "user-1", Username: "reader", Email: "reader@example.com"}
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))

	got, err := s.GetUserByUsername(context.Background(), "reader")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)

	_, err = s.GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}
