package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	require.NotContains(t, hash, "secret123")

	// Fresh salt per hash.
	other, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	ok, err := auth.VerifyPassword(hash, "secret123")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = auth.VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := auth.VerifyPassword("not-a-phc-string", "secret123")
	require.Error(t, err)
}
