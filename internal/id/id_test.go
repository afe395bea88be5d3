package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/id"
)

func TestGenerate(t *testing.T) {
	generated, err := id.Generate("book")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(generated, "book-"))
	require.True(t, id.Valid("book", generated))
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		generated, err := id.Generate("note")
		require.NoError(t, err)
		require.False(t, seen[generated])
		seen[generated] = true
	}
}

func TestValid(t *testing.T) {
	generated := id.MustGenerate("user")
	require.True(t, id.Valid("user", generated))

	// Wrong prefix.
	require.False(t, id.Valid("book", generated))

	// Malformed bodies.
	require.False(t, id.Valid("book", "book-"))
	require.False(t, id.Valid("book", "book-short"))
	require.False(t, id.Valid("book", "book-has!invalid@charsher%"))
	require.False(t, id.Valid("book", ""))
}
