package auth_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
)

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, key, 32)

	// Second load returns the persisted key, not a fresh one.
	again, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Equal(t, key, again)

	info, err := os.Stat(filepath.Join(dir, "auth.key"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKey_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("not hex"), 0o600))

	_, err := auth.LoadOrGenerateKey(dir)
	require.Error(t, err)
}
