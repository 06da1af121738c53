package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Token()
	assert.False(t, ok, "fresh store is unauthenticated")

	require.NoError(t, store.SetToken("tok"))
	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	_, ok = store.Token()
	assert.False(t, ok)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.SetToken("sky_abc"))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "sky_abc", token)

	// A second store over the same directory sees the same session.
	other := NewFileStore(dir)
	token, ok = other.Token()
	assert.True(t, ok)
	assert.Equal(t, "sky_abc", token)
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.SetToken("secret"))

	info, err := os.Stat(filepath.Join(dir, TokenFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Clear(), "clearing an empty session is not an error")

	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "skyfn")
	store := NewFileStore(dir)

	require.NoError(t, store.SetToken("tok"))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TokenFileName), []byte("  tok\n\n"), 0o600))

	store := NewFileStore(dir)
	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}
