package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/store"
	"github.com/vbonduro/pantry/internal/store/storetest"
)

func TestFileStore(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	storetest.Run(t, s, "inventory")
}

func TestFileStore_PathTraversal(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.List(ctx, "..")
	assert.Error(t, err)

	err = s.Set(ctx, "..", "escape", map[string]any{"quantity": 1})
	assert.Error(t, err)
}

func TestFileStore_EscapesIDs(t *testing.T) {
	base := t.TempDir()
	s, err := store.NewFileStore(base)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "inventory", "../../etc/passwd", map[string]any{"quantity": 1}))

	_, err = os.Stat(filepath.Join(base, "inventory", "..%2F..%2Fetc%2Fpasswd.json"))
	assert.NoError(t, err)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	base := t.TempDir()
	s, err := store.NewFileStore(base)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "inventory"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "inventory", "eggs.json"), []byte("{"), 0600))

	_, err = s.Get(context.Background(), "inventory", "eggs")
	assert.ErrorIs(t, err, store.ErrInvalidDocument)
}

func TestFileStore_MissingCollection(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	docs, err := s.List(context.Background(), "inventory")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
