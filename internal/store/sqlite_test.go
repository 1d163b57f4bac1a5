package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/db"
	"github.com/vbonduro/pantry/internal/store"
	"github.com/vbonduro/pantry/internal/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	storetest.Run(t, store.NewSQLiteStore(d), "inventory")
}

func TestSQLiteStore_CorruptDocument(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Exec(`INSERT INTO documents (collection, id, data) VALUES ('inventory', 'eggs', 'not json')`)
	require.NoError(t, err)

	s := store.NewSQLiteStore(d)
	_, err = s.Get(context.Background(), "inventory", "eggs")
	assert.ErrorIs(t, err, store.ErrInvalidDocument)

	_, err = s.List(context.Background(), "inventory")
	assert.ErrorIs(t, err, store.ErrInvalidDocument)
}
