// Package storetest holds the behaviour every store.DocumentStore backend must
// share, so each backend's tests can run the same cases.
package storetest

import (
	"context"
	"testing"

	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/store"
)

// Run exercises s against the DocumentStore contract. collection should be
// empty when Run starts.
func Run(t *testing.T, s store.DocumentStore, collection string) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing returns nil", func(t *testing.T) {
		doc, err := s.Get(ctx, collection, "nothing-here")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, collection, "eggs", map[string]any{"quantity": 1}))

		doc, err := s.Get(ctx, collection, "eggs")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "eggs", doc.ID)
		assert.Equal(t, 1, cast.ToInt(doc.Fields["quantity"]))
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, collection, "eggs", map[string]any{"quantity": 2}))

		doc, err := s.Get(ctx, collection, "eggs")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, 2, cast.ToInt(doc.Fields["quantity"]))
	})

	t.Run("ids with separators", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, collection, "salt & pepper/mix", map[string]any{"quantity": 4}))

		doc, err := s.Get(ctx, collection, "salt & pepper/mix")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "salt & pepper/mix", doc.ID)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, collection, "apples", map[string]any{"quantity": 3}))

		docs, err := s.List(ctx, collection)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "apples", docs[0].ID)
		assert.Equal(t, "eggs", docs[1].ID)
		assert.Equal(t, "salt & pepper/mix", docs[2].ID)
	})

	t.Run("collections are separate", func(t *testing.T) {
		docs, err := s.List(ctx, collection+"-other")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, collection, "eggs"))

		doc, err := s.Get(ctx, collection, "eggs")
		require.NoError(t, err)
		assert.Nil(t, doc)

		docs, err := s.List(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("delete missing is not an error", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, collection, "eggs"))
	})
}
