package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/store/storetest"
)

func TestDocID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"eggs", "eggs"},
		{"oat milk", "oat milk"},
		{"Whole Milk", "Whole Milk"},
		{"1% milk", "1% milk"},
		{"salt & pepper", "salt & pepper"},
		{"salt/pepper", "salt%2Fpepper"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, docID(tt.id))
			assert.Equal(t, tt.id, itemID(docID(tt.id)))
		})
	}
}

func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	s, err := New(context.Background(), "pantry-test", "(default)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testCollection() string {
	return fmt.Sprintf("inventory_%d", time.Now().UnixNano())
}

// TestStore runs against the Firestore emulator
// (gcloud emulators firestore start) when FIRESTORE_EMULATOR_HOST is set.
func TestStore(t *testing.T) {
	s := newEmulatorStore(t)
	storetest.Run(t, s, testCollection())
}

func TestStore_DocumentIDIsItemName(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	collection := testCollection()

	require.NoError(t, s.Set(ctx, collection, "oat milk", map[string]any{"quantity": 1}))

	snap, err := s.client.Collection(collection).Doc("oat milk").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oat milk", snap.Ref.ID)
}

func TestStore_ReadsDocumentsWrittenByName(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	collection := testCollection()

	// Written directly, the way any other client keyed on the item name would.
	_, err := s.client.Collection(collection).Doc("Whole Milk").Set(ctx, map[string]any{"quantity": 2})
	require.NoError(t, err)

	doc, err := s.Get(ctx, collection, "Whole Milk")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.EqualValues(t, 2, doc.Fields["quantity"])

	docs, err := s.List(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Whole Milk", docs[0].ID)
}
