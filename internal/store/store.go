// Package store holds the keyed document collections the pantry persists to.
// Every backend implements DocumentStore; the sqlite, file and memory
// backends live here, Firestore and Redis in subpackages.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// ErrInvalidDocument is returned when a stored document cannot be decoded.
var ErrInvalidDocument = errors.New("invalid document")

// Document is one record in a collection.
type Document struct {
	ID     string
	Fields map[string]any
}

type DocumentStore interface {
	// Get returns nil, nil when the document does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Set creates or replaces the document.
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// List returns every document in the collection ordered by ID.
	List(ctx context.Context, collection string) ([]*Document, error)
}

// SortDocuments orders docs by ID in place.
func SortDocuments(docs []*Document) {
	slices.SortFunc(docs, func(a, b *Document) int { return strings.Compare(a.ID, b.ID) })
}
