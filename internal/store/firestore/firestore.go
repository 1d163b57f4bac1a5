// Package firestore stores pantry documents in Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vbonduro/pantry/internal/store"
)

var _ store.DocumentStore = (*Store)(nil)

// Store maps collections and documents one to one onto Firestore. The document
// ID is the item name itself, so records written by other clients keyed on the
// raw name are found. Only "/" is rewritten, to "%2F", because Firestore reads
// it as a path separator.
type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID, databaseID string) (*Store, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	snap, err := s.client.Collection(collection).Doc(docID(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &store.Document{ID: id, Fields: snap.Data()}, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(docID(id)).Set(ctx, fields); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(docID(id)).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]*store.Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*store.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, &store.Document{ID: itemID(snap.Ref.ID), Fields: snap.Data()})
	}
	store.SortDocuments(docs)
	return docs, nil
}

// A raw document ID that already contains "%2F" reads back with a "/".
var (
	toDocID  = strings.NewReplacer("/", "%2F")
	toItemID = strings.NewReplacer("%2F", "/")
)

func docID(id string) string { return toDocID.Replace(id) }

func itemID(docID string) string { return toItemID.Replace(docID) }
