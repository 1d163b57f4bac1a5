// Package redis stores pantry documents in Redis, one hash per collection.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vbonduro/pantry/internal/store"
)

var _ store.DocumentStore = (*Store)(nil)

// Store keeps each collection as a hash keyed by document ID whose values are
// the JSON-encoded fields.
type Store struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	data, err := s.client.HGet(ctx, collection, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return decode(id, data)
}

func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.client.HSet(ctx, collection, id, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.client.HDel(ctx, collection, id).Err(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]*store.Document, error) {
	all, err := s.client.HGetAll(ctx, collection).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*store.Document, 0, len(all))
	for id, data := range all {
		doc, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	store.SortDocuments(docs)
	return docs, nil
}

func decode(id, data string) (*store.Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("%w %q: %v", store.ErrInvalidDocument, id, err)
	}
	return &store.Document{ID: id, Fields: fields}, nil
}
