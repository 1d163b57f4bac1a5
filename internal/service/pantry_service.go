package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/vbonduro/pantry/internal/classifier"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/store"
)

// ErrInvalidName is returned when an item name is empty.
var ErrInvalidName = errors.New("item name required")

const quantityField = "quantity"

// documentRepository is the subset of store.DocumentStore that PantryService requires.
type documentRepository interface {
	Get(ctx context.Context, collection, id string) (*store.Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]*store.Document, error)
}

// PantryService translates pantry actions into reads and writes on a single
// document collection. Quantity updates are read-then-write with no locking;
// concurrent sessions race and the last write wins.
type PantryService struct {
	docs       documentRepository
	collection string
	classifier classifier.Classifier
	logger     *slog.Logger
}

func NewPantryService(docs documentRepository, collection string, cls classifier.Classifier, logger *slog.Logger) *PantryService {
	return &PantryService{
		docs:       docs,
		collection: collection,
		classifier: cls,
		logger:     logger,
	}
}

func (s *PantryService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	docs, err := s.docs.List(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*domain.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := toItem(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// SearchItems returns the items whose name contains term, ignoring case. The
// filter runs over a full listing; an empty term matches everything.
func (s *PantryService) SearchItems(ctx context.Context, term string) ([]*domain.Item, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return items, nil
	}

	needle := strings.ToLower(term)
	return lo.Filter(items, func(item *domain.Item, _ int) bool {
		return strings.Contains(strings.ToLower(item.ID), needle)
	}), nil
}

// AddItem creates name with quantity 1 or increments its existing quantity,
// and returns the stored item.
func (s *PantryService) AddItem(ctx context.Context, name string) (*domain.Item, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	current, err := s.getItem(ctx, name)
	if err != nil {
		return nil, err
	}

	quantity := 1
	if current != nil {
		quantity = current.Quantity + 1
	}

	if err := s.docs.Set(ctx, s.collection, name, map[string]any{quantityField: quantity}); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.Info("item added", "name", name, "quantity", quantity)
	return &domain.Item{ID: name, Quantity: quantity}, nil
}

// RemoveItem decrements name's quantity. When the quantity would reach zero
// the record is deleted and RemoveItem returns nil. Removing an item that does
// not exist is a no-op.
func (s *PantryService) RemoveItem(ctx context.Context, name string) (*domain.Item, error) {
	current, err := s.getItem(ctx, name)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if current.Quantity <= 1 {
		if err := s.docs.Delete(ctx, s.collection, name); err != nil {
			return nil, fmt.Errorf("failed to remove item: %w", err)
		}
		s.logger.Info("item deleted", "name", name)
		return nil, nil
	}

	quantity := current.Quantity - 1
	if err := s.docs.Set(ctx, s.collection, name, map[string]any{quantityField: quantity}); err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}

	s.logger.Info("item removed", "name", name, "quantity", quantity)
	return &domain.Item{ID: name, Quantity: quantity}, nil
}

// AddItemFromImage asks the classifier for a short label for the image at
// imageURL and adds one of that item. The label is used as-is after trimming.
// Only absolute http and https URLs are accepted.
func (s *PantryService) AddItemFromImage(ctx context.Context, imageURL string) (*domain.Item, error) {
	if err := classifier.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	s.logger.Info("image classification started", "url", imageURL)

	raw, err := s.classifier.Classify(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to classify image: %w", err)
	}

	label, err := classifier.CleanLabel(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("image classification complete", "url", imageURL, "label", label)

	return s.AddItem(ctx, label)
}

func (s *PantryService) getItem(ctx context.Context, name string) (*domain.Item, error) {
	doc, err := s.docs.Get(ctx, s.collection, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return toItem(doc)
}

// toItem reads the quantity field. JSON backends return float64, Firestore
// int64; both coerce. A live item always has quantity >= 1, and fractional
// values are rejected rather than truncated.
func toItem(doc *store.Document) (*domain.Item, error) {
	raw, ok := doc.Fields[quantityField]
	if !ok {
		return nil, fmt.Errorf("%w %q: missing quantity", store.ErrInvalidDocument, doc.ID)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: quantity: %v", store.ErrInvalidDocument, doc.ID, err)
	}
	quantity := int(f)
	if float64(quantity) != f || quantity < 1 {
		return nil, fmt.Errorf("%w %q: quantity %v must be a whole number >= 1", store.ErrInvalidDocument, doc.ID, raw)
	}
	return &domain.Item{ID: doc.ID, Quantity: quantity}, nil
}
