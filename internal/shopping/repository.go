package shopping

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/storage"
)

// StorageKey is where the latest shopping list lives.
const StorageKey = "mealPlannerShoppingList"

// Repository handles persistence of the latest shopping list.
type Repository struct {
	doc *storage.Document[ShoppingList]
}

// NewRepository creates a new shopping list repository.
func NewRepository(kv storage.KV, logger *zap.Logger) *Repository {
	return &Repository{doc: storage.NewDocument[ShoppingList](kv, StorageKey, logger)}
}

// Save replaces the stored list. Lists are never merged.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) error {
	if err := r.doc.Save(ctx, list); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

// Latest returns the stored list, or nil if none has been generated yet.
func (r *Repository) Latest(ctx context.Context) (*ShoppingList, error) {
	list, err := r.doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return list, nil
}
