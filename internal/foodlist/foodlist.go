package foodlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/storage"
)

// StorageKey is where the user's food items live.
const StorageKey = "healthyFoodItems"

var (
	ErrEmptyItem     = errors.New("food item is empty")
	ErrDuplicateItem = errors.New("food item already in list")
	ErrItemNotFound  = errors.New("food item not found")
	ErrEmptyList     = errors.New("food list is empty")
)

// List is the user's persisted list of healthy food items. The current random
// pick is kept in memory only.
type List struct {
	mu       sync.Mutex
	col      *storage.Collection[string]
	selected string
}

func NewList(kv storage.KV, logger *zap.Logger) *List {
	return &List{col: storage.NewCollection[string](kv, StorageKey, logger)}
}

// Add appends a trimmed item. Names are compared case-insensitively.
func (l *List) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyItem
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.col.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load food items: %w", err)
	}
	for _, existing := range items {
		if strings.EqualFold(existing, name) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateItem, existing)
		}
	}

	items = append(items, name)
	if err := l.col.Save(ctx, items); err != nil {
		return "", fmt.Errorf("failed to save food items: %w", err)
	}
	return name, nil
}

// Remove deletes the item at index and returns it.
func (l *List) Remove(ctx context.Context, index int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.col.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load food items: %w", err)
	}
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("%w: index %d", ErrItemNotFound, index)
	}

	removed := items[index]
	items = append(items[:index], items[index+1:]...)
	if err := l.col.Save(ctx, items); err != nil {
		return "", fmt.Errorf("failed to save food items: %w", err)
	}
	if removed == l.selected {
		l.selected = ""
	}
	return removed, nil
}

// Items returns the stored items in insertion order.
func (l *List) Items(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.col.Load(ctx)
}

// Pick selects an item uniformly at random. changed is false when the same
// item as last time came up.
func (l *List) Pick(ctx context.Context, rng planner.Rand) (item string, changed bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.col.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to load food items: %w", err)
	}
	if len(items) == 0 {
		return "", false, ErrEmptyList
	}

	item = items[rng.IntN(len(items))]
	changed = item != l.selected
	l.selected = item
	return item, changed, nil
}

// Selected returns the last picked item, or "" if none.
func (l *List) Selected() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}
