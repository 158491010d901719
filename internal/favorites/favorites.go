package favorites

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/storage"
)

// StorageKey is where the favorites register lives.
const StorageKey = "mealPlannerFavorites"

// FavoriteDish is a dish the user starred.
type FavoriteDish struct {
	catalog.DishRecord
	ID        string    `json:"id"`
	DateAdded time.Time `json:"dateAdded"`
}

// Register is the persisted list of favorite dishes.
type Register struct {
	mu    sync.Mutex
	col   *storage.Collection[FavoriteDish]
	clock func() time.Time
}

// NewRegister creates a register backed by kv.
func NewRegister(kv storage.KV, logger *zap.Logger) *Register {
	return &Register{
		col:   storage.NewCollection[FavoriteDish](kv, StorageKey, logger),
		clock: time.Now,
	}
}

// WithClock overrides the time source.
func (r *Register) WithClock(clock func() time.Time) *Register {
	r.clock = clock
	return r
}

// Add appends dish. Adding the same dish twice keeps both entries.
func (r *Register) Add(ctx context.Context, dish catalog.DishRecord) (FavoriteDish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load(ctx)
	if err != nil {
		return FavoriteDish{}, fmt.Errorf("failed to load favorites: %w", err)
	}

	now := r.clock()
	fav := FavoriteDish{
		DishRecord: dish,
		ID:         fmt.Sprintf("%s-%d", dish.Name, now.UnixMilli()),
		DateAdded:  now,
	}
	items = append(items, fav)

	if err := r.col.Save(ctx, items); err != nil {
		return FavoriteDish{}, fmt.Errorf("failed to save favorites: %w", err)
	}
	return fav, nil
}

// Remove deletes every entry whose id equals id. Unknown ids are ignored.
// It reports whether anything was removed.
func (r *Register) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load favorites: %w", err)
	}

	kept := items[:0]
	for _, f := range items {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := r.col.Save(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to save favorites: %w", err)
	}
	return true, nil
}

// List returns the favorites in the order they were added.
func (r *Register) List(ctx context.Context) ([]FavoriteDish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Load(ctx)
}
