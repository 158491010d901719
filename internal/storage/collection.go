package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collection is a JSON array persisted as a single value under a fixed key.
type Collection[T any] struct {
	kv     KV
	key    string
	logger *zap.Logger
}

// NewCollection binds a collection to key.
func NewCollection[T any](kv KV, key string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{kv: kv, key: key, logger: logger}
}

// Load returns the stored items. A missing key yields an empty collection, and
// so does malformed JSON, which is logged and otherwise ignored.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("discarding malformed stored collection",
			zap.String("key", c.key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites the stored collection with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	return c.kv.Put(ctx, c.key, data)
}

// Document is a single JSON value persisted under a fixed key.
type Document[T any] struct {
	kv     KV
	key    string
	logger *zap.Logger
}

func NewDocument[T any](kv KV, key string, logger *zap.Logger) *Document[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document[T]{kv: kv, key: key, logger: logger}
}

// Load returns the stored value, or nil when nothing usable is stored.
func (d *Document[T]) Load(ctx context.Context) (*T, error) {
	data, err := d.kv.Get(ctx, d.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		d.logger.Warn("discarding malformed stored document",
			zap.String("key", d.key),
			zap.Error(err),
		)
		return nil, nil
	}
	return &v, nil
}

func (d *Document[T]) Save(ctx context.Context, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", d.key, err)
	}
	return d.kv.Put(ctx, d.key, data)
}
