package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/foodlist"
)

// ImportSummary reports the outcome of importing food items from a page.
type ImportSummary struct {
	Added   []string `json:"added"`
	Skipped int      `json:"skipped"`
}

// ImportFoods fetches list items from url and adds each one to the food list.
// Duplicates are skipped and counted.
func (a *App) ImportFoods(ctx context.Context, url string) (*ImportSummary, error) {
	items, err := a.importer.FetchItems(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to import from %s: %w", url, err)
	}
	return a.ingestFoods(ctx, items)
}

func (a *App) ingestFoods(ctx context.Context, items []string) (*ImportSummary, error) {
	summary := &ImportSummary{Added: []string{}}
	for _, item := range items {
		added, err := a.AddFood(ctx, item)
		switch {
		case err == nil:
			summary.Added = append(summary.Added, added)
		case errors.Is(err, foodlist.ErrDuplicateItem), errors.Is(err, foodlist.ErrEmptyItem):
			summary.Skipped++
		default:
			return summary, err
		}
	}

	a.logger.Info("food items imported",
		zap.Int("added", len(summary.Added)),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
