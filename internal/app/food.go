package app

import (
	"context"
	"fmt"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/favorites"
)

// AddFood adds an item to the user's food list.
func (a *App) AddFood(ctx context.Context, name string) (string, error) {
	return a.foods.Add(ctx, name)
}

// RemoveFood removes the item at index from the food list.
func (a *App) RemoveFood(ctx context.Context, index int) (string, error) {
	return a.foods.Remove(ctx, index)
}

// Foods lists the user's food items.
func (a *App) Foods(ctx context.Context) ([]string, error) {
	return a.foods.Items(ctx)
}

// PickFood selects a random food item. changed is false when the pick
// repeats the previous one.
func (a *App) PickFood(ctx context.Context) (item string, changed bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.foods.Pick(ctx, a.rng)
}

// SelectedFood returns the last picked item.
func (a *App) SelectedFood() string {
	return a.foods.Selected()
}

// AddFavorite stars a dish.
func (a *App) AddFavorite(ctx context.Context, dish catalog.DishRecord) (favorites.FavoriteDish, error) {
	return a.favorites.Add(ctx, dish)
}

// FavoriteFromPlan stars the dish in the given slot of day (0-based) of the current plan.
func (a *App) FavoriteFromPlan(ctx context.Context, day int, category catalog.Category) (favorites.FavoriteDish, error) {
	plan, err := a.CurrentPlan(ctx)
	if err != nil {
		return favorites.FavoriteDish{}, err
	}
	if day < 0 || day >= len(plan.Days) {
		return favorites.FavoriteDish{}, fmt.Errorf("%w: day %d of %d", ErrDayOutOfRange, day+1, len(plan.Days))
	}
	dish, ok := plan.Days[day].Dish(category)
	if !ok {
		return favorites.FavoriteDish{}, fmt.Errorf("unknown meal slot %q", category)
	}
	return a.favorites.Add(ctx, dish)
}

// RemoveFavorite unstars a dish. Unknown ids are ignored.
func (a *App) RemoveFavorite(ctx context.Context, id string) (bool, error) {
	return a.favorites.Remove(ctx, id)
}

// Favorites lists starred dishes in the order they were added.
func (a *App) Favorites(ctx context.Context) ([]favorites.FavoriteDish, error) {
	return a.favorites.List(ctx)
}
