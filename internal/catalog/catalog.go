package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a meal slot within a day.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
	Snack     Category = "snack"
)

// DietType classifies a dish as vegetarian or not.
type DietType string

const (
	Veg    DietType = "veg"
	NonVeg DietType = "nonveg"
)

// Cuisine selects one of the compiled-in dish tables.
type Cuisine string

const (
	Healthy Cuisine = "healthy"
	Indian  Cuisine = "indian"
)

// DishRecord is a single catalog entry. Names are unique within a catalog.
type DishRecord struct {
	Category Category `json:"category"`
	DietType DietType `json:"dietType"`
	Name     string   `json:"name"`
	Calories int      `json:"calories"`
}

// ErrInvalidCatalog is returned by Validate for a misconfigured table.
var ErrInvalidCatalog = errors.New("invalid catalog")

var categories = []Category{Breakfast, Lunch, Dinner, Snack}

// Categories returns the meal slots in the order a day is assembled.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Dishes returns a copy of the table for the given cuisine.
func Dishes(c Cuisine) ([]DishRecord, error) {
	var src []DishRecord
	switch c {
	case Healthy:
		src = healthyDishes
	case Indian:
		src = indianDishes
	default:
		return nil, fmt.Errorf("unknown cuisine %q", c)
	}
	out := make([]DishRecord, len(src))
	copy(out, src)
	return out, nil
}

// ByCategory returns the dishes in the given slot, preserving table order.
func ByCategory(dishes []DishRecord, category Category) []DishRecord {
	var out []DishRecord
	for _, d := range dishes {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks that every category has at least one dish, names are unique
// and calorie counts are positive.
func Validate(dishes []DishRecord) error {
	seen := make(map[string]struct{}, len(dishes))
	perCategory := make(map[Category]int)
	for _, d := range dishes {
		if _, err := ParseCategory(string(d.Category)); err != nil {
			return fmt.Errorf("%w: dish %q: %v", ErrInvalidCatalog, d.Name, err)
		}
		if _, err := ParseDietType(string(d.DietType)); err != nil {
			return fmt.Errorf("%w: dish %q: %v", ErrInvalidCatalog, d.Name, err)
		}
		if d.Name == "" {
			return fmt.Errorf("%w: dish with empty name in %s", ErrInvalidCatalog, d.Category)
		}
		if d.Calories <= 0 {
			return fmt.Errorf("%w: dish %q has non-positive calories", ErrInvalidCatalog, d.Name)
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("%w: duplicate dish name %q", ErrInvalidCatalog, d.Name)
		}
		seen[d.Name] = struct{}{}
		perCategory[d.Category]++
	}
	for _, c := range categories {
		if perCategory[c] == 0 {
			return fmt.Errorf("%w: no dishes for %s", ErrInvalidCatalog, c)
		}
	}
	return nil
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Breakfast, Lunch, Dinner, Snack:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ParseDietType accepts "veg" or "nonveg" in any case.
func ParseDietType(s string) (DietType, error) {
	d := DietType(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Veg, NonVeg:
		return d, nil
	}
	return "", fmt.Errorf("unknown diet type %q", s)
}

// ParseCuisine accepts "healthy" or "indian" in any case.
func ParseCuisine(s string) (Cuisine, error) {
	c := Cuisine(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Healthy, Indian:
		return c, nil
	}
	return "", fmt.Errorf("unknown cuisine %q", s)
}
