package planner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"healthy-bite-selector/internal/catalog"
)

// UserItemCalories is the placeholder calorie count given to user supplied items.
const UserItemCalories = 200

// ErrNoEligibleDishes is returned when a slot cannot be filled even from the
// category's full catalog.
var ErrNoEligibleDishes = errors.New("no eligible dishes")

// Rand is the random source used for every pick.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded generator so plans can be reproduced.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator handles the generation of meal plans.
type Generator struct {
	tables map[catalog.Cuisine][]catalog.DishRecord
	rng    Rand
}

// NewGenerator creates a Generator over the given dish tables. Tables are not
// validated so callers can exercise degenerate catalogs.
func NewGenerator(rng Rand, tables map[catalog.Cuisine][]catalog.DishRecord) *Generator {
	return &Generator{tables: tables, rng: rng}
}

// NewDefaultGenerator creates a Generator over the compiled-in catalogs.
func NewDefaultGenerator(rng Rand) (*Generator, error) {
	tables := make(map[catalog.Cuisine][]catalog.DishRecord)
	for _, c := range []catalog.Cuisine{catalog.Healthy, catalog.Indian} {
		dishes, err := catalog.Dishes(c)
		if err != nil {
			return nil, err
		}
		if err := catalog.Validate(dishes); err != nil {
			return nil, fmt.Errorf("failed to load %s catalog: %w", c, err)
		}
		tables[c] = dishes
	}
	return NewGenerator(rng, tables), nil
}

func (g *Generator) table(p Preferences) []catalog.DishRecord {
	if p.Cuisine == "" {
		return g.tables[catalog.Healthy]
	}
	return g.tables[p.Cuisine]
}

// Filter returns the catalog dishes of a category that satisfy the diet in
// effect on the given day. An empty day disables the day-wise override.
func (g *Generator) Filter(category catalog.Category, p Preferences, day string) []catalog.DishRecord {
	diet := EffectiveDiet(p, day)

	var out []catalog.DishRecord
	for _, d := range catalog.ByCategory(g.table(p), category) {
		if diet == DietMixed || string(d.DietType) == string(diet) {
			out = append(out, d)
		}
	}
	return out
}

// Sample picks one dish for the slot, skipping dishes already chosen that day.
// When nothing is left it draws from the category's full catalog, ignoring
// diet and exclusions, and reports the fallback.
func (g *Generator) Sample(
	category catalog.Category,
	p Preferences,
	day string,
	excluded []catalog.DishRecord,
) (catalog.DishRecord, bool, error) {
	pool := g.Filter(category, p, day)
	if injectsUserItems(p, category) {
		pool = append(pool, userDishes(p.UserItems, category)...)
	}
	pool = withoutNames(pool, excluded)

	if len(pool) > 0 {
		return pool[g.rng.IntN(len(pool))], false, nil
	}

	full := catalog.ByCategory(g.table(p), category)
	if len(full) == 0 {
		return catalog.DishRecord{}, false, fmt.Errorf("%w: %s has an empty %s catalog", ErrNoEligibleDishes, p.Cuisine, category)
	}
	return full[g.rng.IntN(len(full))], true, nil
}

// Generate assembles a plan of p.DayCount days. Each day is filled in the
// order breakfast, lunch, dinner, snack without repeating a dish within the
// day unless the fallback path is taken.
func (g *Generator) Generate(p Preferences) (*MealPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	plan := &MealPlan{
		Cuisine:       p.Cuisine,
		DietType:      p.DietType,
		CalorieTarget: p.CalorieTarget,
		Days:          make([]DayPlan, 0, p.DayCount),
	}

	for i := 0; i < p.DayCount; i++ {
		day := DayName(i)
		picked := make([]catalog.DishRecord, 0, 4)
		for _, category := range catalog.Categories() {
			dish, fallback, err := g.Sample(category, p, day, picked)
			if err != nil {
				return nil, err
			}
			if fallback {
				plan.FallbackPicks++
			}
			picked = append(picked, dish)
		}
		plan.Days = append(plan.Days, NewDayPlan(day, picked[0], picked[1], picked[2], picked[3]))
	}

	return plan, nil
}

func injectsUserItems(p Preferences, category catalog.Category) bool {
	if !p.IncludeUserItems || len(p.UserItems) == 0 {
		return false
	}
	return p.UserItemScope == ScopeAllCategories || category == catalog.Snack
}

func userDishes(items []string, category catalog.Category) []catalog.DishRecord {
	out := make([]catalog.DishRecord, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		out = append(out, catalog.DishRecord{
			Category: category,
			DietType: catalog.Veg,
			Name:     name,
			Calories: UserItemCalories,
		})
	}
	return out
}

func withoutNames(pool, excluded []catalog.DishRecord) []catalog.DishRecord {
	if len(excluded) == 0 {
		return pool
	}
	names := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		names[e.Name] = struct{}{}
	}
	out := pool[:0:0]
	for _, d := range pool {
		if _, skip := names[d.Name]; !skip {
			out = append(out, d)
		}
	}
	return out
}
