package shopping

import (
	"context"
	"testing"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/storage"
)

func dish(name string) catalog.DishRecord {
	return catalog.DishRecord{Category: catalog.Snack, DietType: catalog.Veg, Name: name, Calories: 100}
}

func TestBuildList(t *testing.T) {
	t.Run("KeywordsThenCommon", func(t *testing.T) {
		days := []planner.DayPlan{
			planner.NewDayPlan("Monday", dish("Poha"), dish("Paneer Tikka Salad"), dish("Chicken Biryani"), dish("Fruit Salad")),
		}
		got := BuildList(days)
		want := []string{"Poha", "Peanuts", "Curry leaves", "Paneer", "Salad greens", "Chicken", "Rice"}
		want = append(want, CommonIngredients...)

		if len(got) != len(want) {
			t.Fatalf("Expected %d items, got %d: %v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Item %d: expected '%s', got '%s'", i, want[i], got[i])
			}
		}
	})

	t.Run("CaseInsensitiveWordStart", func(t *testing.T) {
		days := []planner.DayPlan{
			planner.NewDayPlan("Monday", dish("BOILED EGGS"), dish("Veggie Wrap"), dish("dal with roti"), dish("Kimchi")),
		}
		got := BuildList(days)
		if !contains(got, "Eggs") {
			t.Errorf("Expected Eggs for 'BOILED EGGS', got %v", got)
		}
		if !contains(got, "Lentils") || !contains(got, "Whole wheat flour") {
			t.Errorf("Expected lowercase dal/roti to match, got %v", got)
		}
		if count(got, "Eggs") != 1 {
			t.Errorf("Expected Eggs exactly once, got %v", got)
		}
	})

	t.Run("VeggieIsNotEgg", func(t *testing.T) {
		days := []planner.DayPlan{
			planner.NewDayPlan("Monday", dish("Veggie Wrap"), dish("Kimchi"), dish("Kimchi"), dish("Kimchi")),
		}
		if got := BuildList(days); contains(got, "Eggs") {
			t.Errorf("Did not expect Eggs for 'Veggie Wrap', got %v", got)
		}
	})

	t.Run("DuplicatesCollapseAcrossDays", func(t *testing.T) {
		day := planner.NewDayPlan("Monday", dish("Poha"), dish("Rajma Chawal"), dish("Chicken Curry with Rice"), dish("Mixed Nuts"))
		one := BuildList([]planner.DayPlan{day})
		three := BuildList([]planner.DayPlan{day, day, day})
		if len(one) != len(three) {
			t.Errorf("Expected identical days to add nothing new, got %d vs %d", len(one), len(three))
		}
		for _, item := range CommonIngredients {
			if count(three, item) != 1 {
				t.Errorf("Expected common ingredient %s exactly once, got %d", item, count(three, item))
			}
		}
	})

	t.Run("NoDays", func(t *testing.T) {
		got := BuildList(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil list, got %#v", got)
		}
	})

	t.Run("UnknownDishesOnlyCommon", func(t *testing.T) {
		got := BuildList([]planner.DayPlan{
			planner.NewDayPlan("Monday", dish("Kimchi"), dish("Kimchi"), dish("Kimchi"), dish("Kimchi")),
		})
		if len(got) != len(CommonIngredients) {
			t.Errorf("Expected only common ingredients, got %v", got)
		}
	})
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemoryStore(), nil)

	latest, err := repo.Latest(ctx)
	if err != nil || latest != nil {
		t.Fatalf("Expected no list yet, got %v, %v", latest, err)
	}

	_ = repo.Save(ctx, &ShoppingList{Items: []string{"Rice", "Salt"}})
	_ = repo.Save(ctx, &ShoppingList{Items: []string{"Oats"}})

	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(latest.Items) != 1 || latest.Items[0] != "Oats" {
		t.Errorf("Expected the second save to replace the first, got %v", latest.Items)
	}
}

func contains(items []string, v string) bool {
	return count(items, v) > 0
}

func count(items []string, v string) int {
	n := 0
	for _, i := range items {
		if i == v {
			n++
		}
	}
	return n
}
