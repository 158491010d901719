package catalog

import (
	"errors"
	"testing"
)

func TestBuiltInCatalogsAreValid(t *testing.T) {
	for _, c := range []Cuisine{Healthy, Indian} {
		t.Run(string(c), func(t *testing.T) {
			dishes, err := Dishes(c)
			if err != nil {
				t.Fatalf("Dishes(%s) failed: %v", c, err)
			}
			if err := Validate(dishes); err != nil {
				t.Fatalf("Expected %s catalog to be valid, got %v", c, err)
			}
			for _, cat := range Categories() {
				var veg, nonVeg int
				for _, d := range ByCategory(dishes, cat) {
					if d.DietType == Veg {
						veg++
					} else {
						nonVeg++
					}
				}
				if veg == 0 || nonVeg == 0 {
					t.Errorf("Expected %s/%s to have veg and nonveg dishes, got veg=%d nonveg=%d", c, cat, veg, nonVeg)
				}
			}
		})
	}
}

func TestDishesReturnsCopy(t *testing.T) {
	dishes, _ := Dishes(Healthy)
	original := dishes[0].Name
	dishes[0].Name = "Mutated"

	again, _ := Dishes(Healthy)
	if again[0].Name != original {
		t.Errorf("Expected catalog to be immutable, got first dish %q", again[0].Name)
	}
}

func TestDishesUnknownCuisine(t *testing.T) {
	if _, err := Dishes("martian"); err == nil {
		t.Fatal("Expected an error for unknown cuisine, got nil")
	}
}

func TestValidate(t *testing.T) {
	full := []DishRecord{
		{Breakfast, Veg, "A", 100},
		{Lunch, Veg, "B", 100},
		{Dinner, NonVeg, "C", 100},
		{Snack, Veg, "D", 100},
	}

	t.Run("Valid", func(t *testing.T) {
		if err := Validate(full); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("MissingCategory", func(t *testing.T) {
		err := Validate(full[:3])
		if !errors.Is(err, ErrInvalidCatalog) {
			t.Fatalf("Expected ErrInvalidCatalog, got %v", err)
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		dup := append([]DishRecord{}, full...)
		dup = append(dup, DishRecord{Snack, NonVeg, "A", 50})
		if err := Validate(dup); !errors.Is(err, ErrInvalidCatalog) {
			t.Fatalf("Expected ErrInvalidCatalog, got %v", err)
		}
	})

	t.Run("ZeroCalories", func(t *testing.T) {
		bad := append([]DishRecord{}, full...)
		bad[0].Calories = 0
		if err := Validate(bad); !errors.Is(err, ErrInvalidCatalog) {
			t.Fatalf("Expected ErrInvalidCatalog, got %v", err)
		}
	})
}

func TestParse(t *testing.T) {
	if c, err := ParseCategory(" Snack "); err != nil || c != Snack {
		t.Errorf("Expected snack, got %q (%v)", c, err)
	}
	if _, err := ParseCategory("brunch"); err == nil {
		t.Error("Expected error for brunch")
	}
	if d, err := ParseDietType("NONVEG"); err != nil || d != NonVeg {
		t.Errorf("Expected nonveg, got %q (%v)", d, err)
	}
	if _, err := ParseDietType("mixed"); err == nil {
		t.Error("Expected error: mixed is a preference, not a dish diet type")
	}
	if c, err := ParseCuisine("Indian"); err != nil || c != Indian {
		t.Errorf("Expected indian, got %q (%v)", c, err)
	}
}

func TestIndianSnackPoolMergesSidesAndSweets(t *testing.T) {
	dishes, _ := Dishes(Indian)
	snacks := map[string]bool{}
	for _, d := range ByCategory(dishes, Snack) {
		snacks[d.Name] = true
	}
	for _, name := range []string{"Raita", "Papad", "Gulab Jamun", "Kheer"} {
		if !snacks[name] {
			t.Errorf("Expected %q in the Indian snack pool", name)
		}
	}
}
