package favorites

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/storage"
)

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
}

var poha = catalog.DishRecord{Category: catalog.Breakfast, DietType: catalog.Veg, Name: "Poha", Calories: 270}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	t.Run("AddAllowsDuplicates", func(t *testing.T) {
		reg := NewRegister(storage.NewMemoryStore(), nil).WithClock(fixedClock(start))
		a, _ := reg.Add(ctx, poha)
		b, _ := reg.Add(ctx, poha)

		list, err := reg.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 favorites, got %d", len(list))
		}
		if a.ID == b.ID {
			t.Errorf("Expected distinct ids, both were %s", a.ID)
		}
		wantID := "Poha-" + "1709539200001"
		if a.ID != wantID {
			t.Errorf("Expected id %s, got %s", wantID, a.ID)
		}
	})

	t.Run("RemoveUnknownIsNoop", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		reg := NewRegister(kv, nil).WithClock(fixedClock(start))
		_, _ = reg.Add(ctx, poha)
		before, _ := kv.Get(ctx, StorageKey)

		removed, err := reg.Remove(ctx, "does-not-exist")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if removed {
			t.Error("Expected nothing to be removed")
		}
		after, _ := kv.Get(ctx, StorageKey)
		if string(before) != string(after) {
			t.Errorf("Expected register unchanged, got %s", after)
		}
	})

	t.Run("RemoveByID", func(t *testing.T) {
		reg := NewRegister(storage.NewMemoryStore(), nil).WithClock(fixedClock(start))
		a, _ := reg.Add(ctx, poha)
		b, _ := reg.Add(ctx, catalog.DishRecord{Category: catalog.Snack, DietType: catalog.Veg, Name: "Mixed Nuts", Calories: 180})

		removed, err := reg.Remove(ctx, a.ID)
		if err != nil || !removed {
			t.Fatalf("Expected removal, got %v, %v", removed, err)
		}
		list, _ := reg.List(ctx)
		if len(list) != 1 || list[0].ID != b.ID {
			t.Errorf("Expected only %s to remain, got %+v", b.ID, list)
		}
	})

	t.Run("StoredRoundTripKeepsOrder", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		reg := NewRegister(kv, nil).WithClock(fixedClock(start))
		names := []string{"Poha", "Upma", "Idli Sambar"}
		for _, n := range names {
			d := poha
			d.Name = n
			_, _ = reg.Add(ctx, d)
		}

		reloaded, err := NewRegister(kv, nil).List(ctx)
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		original, _ := reg.List(ctx)
		if len(reloaded) != len(original) {
			t.Fatalf("Expected %d favorites, got %d", len(original), len(reloaded))
		}
		for i := range original {
			if reloaded[i].ID != original[i].ID || !reloaded[i].DateAdded.Equal(original[i].DateAdded) || reloaded[i].DishRecord != original[i].DishRecord {
				t.Errorf("Favorite %d differs: %+v vs %+v", i, original[i], reloaded[i])
			}
		}
	})

	t.Run("FlatJSONShape", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		reg := NewRegister(kv, nil).WithClock(fixedClock(start))
		_, _ = reg.Add(ctx, poha)

		raw, _ := kv.Get(ctx, StorageKey)
		var decoded []map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Stored value is not a JSON array: %v", err)
		}
		for _, field := range []string{"id", "name", "category", "dietType", "calories", "dateAdded"} {
			if _, ok := decoded[0][field]; !ok {
				t.Errorf("Expected field %q in stored favorite", field)
			}
		}
	})
}
