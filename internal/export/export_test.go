package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/planner"
)

func TestWritePlan(t *testing.T) {
	dish := func(c catalog.Category, name string, cal int) catalog.DishRecord {
		return catalog.DishRecord{Category: c, DietType: catalog.Veg, Name: name, Calories: cal}
	}
	plan := &planner.MealPlan{
		Cuisine:  catalog.Indian,
		DietType: planner.DietVeg,
		Days: []planner.DayPlan{
			planner.NewDayPlan("Monday",
				dish(catalog.Breakfast, "Poha", 270),
				dish(catalog.Lunch, "Rajma Chawal", 540),
				dish(catalog.Dinner, "Veg Pulao", 450),
				dish(catalog.Snack, "Roasted Makhana", 120)),
		},
	}
	items := []string{"Poha", "Rice", "Salt"}

	var buf bytes.Buffer
	if err := WritePlan(&buf, plan, items); err != nil {
		t.Fatalf("Failed to write plan: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(PlanSheet)
	if err != nil {
		t.Fatalf("Failed to read plan sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header, one day and a total row, got %d rows", len(rows))
	}
	if rows[0][0] != "Day" || rows[0][5] != "Total Calories" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Monday" || rows[1][1] != "Poha (270 kcal)" {
		t.Errorf("Unexpected day row: %v", rows[1])
	}
	if rows[1][5] != "1380" {
		t.Errorf("Expected day total 1380, got %s", rows[1][5])
	}
	if rows[2][0] != "Total" || rows[2][5] != "1380" {
		t.Errorf("Unexpected total row: %v", rows[2])
	}

	shopping, err := f.GetRows(ShoppingSheet)
	if err != nil {
		t.Fatalf("Failed to read shopping sheet: %v", err)
	}
	if len(shopping) != len(items)+1 {
		t.Fatalf("Expected %d rows, got %d", len(items)+1, len(shopping))
	}
	for i, item := range items {
		if shopping[i+1][0] != item {
			t.Errorf("Row %d: expected %s, got %s", i+1, item, shopping[i+1][0])
		}
	}
}
