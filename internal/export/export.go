package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"healthy-bite-selector/internal/planner"
)

const (
	PlanSheet     = "Meal Plan"
	ShoppingSheet = "Shopping List"
)

// WritePlan renders plan and its shopping list as an xlsx workbook.
func WritePlan(w io.Writer, plan *planner.MealPlan, items []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PlanSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writePlanSheet(f, plan); err != nil {
		return fmt.Errorf("failed to write meal plan sheet: %w", err)
	}

	if _, err := f.NewSheet(ShoppingSheet); err != nil {
		return fmt.Errorf("failed to create shopping sheet: %w", err)
	}
	if err := writeShoppingSheet(f, items); err != nil {
		return fmt.Errorf("failed to write shopping sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writePlanSheet(f *excelize.File, plan *planner.MealPlan) error {
	sw, err := f.NewStreamWriter(PlanSheet)
	if err != nil {
		return err
	}
	header := []interface{}{"Day", "Breakfast", "Lunch", "Dinner", "Snack", "Total Calories"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, d := range plan.Days {
		row := []interface{}{
			d.Day,
			dishLabel(d.Breakfast.Name, d.Breakfast.Calories),
			dishLabel(d.Lunch.Name, d.Lunch.Calories),
			dishLabel(d.Dinner.Name, d.Dinner.Calories),
			dishLabel(d.Snack.Name, d.Snack.Calories),
			d.TotalCalories,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	footer, _ := excelize.CoordinatesToCellName(1, len(plan.Days)+2)
	if err := sw.SetRow(footer, []interface{}{"Total", nil, nil, nil, nil, plan.TotalCalories()}); err != nil {
		return err
	}
	return sw.Flush()
}

func writeShoppingSheet(f *excelize.File, items []string) error {
	sw, err := f.NewStreamWriter(ShoppingSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"Item"}); err != nil {
		return err
	}
	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{item}); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func dishLabel(name string, calories int) string {
	return fmt.Sprintf("%s (%d kcal)", name, calories)
}
