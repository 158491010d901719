package planner

import "healthy-bite-selector/internal/catalog"

// Weekdays is the fixed label sequence for generated days. Plans longer than a
// week wrap around without regard to calendar dates.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the weekday label for the i-th generated day.
func DayName(i int) string {
	return Weekdays[i%len(Weekdays)]
}

// DayPlan represents the plan for a single day.
type DayPlan struct {
	Day           string             `json:"day"`
	Breakfast     catalog.DishRecord `json:"breakfast"`
	Lunch         catalog.DishRecord `json:"lunch"`
	Dinner        catalog.DishRecord `json:"dinner"`
	Snack         catalog.DishRecord `json:"snack"`
	TotalCalories int                `json:"totalCalories"`
}

// NewDayPlan builds a DayPlan whose TotalCalories is the sum of its four dishes.
func NewDayPlan(day string, breakfast, lunch, dinner, snack catalog.DishRecord) DayPlan {
	return DayPlan{
		Day:           day,
		Breakfast:     breakfast,
		Lunch:         lunch,
		Dinner:        dinner,
		Snack:         snack,
		TotalCalories: breakfast.Calories + lunch.Calories + dinner.Calories + snack.Calories,
	}
}

// Dishes returns the four dishes in slot order.
func (d DayPlan) Dishes() []catalog.DishRecord {
	return []catalog.DishRecord{d.Breakfast, d.Lunch, d.Dinner, d.Snack}
}

// Dish returns the dish planned for the given slot.
func (d DayPlan) Dish(c catalog.Category) (catalog.DishRecord, bool) {
	switch c {
	case catalog.Breakfast:
		return d.Breakfast, true
	case catalog.Lunch:
		return d.Lunch, true
	case catalog.Dinner:
		return d.Dinner, true
	case catalog.Snack:
		return d.Snack, true
	}
	return catalog.DishRecord{}, false
}

// MealPlan is an ordered sequence of day plans, day 0 first.
type MealPlan struct {
	Cuisine       catalog.Cuisine `json:"cuisine"`
	DietType      DietPreference  `json:"dietType"`
	CalorieTarget int             `json:"calorieTarget,omitempty"` // informational only
	Days          []DayPlan       `json:"days"`
	FallbackPicks int             `json:"fallbackPicks"`
}

// TotalCalories sums the calories of every day in the plan.
func (p *MealPlan) TotalCalories() int {
	total := 0
	for _, d := range p.Days {
		total += d.TotalCalories
	}
	return total
}
