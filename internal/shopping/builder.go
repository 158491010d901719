package shopping

import (
	"strings"
	"unicode"

	"healthy-bite-selector/internal/planner"
)

// BuildList derives the ingredient keywords for a meal plan. Items keep the
// order in which they were first seen and appear only once.
func BuildList(days []planner.DayPlan) []string {
	seen := make(map[string]bool)
	items := []string{}
	add := func(item string) {
		if !seen[item] {
			seen[item] = true
			items = append(items, item)
		}
	}

	for _, day := range days {
		for _, dish := range day.Dishes() {
			name := strings.ToLower(dish.Name)
			for _, rule := range keywordRules {
				if matchesAny(name, rule.Match) {
					for _, item := range rule.Items {
						add(item)
					}
				}
			}
		}
		for _, item := range CommonIngredients {
			add(item)
		}
	}
	return items
}

// matchesAny reports whether a keyword starts one of the words in name, so
// "egg" matches "Egg Bhurji" but not "Veggie Wrap".
func matchesAny(name string, keywords []string) bool {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		for _, k := range keywords {
			if strings.HasPrefix(w, k) {
				return true
			}
		}
	}
	return false
}
