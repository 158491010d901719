package telegram

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/favorites"
	"healthy-bite-selector/internal/history"
	"healthy-bite-selector/internal/planner"
)

// maxCallbackData is Telegram's limit on inline button payloads.
const maxCallbackData = 64

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// parseCommand splits "/cmd@bot a b" into ("cmd", [a b]). Text that is not a
// command yields an empty name.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), fields[1:]
}

// parsePlanArgs reads /plan options in any order. Numbers are day counts
// when allowed as such, otherwise calorie targets.
func parsePlanArgs(args []string) (planner.Preferences, error) {
	prefs := planner.Preferences{DayCount: 7}

	for _, raw := range args {
		arg := strings.ToLower(raw)
		switch {
		case arg == "veg" || arg == "nonveg" || arg == "mixed":
			prefs.DietType = planner.DietPreference(arg)
		case arg == "healthy" || arg == "indian":
			prefs.Cuisine = catalog.Cuisine(arg)
		case arg == "items":
			prefs.IncludeUserItems = true
		case arg == "anyslot":
			prefs.UserItemScope = planner.ScopeAllCategories
		case strings.HasPrefix(arg, "vegdays="):
			for _, d := range strings.Split(strings.TrimPrefix(arg, "vegdays="), ",") {
				day, err := parseWeekday(d)
				if err != nil {
					return prefs, err
				}
				prefs.VegetarianDays = append(prefs.VegetarianDays, day)
			}
			prefs.DayWiseOverride = true
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return prefs, fmt.Errorf("unknown option %q", raw)
			}
			switch {
			case slices.Contains(planner.AllowedDayCounts, n):
				prefs.DayCount = n
			case slices.Contains(planner.AllowedCalorieTargets, n):
				prefs.CalorieTarget = n
			default:
				return prefs, fmt.Errorf("%d is neither a day count %v nor a calorie target %v",
					n, planner.AllowedDayCounts, planner.AllowedCalorieTargets)
			}
		}
	}
	return prefs, nil
}

// parseWeekday accepts a weekday name or any prefix of at least three letters.
func parseWeekday(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		for _, d := range planner.Weekdays {
			if strings.HasPrefix(strings.ToLower(d), s) {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// parseFavArgs reads "<day#> <slot>" with a 1-based day.
func parseFavArgs(args []string) (int, catalog.Category, error) {
	if len(args) != 2 {
		return 0, "", fmt.Errorf("expected a day number and a meal slot")
	}
	day, err := strconv.Atoi(args[0])
	if err != nil || day < 1 {
		return 0, "", fmt.Errorf("day must be a positive number, got %q", args[0])
	}
	category, err := catalog.ParseCategory(args[1])
	if err != nil {
		return 0, "", err
	}
	return day, category, nil
}

func regenerateKeyboard(args []string) tgbotapi.InlineKeyboardMarkup {
	data := "regen|" + strings.Join(args, " ")
	if len(data) > maxCallbackData {
		data = "regen|"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Regenerate", data),
		),
	)
}

var slotIcons = map[catalog.Category]string{
	catalog.Breakfast: "🍳",
	catalog.Lunch:     "🥗",
	catalog.Dinner:    "🍛",
	catalog.Snack:     "🍎",
}

// formatPlanMarkdownParts renders the plan and its shopping list as two
// Markdown messages.
func formatPlanMarkdownParts(plan *planner.MealPlan, items []string) (string, string) {
	var sb strings.Builder

	if len(plan.Days) == 7 {
		sb.WriteString("📅 *Weekly Meal Plan*\n")
	} else {
		sb.WriteString(fmt.Sprintf("📅 *%d-Day Meal Plan*\n", len(plan.Days)))
	}
	sb.WriteString(fmt.Sprintf("_%s, %s", plan.Cuisine, plan.DietType))
	if plan.CalorieTarget > 0 {
		sb.WriteString(fmt.Sprintf(", %d kcal target", plan.CalorieTarget))
	}
	sb.WriteString("_\n\n")

	for i, d := range plan.Days {
		sb.WriteString(fmt.Sprintf("*%d. %s* (%d kcal)\n", i+1, d.Day, d.TotalCalories))
		for _, dish := range d.Dishes() {
			sb.WriteString(fmt.Sprintf("%s %s (%d kcal)\n", slotIcons[dish.Category], escapeMarkdown(dish.Name), dish.Calories))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("🔥 *Total:* %d kcal\n", plan.TotalCalories()))
	sb.WriteString("⭐ Save a dish with `/fav <day#> <slot>`")

	return sb.String(), formatShoppingList(items)
}

func formatShoppingList(items []string) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	if len(items) == 0 {
		sb.WriteString("_nothing to buy_")
		return sb.String()
	}
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s\n", escapeMarkdown(item)))
	}
	return sb.String()
}

func formatFoodList(items []string, selected string) string {
	if len(items) == 0 {
		return "🫙 Your list is empty. Add something with /add."
	}
	var sb strings.Builder
	sb.WriteString("📝 *Your Foods*\n\n")
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, escapeMarkdown(item)))
		if item == selected {
			sb.WriteString(" 🎲")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatFavorites(favs []favorites.FavoriteDish) string {
	if len(favs) == 0 {
		return "⭐ No favorites yet. Save one with /fav."
	}
	var sb strings.Builder
	sb.WriteString("⭐ *Favorites*\n\n")
	for _, f := range favs {
		sb.WriteString(fmt.Sprintf("• *%s* (%s, %d kcal)\n  `%s`\n", escapeMarkdown(f.Name), f.Category, f.Calories, f.ID))
	}
	return sb.String()
}

func formatHistory(entries []history.HistoryEntry) string {
	if len(entries) == 0 {
		return "🕰 No history yet."
	}
	var sb strings.Builder
	sb.WriteString("🕰 *Planned Days*\n\n")
	for _, e := range entries {
		names := make([]string, 0, 4)
		for _, dish := range e.MealPlan.Dishes() {
			names = append(names, escapeMarkdown(dish.Name))
		}
		sb.WriteString(fmt.Sprintf("`%s` *%s* (%d kcal)\n%s\n",
			e.Date.Format("2006-01-02"), e.MealPlan.Day, e.MealPlan.TotalCalories, strings.Join(names, ", ")))
	}
	return sb.String()
}
