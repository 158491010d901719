package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"healthy-bite-selector/internal/api"
	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/history"
	"healthy-bite-selector/internal/planner"
)

var errUsage = errors.New("usage")

// run executes a single CLI command against a and writes its output to out.
func run(ctx context.Context, a *app.App, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "add":
		item, err := a.AddFood(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s\n", item)

	case "remove":
		if len(rest) != 1 {
			return errUsage
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("item number must be an integer: %q", rest[0])
		}
		item, err := a.RemoveFood(ctx, n-1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s\n", item)

	case "list":
		items, err := a.Foods(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "Your food list is empty.")
		}
		for i, item := range items {
			fmt.Fprintf(out, "%d. %s\n", i+1, item)
		}

	case "pick":
		// Each CLI run starts without a selection, so there is no previous pick to compare.
		item, _, err := a.PickFood(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Picked: %s\n", item)

	case "import":
		if len(rest) != 1 {
			return errUsage
		}
		summary, err := a.ImportFoods(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d item(s), skipped %d.\n", len(summary.Added), summary.Skipped)

	case "plan":
		return runPlan(ctx, a, rest, out)

	case "shopping":
		list, err := a.ShoppingList(ctx)
		if err != nil {
			return err
		}
		printShopping(out, list.Items)

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(out)
		path := fs.String("o", "meal-plan.xlsx", "Output file")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		f, err := os.Create(*path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *path, err)
		}
		if err := a.ExportCurrentPlan(ctx, f); err != nil {
			f.Close()
			os.Remove(*path)
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", *path, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", *path)

	case "favorites":
		return runFavorites(ctx, a, rest, out)

	case "history":
		fs := flag.NewFlagSet("history", flag.ContinueOnError)
		fs.SetOutput(out)
		all := fs.Bool("all", false, "Show every planned day")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var entries []history.HistoryEntry
		var err error
		if *all {
			entries, err = a.AllHistory(ctx)
		} else {
			entries, err = a.RecentHistory(ctx, 0)
		}
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No history yet.")
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  ", e.Date.Format("2006-01-02 15:04"))
			printDay(out, e.MealPlan)
		}

	case "metrics-cleanup":
		fs := flag.NewFlagSet("metrics-cleanup", flag.ContinueOnError)
		fs.SetOutput(out)
		days := fs.Int("days", 30, "Keep records for the last N days")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		affected, err := a.CleanupMetrics(ctx, *days)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Fprintf(out, "Successfully removed %d old metric records.\n", affected)

	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		fs.SetOutput(out)
		subject := fs.String("subject", "cli", "Token subject")
		ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if cfg.APIJWTSecret == "" {
			return fmt.Errorf("API_JWT_SECRET environment variable not set")
		}
		token, err := api.GenerateToken(cfg.APIJWTSecret, *subject, *ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		return errUsage
	}
	return nil
}

func runPlan(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(out)
	diet := fs.String("diet", string(planner.DietMixed), "Diet: veg, nonveg or mixed")
	days := fs.Int("days", 7, "Number of days: 1, 2, 3, 5 or 7")
	calories := fs.Int("calories", 0, "Daily calorie target (informational)")
	cuisine := fs.String("cuisine", "", "Cuisine: healthy or indian (default from DEFAULT_CUISINE)")
	vegDays := fs.String("veg-days", "", "Comma separated weekdays forced vegetarian")
	override := fs.Bool("override", false, "Apply -veg-days")
	includeItems := fs.Bool("include-items", false, "Mix your food list into the plan")
	scope := fs.String("scope", "", "Where your items may appear: snack_only or all_categories")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prefs := planner.Preferences{
		Cuisine:          catalog.Cuisine(*cuisine),
		DietType:         planner.DietPreference(*diet),
		DayCount:         *days,
		CalorieTarget:    *calories,
		DayWiseOverride:  *override,
		IncludeUserItems: *includeItems,
		UserItemScope:    planner.UserItemScope(*scope),
	}
	for _, d := range strings.Split(*vegDays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			prefs.VegetarianDays = append(prefs.VegetarianDays, d)
		}
	}

	res, err := a.GeneratePlan(ctx, prefs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Meal plan: %s, %s", res.Plan.Cuisine, res.Plan.DietType)
	if res.Plan.CalorieTarget > 0 {
		fmt.Fprintf(out, ", %d kcal target", res.Plan.CalorieTarget)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	for _, d := range res.Plan.Days {
		printDay(out, d)
	}
	fmt.Fprintf(out, "Total: %d kcal\n\n", res.Plan.TotalCalories())
	printShopping(out, res.ShoppingList.Items)
	return nil
}

func runFavorites(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		favs, err := a.Favorites(ctx)
		if err != nil {
			return err
		}
		if len(favs) == 0 {
			fmt.Fprintln(out, "No favorites yet.")
		}
		for _, f := range favs {
			fmt.Fprintf(out, "%s  %s (%s, %d kcal)\n", f.ID, f.Name, f.Category, f.Calories)
		}
	case "add":
		fs := flag.NewFlagSet("favorites add", flag.ContinueOnError)
		fs.SetOutput(out)
		day := fs.Int("day", 1, "Day of the current plan (1-based)")
		slot := fs.String("slot", string(catalog.Lunch), "Meal slot: breakfast, lunch, dinner or snack")
		if err := fs.Parse(args); err != nil {
			return err
		}
		category, err := catalog.ParseCategory(*slot)
		if err != nil {
			return err
		}
		fav, err := a.FavoriteFromPlan(ctx, *day-1, category)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s (%s)\n", fav.Name, fav.ID)
	case "remove":
		id := strings.Join(args, " ")
		if id == "" {
			return errUsage
		}
		removed, err := a.RemoveFavorite(ctx, id)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintln(out, "Favorite removed.")
		} else {
			fmt.Fprintln(out, "No favorite with that id.")
		}
	default:
		return errUsage
	}
	return nil
}

func printDay(out io.Writer, d planner.DayPlan) {
	fmt.Fprintf(out, "%s (%d kcal)\n", d.Day, d.TotalCalories)
	for _, dish := range d.Dishes() {
		fmt.Fprintf(out, "  %-10s %s (%d kcal)\n", dish.Category+":", dish.Name, dish.Calories)
	}
}

func printShopping(out io.Writer, items []string) {
	fmt.Fprintln(out, "Shopping list:")
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
