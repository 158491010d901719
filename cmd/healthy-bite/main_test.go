package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"healthy-bite-selector/internal/api"
	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/foodlist"
	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/storage"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.NewApp(storage.NewMemoryStore(), planner.NewRand(3), nil, nil, app.Options{})
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return a
}

func runCmd(t *testing.T, a *app.App, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), a, cfg, args, &out)
	return out.String(), err
}

func TestFoodCommands(t *testing.T) {
	a := newTestApp(t)
	cfg := &config.Config{}

	if out, err := runCmd(t, a, cfg, "add", "Greek", "yogurt"); err != nil || !strings.Contains(out, "Added Greek yogurt") {
		t.Fatalf("Expected add confirmation, got %q (%v)", out, err)
	}
	if _, err := runCmd(t, a, cfg, "add", "greek", "YOGURT"); !errors.Is(err, foodlist.ErrDuplicateItem) {
		t.Errorf("Expected duplicate error, got %v", err)
	}
	if out, _ := runCmd(t, a, cfg, "list"); !strings.Contains(out, "1. Greek yogurt") {
		t.Errorf("Expected numbered list, got %q", out)
	}
	if out, _ := runCmd(t, a, cfg, "pick"); !strings.Contains(out, "Picked: Greek yogurt") {
		t.Errorf("Expected pick, got %q", out)
	}
	if out, _ := runCmd(t, a, cfg, "pick"); out != "Picked: Greek yogurt\n" {
		t.Errorf("Expected a plain pick with no repeat marker, got %q", out)
	}
	if _, err := runCmd(t, a, cfg, "remove", "x"); err == nil {
		t.Error("Expected error for non-numeric index")
	}
	if out, err := runCmd(t, a, cfg, "remove", "1"); err != nil || !strings.Contains(out, "Removed Greek yogurt") {
		t.Errorf("Expected removal, got %q (%v)", out, err)
	}
	if out, _ := runCmd(t, a, cfg, "list"); !strings.Contains(out, "empty") {
		t.Errorf("Expected empty list, got %q", out)
	}
}

func TestPlanWorkflow(t *testing.T) {
	a := newTestApp(t)
	cfg := &config.Config{}

	if _, err := runCmd(t, a, cfg, "shopping"); !errors.Is(err, app.ErrNoPlan) {
		t.Errorf("Expected ErrNoPlan before any plan, got %v", err)
	}
	if _, err := runCmd(t, a, cfg, "plan", "-days", "4"); !errors.Is(err, planner.ErrInvalidPreferences) {
		t.Errorf("Expected invalid preferences, got %v", err)
	}

	out, err := runCmd(t, a, cfg, "plan", "-diet", "veg", "-days", "2", "-cuisine", "indian", "-calories", "1800")
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	for _, want := range []string{"Meal plan: indian, veg, 1800 kcal target", "Monday", "Tuesday", "Shopping list:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in plan output:\n%s", want, out)
		}
	}

	out, err = runCmd(t, a, cfg, "favorites", "add", "-day", "2", "-slot", "dinner")
	if err != nil || !strings.Contains(out, "Saved") {
		t.Fatalf("Expected saved favorite, got %q (%v)", out, err)
	}
	if _, err := runCmd(t, a, cfg, "favorites", "add", "-day", "3"); !errors.Is(err, app.ErrDayOutOfRange) {
		t.Errorf("Expected day out of range, got %v", err)
	}
	if out, _ := runCmd(t, a, cfg, "favorites"); !strings.Contains(out, "dinner") {
		t.Errorf("Expected favorite in list, got %q", out)
	}
	if out, _ := runCmd(t, a, cfg, "favorites", "remove", "missing"); !strings.Contains(out, "No favorite") {
		t.Errorf("Expected no-op removal, got %q", out)
	}

	if out, _ := runCmd(t, a, cfg, "history", "-all"); strings.Count(out, "  snack:") != 2 {
		t.Errorf("Expected two planned days in history, got:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if _, err := runCmd(t, a, cfg, "export", "-o", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a spreadsheet at %s", path)
	}
}

func TestTokenCommand(t *testing.T) {
	a := newTestApp(t)

	if _, err := runCmd(t, a, &config.Config{}, "token"); err == nil {
		t.Error("Expected error without API_JWT_SECRET")
	}

	cfg := &config.Config{APIJWTSecret: "cli-secret"}
	out, err := runCmd(t, a, cfg, "token", "-subject", "alice")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	sub, err := api.ValidateToken("cli-secret", strings.TrimSpace(out))
	if err != nil || sub != "alice" {
		t.Errorf("Expected a valid token for alice, got %q (%v)", sub, err)
	}
}

func TestUnknownCommand(t *testing.T) {
	a := newTestApp(t)
	if _, err := runCmd(t, a, &config.Config{}, "bake"); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error, got %v", err)
	}
	if _, err := runCmd(t, a, &config.Config{}); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error for no args, got %v", err)
	}
}
