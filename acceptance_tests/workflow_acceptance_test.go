package acceptance_tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/api"
	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/planner"
)

const foodPage = `<html><body>
<nav><ul><li>Home</li></ul></nav>
<ul><li>Kimchi</li><li>Greek yogurt</li><li>kimchi</li></ul>
</body></html>`

func bootstrap(t *testing.T, dataDir, backend string) (*app.App, func() error) {
	t.Helper()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("STORAGE_BACKEND", backend)
	t.Setenv("RANDOM_SEED", "2024")

	cfg, err := config.NewFromEnv()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	a, closeFn, err := app.Bootstrap(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to bootstrap %s backend: %v", backend, err)
	}
	return a, closeFn
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, foodPage)
	}))
	defer page.Close()

	for _, backend := range []string{config.BackendSQLite, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			ctx := app.WithSource(context.Background(), "acceptance")
			dataDir := t.TempDir()

			// 1. Build the food list from a web page and pick from it
			a, closeFn := bootstrap(t, dataDir, backend)

			summary, err := a.ImportFoods(ctx, page.URL)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if len(summary.Added) != 2 {
				t.Errorf("Expected 2 imported items, got %v", summary.Added)
			}
			if _, _, err := a.PickFood(ctx); err != nil {
				t.Fatalf("Pick failed: %v", err)
			}

			// 2. Generate a plan that may use those items anywhere
			res, err := a.GeneratePlan(ctx, planner.Preferences{
				Cuisine:          catalog.Indian,
				DietType:         planner.DietMixed,
				DayCount:         3,
				DayWiseOverride:  true,
				VegetarianDays:   []string{"tuesday"},
				IncludeUserItems: true,
				UserItemScope:    planner.ScopeAllCategories,
			})
			if err != nil {
				t.Fatalf("Generation failed: %v", err)
			}
			if len(res.Plan.Days) != 3 || len(res.History) != 3 {
				t.Fatalf("Expected 3 days and 3 history entries, got %d/%d", len(res.Plan.Days), len(res.History))
			}
			for _, dish := range res.Plan.Days[1].Dishes() {
				if dish.DietType != catalog.Veg {
					t.Errorf("Expected only veg dishes on Tuesday, got %+v", dish)
				}
			}
			if len(res.ShoppingList.Items) == 0 {
				t.Error("Expected a non-empty shopping list")
			}

			fav, err := a.FavoriteFromPlan(ctx, 0, catalog.Breakfast)
			if err != nil {
				t.Fatalf("Favorite failed: %v", err)
			}

			if err := closeFn(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			// 3. Reopen and verify everything persisted
			a, closeFn = bootstrap(t, dataDir, backend)
			defer closeFn()

			foods, _ := a.Foods(ctx)
			if len(foods) != 2 {
				t.Errorf("Expected 2 persisted foods, got %v", foods)
			}
			favs, _ := a.Favorites(ctx)
			if len(favs) != 1 || favs[0].ID != fav.ID {
				t.Errorf("Expected persisted favorite %s, got %+v", fav.ID, favs)
			}
			plan, err := a.CurrentPlan(ctx)
			if err != nil || len(plan.Days) != 3 {
				t.Errorf("Expected persisted 3 day plan, got %v (%v)", plan, err)
			}
			list, err := a.ShoppingList(ctx)
			if err != nil || len(list.Items) != len(res.ShoppingList.Items) {
				t.Errorf("Expected persisted shopping list, got %v (%v)", list, err)
			}
			all, _ := a.AllHistory(ctx)
			if len(all) != 3 {
				t.Errorf("Expected 3 history entries, got %d", len(all))
			}

			var buf bytes.Buffer
			if err := a.ExportCurrentPlan(ctx, &buf); err != nil || buf.Len() == 0 {
				t.Errorf("Expected spreadsheet export, got %d bytes (%v)", buf.Len(), err)
			}

			// 4. Metrics only exist on the sqlite backend
			usage, err := a.MetricsUsage(ctx, 1)
			if backend == config.BackendFile {
				if !errors.Is(err, app.ErrMetricsDisabled) {
					t.Errorf("Expected metrics to be disabled, got %v", err)
				}
				return
			}
			if err != nil || len(usage) != 1 || usage[0].Generations != 1 || usage[0].DaysPlanned != 3 {
				t.Errorf("Expected one recorded generation, got %+v (%v)", usage, err)
			}
		})
	}
}

func TestAPIWorkflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "acceptance-secret"

	a, closeFn := bootstrap(t, t.TempDir(), config.BackendSQLite)
	defer closeFn()

	router := api.NewRouter(a, api.RouterOptions{JWTSecret: secret})
	token, err := api.GenerateToken(secret, "acceptance", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	call := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	steps := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/api/foods", `{"name":"Hummus"}`, http.StatusCreated},
		{http.MethodPost, "/api/plans", `{"dietType":"nonveg","dayCount":5,"includeUserItems":true}`, http.StatusCreated},
		{http.MethodGet, "/api/plans/current", "", http.StatusOK},
		{http.MethodPost, "/api/favorites", `{"day":5,"category":"snack"}`, http.StatusCreated},
		{http.MethodGet, "/api/history?limit=2", "", http.StatusOK},
		{http.MethodGet, "/api/shopping-list", "", http.StatusOK},
		{http.MethodGet, "/api/plans/current/export", "", http.StatusOK},
		{http.MethodGet, "/api/metrics?days=1", "", http.StatusOK},
	}
	for _, s := range steps {
		if w := call(s.method, s.path, s.body); w.Code != s.want {
			t.Errorf("%s %s: expected %d, got %d: %s", s.method, s.path, s.want, w.Code, w.Body)
		}
	}
}
