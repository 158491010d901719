package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/export"
	"healthy-bite-selector/internal/favorites"
	"healthy-bite-selector/internal/foodlist"
	"healthy-bite-selector/internal/history"
	"healthy-bite-selector/internal/importer"
	"healthy-bite-selector/internal/metrics"
	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/shopping"
	"healthy-bite-selector/internal/storage"
)

// CurrentPlanKey is where the most recently generated plan lives.
const CurrentPlanKey = "mealPlannerCurrentPlan"

var (
	ErrNoPlan          = errors.New("no meal plan generated yet")
	ErrDayOutOfRange   = errors.New("day not in current meal plan")
	ErrMetricsDisabled = errors.New("metrics are not enabled for this storage backend")
)

// MetricsStore is the subset of metrics.Store the app relies on.
type MetricsStore interface {
	Record(ctx context.Context, m metrics.GenerationMetric) error
	DailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}

// Options tunes generation behaviour.
type Options struct {
	GenerationDelay time.Duration
	UserItemScope   planner.UserItemScope
	DefaultCuisine  catalog.Cuisine
	DataDir         string
}

// Result is everything a single generation produces.
type Result struct {
	Plan         *planner.MealPlan      `json:"plan"`
	ShoppingList *shopping.ShoppingList `json:"shoppingList"`
	History      []history.HistoryEntry `json:"history"`
}

// App holds the application's dependencies.
type App struct {
	// mu serialises generations and every other read-modify-write on shared state.
	mu sync.Mutex

	rng       planner.Rand
	generator *planner.Generator
	foods     *foodlist.List
	favorites *favorites.Register
	history   *history.Log
	shopping  *shopping.Repository
	current   *storage.Document[planner.MealPlan]
	importer  *importer.Importer
	metrics   MetricsStore
	opts      Options
	logger    *zap.Logger
	clock     func() time.Time
}

// NewApp creates and initializes a new App instance. metricsStore may be nil.
func NewApp(kv storage.KV, rng planner.Rand, metricsStore MetricsStore, logger *zap.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gen, err := planner.NewDefaultGenerator(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	if opts.UserItemScope == "" {
		opts.UserItemScope = planner.ScopeSnackOnly
	}
	if opts.DefaultCuisine == "" {
		opts.DefaultCuisine = catalog.Healthy
	}

	return &App{
		rng:       rng,
		generator: gen,
		foods:     foodlist.NewList(kv, logger),
		favorites: favorites.NewRegister(kv, logger),
		history:   history.NewLog(kv, logger),
		shopping:  shopping.NewRepository(kv, logger),
		current:   storage.NewDocument[planner.MealPlan](kv, CurrentPlanKey, logger),
		importer:  importer.NewImporter(nil),
		metrics:   metricsStore,
		opts:      opts,
		logger:    logger,
		clock:     time.Now,
	}, nil
}

type sourceKey struct{}

// WithSource tags ctx with the surface that requested a generation (cli, api, telegram).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok {
		return s
	}
	return ""
}

// GeneratePlan builds a new meal plan and refreshes every derived list:
// history grows by one entry per day, the plan becomes the current one and
// the shopping list is replaced. A failed write leaves the later ones
// untouched, so the shopping list never runs ahead of the current plan.
func (a *App) GeneratePlan(ctx context.Context, prefs planner.Preferences) (*Result, error) {
	if prefs.Cuisine == "" {
		prefs.Cuisine = a.opts.DefaultCuisine
	}
	if prefs.UserItemScope == "" {
		prefs.UserItemScope = a.opts.UserItemScope
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if a.opts.GenerationDelay > 0 {
		timer := time.NewTimer(a.opts.GenerationDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	if prefs.IncludeUserItems && len(prefs.UserItems) == 0 {
		items, err := a.foods.Items(ctx)
		if err != nil {
			return nil, err
		}
		prefs.UserItems = items
	}

	plan, err := a.generator.Generate(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	list := &shopping.ShoppingList{Items: shopping.BuildList(plan.Days), CreatedAt: a.clock()}

	// History is append-only, so it goes first; the shopping list is only
	// replaced once the plan it belongs to is current.
	entries, err := a.history.Append(ctx, plan.Days)
	if err != nil {
		return nil, err
	}
	if err := a.current.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save current plan: %w", err)
	}
	if err := a.shopping.Save(ctx, list); err != nil {
		return nil, err
	}

	a.logger.Info("meal plan generated",
		zap.String("cuisine", string(plan.Cuisine)),
		zap.String("diet", string(plan.DietType)),
		zap.Int("days", len(plan.Days)),
		zap.Int("fallback_picks", plan.FallbackPicks),
	)

	if a.metrics != nil {
		var genID string
		if len(entries) > 0 {
			genID = entries[0].GenerationID
		}
		err := a.metrics.Record(ctx, metrics.GenerationMetric{
			GenerationID:  genID,
			Cuisine:       string(plan.Cuisine),
			DietType:      string(plan.DietType),
			Days:          len(plan.Days),
			TotalCalories: plan.TotalCalories(),
			FallbackPicks: plan.FallbackPicks,
			Latency:       time.Since(start),
			Source:        sourceFrom(ctx),
		})
		if err != nil {
			a.logger.Warn("failed to record generation metric", zap.Error(err))
		}
	}

	return &Result{Plan: plan, ShoppingList: list, History: entries}, nil
}

// CurrentPlan returns the most recently generated plan.
func (a *App) CurrentPlan(ctx context.Context) (*planner.MealPlan, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPlan(ctx)
}

func (a *App) currentPlan(ctx context.Context) (*planner.MealPlan, error) {
	plan, err := a.current.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current plan: %w", err)
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	return plan, nil
}

// ShoppingList returns the list built by the latest generation.
func (a *App) ShoppingList(ctx context.Context) (*shopping.ShoppingList, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	list, err := a.shopping.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNoPlan
	}
	return list, nil
}

// ExportCurrentPlan writes the current plan and shopping list as a spreadsheet.
func (a *App) ExportCurrentPlan(ctx context.Context, w io.Writer) error {
	a.mu.Lock()
	plan, err := a.currentPlan(ctx)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	list, err := a.shopping.Latest(ctx)
	a.mu.Unlock()
	if err != nil {
		return err
	}

	var items []string
	if list != nil {
		items = list.Items
	}
	return export.WritePlan(w, plan, items)
}

// RecentHistory returns the latest n history entries, newest first.
func (a *App) RecentHistory(ctx context.Context, n int) ([]history.HistoryEntry, error) {
	return a.history.Recent(ctx, n)
}

// AllHistory returns every history entry, newest first.
func (a *App) AllHistory(ctx context.Context) ([]history.HistoryEntry, error) {
	return a.history.All(ctx)
}

// MetricsUsage returns per-day generation totals.
func (a *App) MetricsUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	if a.metrics == nil {
		return nil, ErrMetricsDisabled
	}
	return a.metrics.DailyUsage(ctx, days)
}

// CleanupMetrics deletes metrics older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, olderThanDays int) (int64, error) {
	if a.metrics == nil {
		return 0, ErrMetricsDisabled
	}
	return a.metrics.Cleanup(ctx, olderThanDays)
}

// SysHealth reports process and data directory health.
func (a *App) SysHealth() metrics.SysHealth {
	return metrics.GetSysHealth(a.opts.DataDir)
}
