package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/storage"
)

// StorageKey is where the history log lives.
const StorageKey = "mealPlannerHistory"

// DefaultRecent is how many entries the history view shows.
const DefaultRecent = 5

// HistoryEntry records one generated day.
type HistoryEntry struct {
	GenerationID string          `json:"generationId"`
	Date         time.Time       `json:"date"`
	MealPlan     planner.DayPlan `json:"mealPlan"`
}

// Log is the persisted, append-only list of generated days.
type Log struct {
	mu    sync.Mutex
	col   *storage.Collection[HistoryEntry]
	clock func() time.Time
	newID func() string
}

func NewLog(kv storage.KV, logger *zap.Logger) *Log {
	return &Log{
		col:   storage.NewCollection[HistoryEntry](kv, StorageKey, logger),
		clock: time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the time source.
func (l *Log) WithClock(clock func() time.Time) *Log {
	l.clock = clock
	return l
}

// Append stores one entry per day. All entries of a call share the same
// timestamp and generation id.
func (l *Log) Append(ctx context.Context, days []planner.DayPlan) ([]HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.col.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	now := l.clock()
	id := l.newID()
	added := make([]HistoryEntry, 0, len(days))
	for _, d := range days {
		added = append(added, HistoryEntry{GenerationID: id, Date: now, MealPlan: d})
	}
	entries = append(entries, added...)

	if err := l.col.Save(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	return added, nil
}

// Recent returns the last n entries, newest first. n <= 0 means DefaultRecent.
func (l *Log) Recent(ctx context.Context, n int) ([]HistoryEntry, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// All returns every stored entry, newest first.
func (l *Log) All(ctx context.Context) ([]HistoryEntry, error) {
	l.mu.Lock()
	entries, err := l.col.Load(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	reversed := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed, nil
}
