package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GenerationMetric records metadata for a single meal plan generation.
type GenerationMetric struct {
	GenerationID  string
	Cuisine       string
	DietType      string
	Days          int
	TotalCalories int
	FallbackPicks int
	Latency       time.Duration
	Source        string // cli, api or telegram
	Timestamp     time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	source := m.Source
	if source == "" {
		source = "unknown"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_metrics
			(generation_id, cuisine, diet_type, day_count, total_calories, fallback_picks, latency_ms, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.GenerationID, m.Cuisine, m.DietType, m.Days, m.TotalCalories, m.FallbackPicks,
		m.Latency.Milliseconds(), source, ts.UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation metric: %w", err)
	}
	return nil
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date          string
	Generations   int
	DaysPlanned   int
	FallbackPicks int
	AvgLatencyMS  int64
}

// DailyUsage retrieves usage for the last N days, newest day first.
func (s *Store) DailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Unix()
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', created_at, 'unixepoch') AS day,
		       COUNT(*),
		       SUM(day_count),
		       SUM(fallback_picks),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM generation_metrics
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Generations, &u.DaysPlanned, &u.FallbackPicks, &u.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_metrics WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up generation metrics: %w", err)
	}
	return res.RowsAffected()
}
