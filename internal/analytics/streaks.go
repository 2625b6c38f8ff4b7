// ABOUTME: Current and best training streaks over days and Sunday-anchored weeks.
// ABOUTME: A streak needs exact 1-day (or 7-day) gaps between unique keys.
package analytics

import (
	"fmt"
	"time"
)

// StreakStats summarizes consecutive training days and weeks.
type StreakStats struct {
	CurrentDaily  int `json:"current_daily"`
	BestDaily     int `json:"best_daily"`
	CurrentWeekly int `json:"current_weekly"`
	BestWeekly    int `json:"best_weekly"`
}

// ComputeStreaks derives streaks from workout dates relative to today.
// Dates may repeat and arrive in any order.
func ComputeStreaks(dates []time.Time, today time.Time) StreakStats {
	if len(dates) == 0 {
		return StreakStats{}
	}

	days := make([]time.Time, len(dates))
	weeks := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = Day(d)
		weeks[i] = WeekStart(d)
	}

	var stats StreakStats
	stats.CurrentDaily, stats.BestDaily = runLengths(uniqueDescending(days), 1, Day(today))
	stats.CurrentWeekly, stats.BestWeekly = runLengths(uniqueDescending(weeks), 7, WeekStart(today))
	return stats
}

// ComputeStreaksFromStrings parses YYYY-MM-DD dates and computes streaks.
// Malformed input is a validation error, never a zero result.
func ComputeStreaksFromStrings(dates []string, today time.Time) (StreakStats, error) {
	parsed := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := ParseDay(s)
		if err != nil {
			return StreakStats{}, fmt.Errorf("compute streaks: %w", err)
		}
		parsed = append(parsed, d)
	}
	return ComputeStreaks(parsed, today), nil
}

// runLengths walks unique keys sorted most recent first. The current run
// only counts when the newest key is within one step of anchor; a key dated
// after anchor still counts as current.
func runLengths(keys []time.Time, step int, anchor time.Time) (current, best int) {
	if len(keys) == 0 {
		return 0, 0
	}

	if DaysBetween(keys[0], anchor) <= step {
		current = 1
		for i := 1; i < len(keys); i++ {
			if DaysBetween(keys[i], keys[i-1]) != step {
				break
			}
			current++
		}
	}

	run := 1
	best = 1
	for i := 1; i < len(keys); i++ {
		if DaysBetween(keys[i], keys[i-1]) == step {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	if current > best {
		best = current
	}
	return current, best
}
