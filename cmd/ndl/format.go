// ABOUTME: Shared parsing and formatting helpers for CLI output.
// ABOUTME: Dates, pace, ID prefixes, and column padding.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

var faint = color.New(color.Faint)

// dayOrToday parses a --date flag, defaulting to the service's today.
func dayOrToday(s string) (time.Time, error) {
	if s == "" {
		return svc.Today(), nil
	}
	t, err := analytics.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// dateRange builds a range from optional --from/--to flags.
func dateRange(from, to string) (models.DateRange, error) {
	var r models.DateRange
	if from != "" {
		t, err := analytics.ParseDay(from)
		if err != nil {
			return r, fmt.Errorf("invalid --from date: %s (use YYYY-MM-DD)", from)
		}
		r.From = &t
	}
	if to != "" {
		t, err := analytics.ParseDay(to)
		if err != nil {
			return r, fmt.Errorf("invalid --to date: %s (use YYYY-MM-DD)", to)
		}
		r.To = &t
	}
	return r, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// formatPace renders seconds per km as m:ss/km.
func formatPace(secondsPerKm float64) string {
	if secondsPerKm <= 0 {
		return "-"
	}
	total := int(secondsPerKm + 0.5)
	return fmt.Sprintf("%d:%02d/km", total/60, total%60)
}

func formatDuration(minutes *int) string {
	if minutes == nil {
		return ""
	}
	return fmt.Sprintf("%d min", *minutes)
}

func formatEffort(rpe *int) string {
	if rpe == nil {
		return ""
	}
	return fmt.Sprintf("RPE %d", *rpe)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func padLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
