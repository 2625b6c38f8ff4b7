// ABOUTME: Calendar-day and Sunday-anchored week helpers shared by all aggregators.
// ABOUTME: Dates are compared by their written y/m/d with no timezone conversion.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

const monthLayout = "2006-01"

// Day returns midnight UTC of t's calendar day as written.
func Day(t time.Time) time.Time {
	return models.TruncateDay(t)
}

// ParseDay parses YYYY-MM-DD, or an RFC3339 timestamp whose date part is kept.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseMonth parses YYYY-MM into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDay renders a day key as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(models.DateLayout)
}

// WeekStart returns the Sunday that begins t's week.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DaysBetween returns the whole days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours()) / 24
}

// WeeksBetween returns the whole weeks between the week starts of a and b.
func WeeksBetween(a, b time.Time) int {
	return DaysBetween(WeekStart(a), WeekStart(b)) / 7
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// uniqueDescending collapses keys to unique values, most recent first.
func uniqueDescending(keys []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(keys))
	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}
