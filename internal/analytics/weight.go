// ABOUTME: Body weight dedupe (last write per day wins) and rolling-average trend.
// ABOUTME: Values are converted to a single display unit before averaging.
package analytics

import (
	"sort"
	"time"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// DefaultWeightWindow is the number of entries in the rolling average.
const DefaultWeightWindow = 7

// WeightPoint is one deduplicated day with its trailing average.
type WeightPoint struct {
	Date           time.Time `json:"date"`
	Weight         float64   `json:"weight"`
	RollingAverage float64   `json:"rolling_average"`
}

// WeightTrend is the deduplicated series in a single unit.
type WeightTrend struct {
	Unit   models.WeightUnit `json:"unit"`
	Window int               `json:"window"`
	Points []WeightPoint     `json:"points"`
	Latest *WeightPoint      `json:"latest,omitempty"`
	Change float64           `json:"change"`
}

// DedupeBodyWeights keeps one entry per calendar day: the one created last.
// Equal creation times fall back to input order. Output is oldest first.
func DedupeBodyWeights(logs []*models.BodyWeightLog) []*models.BodyWeightLog {
	byDay := make(map[time.Time]*models.BodyWeightLog, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		day := Day(l.Date)
		if cur, ok := byDay[day]; ok && l.CreatedAt.Before(cur.CreatedAt) {
			continue
		}
		byDay[day] = l
	}

	out := make([]*models.BodyWeightLog, 0, len(byDay))
	for _, l := range byDay {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return Day(out[i].Date).Before(Day(out[j].Date)) })
	return out
}

// ComputeWeightTrend dedupes logs and computes a trailing average over up to
// window entries. Entries with non-positive weight are skipped.
func ComputeWeightTrend(logs []*models.BodyWeightLog, unit models.WeightUnit, window int) WeightTrend {
	if window <= 0 {
		window = DefaultWeightWindow
	}
	if unit == "" {
		unit = models.UnitKg
	}
	trend := WeightTrend{Unit: unit, Window: window, Points: []WeightPoint{}}

	var values []float64
	for _, l := range DedupeBodyWeights(logs) {
		if l.Weight <= 0 {
			continue
		}
		v := l.Unit.Convert(l.Weight, unit)
		values = append(values, v)

		from := len(values) - window
		if from < 0 {
			from = 0
		}
		trend.Points = append(trend.Points, WeightPoint{
			Date:           Day(l.Date),
			Weight:         roundTo(v, 2),
			RollingAverage: roundTo(mean(values[from:]), 2),
		})
	}

	if n := len(trend.Points); n > 0 {
		latest := trend.Points[n-1]
		trend.Latest = &latest
		trend.Change = roundTo(values[n-1]-values[0], 2)
	}
	return trend
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
