// ABOUTME: Monthly calendar heat map with 0-4 intensity levels and weekly rollups.
// ABOUTME: Sessions on the same day accumulate into one bucket.
package analytics

import (
	"sort"
	"time"
)

const summaryWeeks = 4

// CalendarSession is one session's contribution to the calendar.
type CalendarSession struct {
	Date            time.Time
	DurationMinutes int
	SetCount        int
	Volume          float64
	BodyParts       []string
	Exercises       []string
}

// CalendarDay is the accumulated training on one calendar day.
type CalendarDay struct {
	Date            time.Time `json:"date"`
	Sessions        int       `json:"sessions"`
	Volume          float64   `json:"volume"`
	DurationMinutes int       `json:"duration_minutes"`
	SetCount        int       `json:"set_count"`
	BodyParts       []string  `json:"body_parts"`
	ExerciseCount   int       `json:"exercise_count"`
	Level           int       `json:"level"`
}

// WeekSummary rolls up one Sunday-anchored week.
type WeekSummary struct {
	WeekStart time.Time `json:"week_start"`
	Sessions  int       `json:"sessions"`
	Sets      int       `json:"sets"`
	Volume    float64   `json:"volume"`
}

// CalendarView is a month of day buckets plus the trailing weekly summaries.
type CalendarView struct {
	Month     string        `json:"month"`
	Days      []CalendarDay `json:"days"`
	MaxVolume float64       `json:"max_volume"`
	Weeks     []WeekSummary `json:"weeks"`
}

// IntensityLevel quantizes volume relative to maxVolume into 0-4.
func IntensityLevel(volume, maxVolume float64) int {
	if maxVolume < 1 {
		maxVolume = 1
	}
	ratio := volume / maxVolume
	switch {
	case ratio >= 0.8:
		return 4
	case ratio >= 0.6:
		return 3
	case ratio >= 0.4:
		return 2
	case ratio >= 0.2:
		return 1
	default:
		return 0
	}
}

// ComputeCalendar buckets sessions falling in month by day and rates each
// day's volume against the month's busiest day. Weekly summaries use every
// supplied session, so callers may pass trailing context before the month.
func ComputeCalendar(sessions []CalendarSession, month time.Time) CalendarView {
	start, end := MonthStart(month), MonthEnd(month)
	view := CalendarView{
		Month:     start.Format(monthLayout),
		Days:      []CalendarDay{},
		MaxVolume: 1,
		Weeks:     []WeekSummary{},
	}

	type dayAcc struct {
		day       CalendarDay
		bodyParts map[string]bool
		exercises map[string]bool
	}
	days := make(map[time.Time]*dayAcc)
	for _, s := range sessions {
		d := Day(s.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		acc, ok := days[d]
		if !ok {
			acc = &dayAcc{
				day:       CalendarDay{Date: d},
				bodyParts: make(map[string]bool),
				exercises: make(map[string]bool),
			}
			days[d] = acc
		}
		acc.day.Sessions++
		acc.day.Volume += s.Volume
		acc.day.DurationMinutes += s.DurationMinutes
		acc.day.SetCount += s.SetCount
		for _, bp := range s.BodyParts {
			acc.bodyParts[bp] = true
		}
		for _, ex := range s.Exercises {
			acc.exercises[ex] = true
		}
	}

	for _, acc := range days {
		if acc.day.Volume > view.MaxVolume {
			view.MaxVolume = acc.day.Volume
		}
	}
	for _, acc := range days {
		day := acc.day
		day.BodyParts = sortedKeys(acc.bodyParts)
		day.ExerciseCount = len(acc.exercises)
		day.Level = IntensityLevel(day.Volume, view.MaxVolume)
		view.Days = append(view.Days, day)
	}
	sort.Slice(view.Days, func(i, j int) bool { return view.Days[i].Date.Before(view.Days[j].Date) })

	view.Weeks = weeklySummaries(sessions)
	return view
}

// weeklySummaries keeps the most recent weeks with sessions, oldest first.
// Sessions counts distinct training days.
func weeklySummaries(sessions []CalendarSession) []WeekSummary {
	byWeek := make(map[time.Time]*WeekSummary)
	dates := make(map[time.Time]map[time.Time]bool)
	for _, s := range sessions {
		ws := WeekStart(s.Date)
		sum, ok := byWeek[ws]
		if !ok {
			sum = &WeekSummary{WeekStart: ws}
			byWeek[ws] = sum
			dates[ws] = make(map[time.Time]bool)
		}
		dates[ws][Day(s.Date)] = true
		sum.Sets += s.SetCount
		sum.Volume += s.Volume
	}

	out := make([]WeekSummary, 0, len(byWeek))
	for ws, sum := range byWeek {
		sum.Sessions = len(dates[ws])
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	if len(out) > summaryWeeks {
		out = out[len(out)-summaryWeeks:]
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
