// ABOUTME: Strength progression: Epley 1RM estimates, top sets, and PR detection.
// ABOUTME: Sessions are grouped by calendar day and evaluated in chronological order.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// PRKind names the category a personal record was set in.
type PRKind string

const (
	PROneRepMax       PRKind = "one_rm_estimate"
	PRBestTopSet      PRKind = "best_top_set"
	PRFastestMile     PRKind = "fastest_mile"
	PRFastest5K       PRKind = "fastest_5k"
	PRLongestDistance PRKind = "longest_distance"
)

// PRRecord is the standing best for one exercise in one category.
type PRRecord struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	AchievedAt time.Time `json:"achieved_at"`
	Kind       PRKind    `json:"kind"`
	Value      float64   `json:"value"`
}

// StrengthSet is one weight-and-reps set, weight already in kilograms.
type StrengthSet struct {
	Date   time.Time
	Weight float64
	Reps   int
}

// StrengthSession is one day's evaluated strength work for an exercise.
type StrengthSession struct {
	Date               time.Time `json:"date"`
	TopSetWeight       float64   `json:"top_set_weight"`
	TopSetReps         int       `json:"top_set_reps"`
	TopSetVolume       float64   `json:"top_set_volume"`
	EstimatedOneRepMax float64   `json:"estimated_one_rep_max"`
	IsPR               bool      `json:"is_pr"`
	PRKinds            []PRKind  `json:"pr_kinds,omitempty"`
}

// StrengthProgress is the full history and standing records for an exercise.
type StrengthProgress struct {
	ExerciseID       uuid.UUID         `json:"exercise_id"`
	Sessions         []StrengthSession `json:"sessions"`
	BestOneRepMax    float64           `json:"best_one_rep_max"`
	BestTopSetVolume float64           `json:"best_top_set_volume"`
	ProgressPercent  float64           `json:"progress_percent"`
	Records          []PRRecord        `json:"records"`
}

// EstimateOneRepMax applies the Epley formula: weight * (1 + reps/30).
func EstimateOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// ProgressPercent returns the percent change from first to latest, or 0 when
// first is not positive.
func ProgressPercent(first, latest float64) float64 {
	if first <= 0 {
		return 0
	}
	return roundTo((latest-first)/first*100, 1)
}

// ComputeStrengthProgress evaluates every session for one exercise.
// Sets with missing or zero weight or reps are skipped. A session is a PR
// when its 1RM or top-set volume strictly beats every earlier session.
func ComputeStrengthProgress(exerciseID uuid.UUID, sets []StrengthSet) StrengthProgress {
	progress := StrengthProgress{
		ExerciseID: exerciseID,
		Sessions:   []StrengthSession{},
		Records:    []PRRecord{},
	}

	byDay := make(map[time.Time]*StrengthSession)
	var order []time.Time
	for _, s := range sets {
		if s.Weight <= 0 || s.Reps <= 0 {
			continue
		}
		day := Day(s.Date)
		sess, ok := byDay[day]
		if !ok {
			sess = &StrengthSession{Date: day}
			byDay[day] = sess
			order = append(order, day)
		}

		volume := s.Weight * float64(s.Reps)
		if volume > sess.TopSetVolume {
			sess.TopSetWeight = s.Weight
			sess.TopSetReps = s.Reps
			sess.TopSetVolume = volume
		}
		if est := roundTo(EstimateOneRepMax(s.Weight, s.Reps), 1); est > sess.EstimatedOneRepMax {
			sess.EstimatedOneRepMax = est
		}
	}
	if len(order) == 0 {
		return progress
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	var best1RM, bestVolume PRRecord
	for _, day := range order {
		sess := *byDay[day]
		if sess.EstimatedOneRepMax > progress.BestOneRepMax {
			progress.BestOneRepMax = sess.EstimatedOneRepMax
			best1RM = PRRecord{ExerciseID: exerciseID, AchievedAt: day, Kind: PROneRepMax, Value: sess.EstimatedOneRepMax}
			sess.PRKinds = append(sess.PRKinds, PROneRepMax)
		}
		if sess.TopSetVolume > progress.BestTopSetVolume {
			progress.BestTopSetVolume = sess.TopSetVolume
			bestVolume = PRRecord{ExerciseID: exerciseID, AchievedAt: day, Kind: PRBestTopSet, Value: sess.TopSetVolume}
			sess.PRKinds = append(sess.PRKinds, PRBestTopSet)
		}
		sess.IsPR = len(sess.PRKinds) > 0
		progress.Sessions = append(progress.Sessions, sess)
	}

	first := progress.Sessions[0].EstimatedOneRepMax
	latest := progress.Sessions[len(progress.Sessions)-1].EstimatedOneRepMax
	progress.ProgressPercent = ProgressPercent(first, latest)
	progress.Records = append(progress.Records, best1RM, bestVolume)
	return progress
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
