// ABOUTME: Cardio progression: pace bests over the mile and 5K, and longest distance.
// ABOUTME: Each effort carries every PR kind it achieved, not a single label.
package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	mileThresholdMeters  = 1600
	fiveKThresholdMeters = 5000
)

// CardioEffort is one distance-and-duration set.
type CardioEffort struct {
	Date             time.Time
	DistanceMeters   float64
	DurationSeconds  float64
	PaceSecondsPerKm *float64 // Device-reported pace; derived when nil
}

// CardioSession is one evaluated effort.
type CardioSession struct {
	Date             time.Time `json:"date"`
	DistanceKm       float64   `json:"distance_km"`
	DurationMinutes  float64   `json:"duration_minutes"`
	PaceSecondsPerKm float64   `json:"pace_seconds_per_km"`
	PRKinds          []PRKind  `json:"pr_kinds,omitempty"`
}

// IsPR reports whether the effort set any record.
func (c CardioSession) IsPR() bool {
	return len(c.PRKinds) > 0
}

// PrimaryPR picks a single display label: mile, then 5K, then longest distance.
func (c CardioSession) PrimaryPR() (PRKind, bool) {
	for _, kind := range []PRKind{PRFastestMile, PRFastest5K, PRLongestDistance} {
		for _, k := range c.PRKinds {
			if k == kind {
				return kind, true
			}
		}
	}
	return "", false
}

// CardioProgress is the full history and standing records for a cardio exercise.
type CardioProgress struct {
	ExerciseID        uuid.UUID       `json:"exercise_id"`
	Sessions          []CardioSession `json:"sessions"`
	FastestMilePace   float64         `json:"fastest_mile_pace,omitempty"`
	Fastest5KPace     float64         `json:"fastest_5k_pace,omitempty"`
	LongestDistanceKm float64         `json:"longest_distance_km"`
	Records           []PRRecord      `json:"records"`
}

// Pace returns seconds per kilometer, preferring a supplied pace.
// Returns 0 when neither a positive pace nor distance and duration are known.
func (e CardioEffort) Pace() float64 {
	if e.PaceSecondsPerKm != nil && *e.PaceSecondsPerKm > 0 {
		return *e.PaceSecondsPerKm
	}
	if e.DistanceMeters <= 0 || e.DurationSeconds <= 0 {
		return 0
	}
	return e.DurationSeconds / (e.DistanceMeters / 1000)
}

// ComputeCardioProgress evaluates efforts in chronological order against three
// independent running bests. Efforts without a positive distance are skipped.
func ComputeCardioProgress(exerciseID uuid.UUID, efforts []CardioEffort) CardioProgress {
	progress := CardioProgress{
		ExerciseID: exerciseID,
		Sessions:   []CardioSession{},
		Records:    []PRRecord{},
	}

	valid := make([]CardioEffort, 0, len(efforts))
	for _, e := range efforts {
		if e.DistanceMeters > 0 {
			valid = append(valid, e)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return Day(valid[i].Date).Before(Day(valid[j].Date)) })

	var mile, fiveK, longest *PRRecord
	for _, e := range valid {
		day := Day(e.Date)
		pace := e.Pace()
		sess := CardioSession{
			Date:             day,
			DistanceKm:       roundTo(e.DistanceMeters/1000, 2),
			DurationMinutes:  roundTo(e.DurationSeconds/60, 1),
			PaceSecondsPerKm: roundTo(pace, 1),
		}

		if pace > 0 && e.DistanceMeters >= mileThresholdMeters && (mile == nil || pace < mile.Value) {
			mile = &PRRecord{ExerciseID: exerciseID, AchievedAt: day, Kind: PRFastestMile, Value: pace}
			sess.PRKinds = append(sess.PRKinds, PRFastestMile)
		}
		if pace > 0 && e.DistanceMeters >= fiveKThresholdMeters && (fiveK == nil || pace < fiveK.Value) {
			fiveK = &PRRecord{ExerciseID: exerciseID, AchievedAt: day, Kind: PRFastest5K, Value: pace}
			sess.PRKinds = append(sess.PRKinds, PRFastest5K)
		}
		km := e.DistanceMeters / 1000
		if longest == nil || km > longest.Value {
			longest = &PRRecord{ExerciseID: exerciseID, AchievedAt: day, Kind: PRLongestDistance, Value: km}
			sess.PRKinds = append(sess.PRKinds, PRLongestDistance)
		}
		progress.Sessions = append(progress.Sessions, sess)
	}

	for _, rec := range []*PRRecord{mile, fiveK, longest} {
		if rec == nil {
			continue
		}
		r := *rec
		r.Value = roundTo(r.Value, 2)
		progress.Records = append(progress.Records, r)
		switch r.Kind {
		case PRFastestMile:
			progress.FastestMilePace = roundTo(rec.Value, 1)
		case PRFastest5K:
			progress.Fastest5KPace = roundTo(rec.Value, 1)
		case PRLongestDistance:
			progress.LongestDistanceKm = r.Value
		}
	}
	return progress
}
