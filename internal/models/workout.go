// ABOUTME: WorkoutSession and WorkoutSet models for training logs.
// ABOUTME: A set is either strength (weight and reps) or cardio (distance and duration).
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for session and weight dates.
const DateLayout = "2006-01-02"

// ErrInvalidExertion is returned when perceived exertion is outside 1-10.
var ErrInvalidExertion = errors.New("perceived exertion must be between 1 and 10")

// WorkoutSession is one training session on a calendar day.
type WorkoutSession struct {
	ID                uuid.UUID    `json:"id" yaml:"id"`
	UserID            string       `json:"user_id" yaml:"user_id"`
	Date              time.Time    `json:"date" yaml:"date"`
	DurationMinutes   *int         `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	PerceivedExertion *int         `json:"perceived_exertion,omitempty" yaml:"perceived_exertion,omitempty"`
	Notes             *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt         time.Time    `json:"created_at" yaml:"created_at"`
	Sets              []WorkoutSet `json:"sets,omitempty" yaml:"sets,omitempty"` // Populated when fetching full session
}

// NewWorkoutSession creates a session for userID on the given day.
func NewWorkoutSession(userID string, date time.Time) *WorkoutSession {
	return &WorkoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      TruncateDay(date),
		CreatedAt: time.Now(),
	}
}

// WithDuration sets the duration in minutes.
func (s *WorkoutSession) WithDuration(minutes int) *WorkoutSession {
	s.DurationMinutes = &minutes
	return s
}

// WithExertion sets the perceived exertion (1-10).
func (s *WorkoutSession) WithExertion(rpe int) *WorkoutSession {
	s.PerceivedExertion = &rpe
	return s
}

// WithNotes sets notes on the session.
func (s *WorkoutSession) WithNotes(notes string) *WorkoutSession {
	s.Notes = &notes
	return s
}

// Validate checks field ranges before the session is stored.
func (s *WorkoutSession) Validate() error {
	if s.UserID == "" {
		return errors.New("session requires a user")
	}
	if s.PerceivedExertion != nil && (*s.PerceivedExertion < 1 || *s.PerceivedExertion > 10) {
		return fmt.Errorf("%w: got %d", ErrInvalidExertion, *s.PerceivedExertion)
	}
	if s.DurationMinutes != nil && *s.DurationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative: %d", *s.DurationMinutes)
	}
	return nil
}

// WorkoutSet is a single set performed within a session.
type WorkoutSet struct {
	ID                 uuid.UUID  `json:"id" yaml:"id"`
	SessionID          uuid.UUID  `json:"session_id" yaml:"session_id"`
	ExerciseID         uuid.UUID  `json:"exercise_id" yaml:"exercise_id"`
	Weight             *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Unit               WeightUnit `json:"unit" yaml:"unit"`
	Reps               *int       `json:"reps,omitempty" yaml:"reps,omitempty"`
	DistanceMeters     *float64   `json:"distance_meters,omitempty" yaml:"distance_meters,omitempty"`
	DurationSeconds    *float64   `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	PaceSecondsPerKm   *float64   `json:"pace_seconds_per_km,omitempty" yaml:"pace_seconds_per_km,omitempty"`
	EstimatedOneRepMax *float64   `json:"estimated_one_rep_max,omitempty" yaml:"estimated_one_rep_max,omitempty"`
	CreatedAt          time.Time  `json:"created_at" yaml:"created_at"`
}

// NewStrengthSet creates a weight-and-reps set.
func NewStrengthSet(sessionID, exerciseID uuid.UUID, weight float64, unit WeightUnit, reps int) *WorkoutSet {
	return &WorkoutSet{
		ID:         uuid.New(),
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		Weight:     &weight,
		Unit:       unit,
		Reps:       &reps,
		CreatedAt:  time.Now(),
	}
}

// NewCardioSet creates a distance-and-duration set.
func NewCardioSet(sessionID, exerciseID uuid.UUID, distanceMeters, durationSeconds float64) *WorkoutSet {
	return &WorkoutSet{
		ID:              uuid.New(),
		SessionID:       sessionID,
		ExerciseID:      exerciseID,
		Unit:            UnitKg,
		DistanceMeters:  &distanceMeters,
		DurationSeconds: &durationSeconds,
		CreatedAt:       time.Now(),
	}
}

// WithPace records a device-reported pace in seconds per kilometer.
func (s *WorkoutSet) WithPace(secondsPerKm float64) *WorkoutSet {
	s.PaceSecondsPerKm = &secondsPerKm
	return s
}

// IsStrength reports whether the set carries usable weight and reps.
func (s *WorkoutSet) IsStrength() bool {
	return s.Weight != nil && s.Reps != nil && *s.Weight > 0 && *s.Reps > 0
}

// IsCardio reports whether the set carries a positive distance.
func (s *WorkoutSet) IsCardio() bool {
	return s.DistanceMeters != nil && *s.DistanceMeters > 0
}

// TruncateDay drops the time of day, keeping the calendar day as written.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
