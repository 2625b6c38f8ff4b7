// ABOUTME: Read models joining sets with session, exercise, and body part data.
// ABOUTME: These are what the analytics layer consumes from storage.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SetDetail is a set joined with its session date, exercise, and body part.
type SetDetail struct {
	SetID              uuid.UUID
	SessionID          uuid.UUID
	SessionDate        time.Time
	ExerciseID         uuid.UUID
	ExerciseName       string
	Category           Category
	BodyPart           string // Empty when the exercise has no primary body part
	Weight             *float64
	Unit               WeightUnit
	Reps               *int
	DistanceMeters     *float64
	DurationSeconds    *float64
	PaceSecondsPerKm   *float64
	EstimatedOneRepMax *float64
	CreatedAt          time.Time
}

// SetFilter narrows a set-detail query. Zero values mean no restriction.
type SetFilter struct {
	ExerciseID *uuid.UUID
	Category   *Category
	Range      DateRange
}

// DateRange bounds a query by calendar day, inclusive on both ends.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	if r.From != nil && day.Before(TruncateDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(TruncateDay(*r.To)) {
		return false
	}
	return true
}
