// ABOUTME: Tests for session, set, exercise, and body weight models.
// ABOUTME: Validates constructors, builder methods, and unit conversion.
package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWorkoutSession(t *testing.T) {
	day := time.Date(2024, 3, 9, 18, 30, 0, 0, time.Local)
	s := NewWorkoutSession("alice", day)

	if s.ID == uuid.Nil {
		t.Error("expected UUID to be set")
	}
	if s.UserID != "alice" {
		t.Errorf("UserID = %s, want alice", s.UserID)
	}
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !s.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", s.Date, want)
	}
	if s.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestWorkoutSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		session *WorkoutSession
		wantErr bool
	}{
		{"plain", NewWorkoutSession("u", time.Now()), false},
		{"exertion 1", NewWorkoutSession("u", time.Now()).WithExertion(1), false},
		{"exertion 10", NewWorkoutSession("u", time.Now()).WithExertion(10), false},
		{"exertion 0", NewWorkoutSession("u", time.Now()).WithExertion(0), true},
		{"exertion 11", NewWorkoutSession("u", time.Now()).WithExertion(11), true},
		{"negative duration", NewWorkoutSession("u", time.Now()).WithDuration(-5), true},
		{"no user", NewWorkoutSession("", time.Now()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	err := NewWorkoutSession("u", time.Now()).WithExertion(12).Validate()
	if !errors.Is(err, ErrInvalidExertion) {
		t.Errorf("expected ErrInvalidExertion, got %v", err)
	}
}

func TestNewStrengthSet(t *testing.T) {
	sessionID, exerciseID := uuid.New(), uuid.New()
	s := NewStrengthSet(sessionID, exerciseID, 100, UnitKg, 5)

	if s.SessionID != sessionID || s.ExerciseID != exerciseID {
		t.Error("expected IDs to match")
	}
	if !s.IsStrength() {
		t.Error("expected strength set")
	}
	if s.IsCardio() {
		t.Error("strength set should not be cardio")
	}

	zero := NewStrengthSet(sessionID, exerciseID, 0, UnitKg, 5)
	if zero.IsStrength() {
		t.Error("zero-weight set should not count as strength")
	}
}

func TestNewCardioSet(t *testing.T) {
	s := NewCardioSet(uuid.New(), uuid.New(), 5000, 1500).WithPace(300)

	if !s.IsCardio() {
		t.Error("expected cardio set")
	}
	if s.PaceSecondsPerKm == nil || *s.PaceSecondsPerKm != 300 {
		t.Error("expected pace to be 300")
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range []string{"strength", "Cardio", "MOBILITY"} {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false, want true", c)
		}
	}
	if IsValidCategory("yoga") {
		t.Error("IsValidCategory(yoga) = true, want false")
	}
}

func TestNewExercise(t *testing.T) {
	bp := NewBodyPart("  Chest ")
	e := NewExercise("Bench Press", "Strength").WithBodyPart(bp.ID)

	if bp.Name != "Chest" {
		t.Errorf("Name = %q, want Chest", bp.Name)
	}
	if e.Category != CategoryStrength {
		t.Errorf("Category = %s, want strength", e.Category)
	}
	if e.PrimaryBodyPartID == nil || *e.PrimaryBodyPartID != bp.ID {
		t.Error("expected body part to be set")
	}
}

func TestParseWeightUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    WeightUnit
		wantErr bool
	}{
		{"kg", UnitKg, false},
		{"", UnitKg, false},
		{"LBS", UnitLb, false},
		{"lb", UnitLb, false},
		{"stone", "", true},
	}
	for _, tt := range tests {
		got, err := ParseWeightUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeightUnit(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseWeightUnit(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWeightUnitConvert(t *testing.T) {
	if got := UnitLb.ToKg(100); math.Abs(got-45.359237) > 1e-9 {
		t.Errorf("ToKg(100 lb) = %f", got)
	}
	if got := UnitKg.Convert(45.359237, UnitLb); math.Abs(got-100) > 1e-9 {
		t.Errorf("Convert(45.359237 kg -> lb) = %f", got)
	}
	if got := UnitKg.Convert(80, UnitKg); got != 80 {
		t.Errorf("Convert(80 kg -> kg) = %f", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	from := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	r := DateRange{From: &from, To: &to}

	if !r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected first day to be included")
	}
	if !r.Contains(to) {
		t.Error("expected last day to be included")
	}
	if r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected day after range to be excluded")
	}
	if !(DateRange{}).Contains(time.Now()) {
		t.Error("empty range should contain everything")
	}
}
