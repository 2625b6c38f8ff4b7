// ABOUTME: BodyWeightLog model and weight unit conversion.
// ABOUTME: Duplicate dates are allowed in storage and resolved at read time.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeightUnit is the unit a weight was recorded in.
type WeightUnit string

const (
	UnitKg WeightUnit = "kg"
	UnitLb WeightUnit = "lb"
)

const kgPerLb = 0.45359237

// ParseWeightUnit accepts kg/kgs/lb/lbs in any case.
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kg", "kgs":
		return UnitKg, nil
	case "lb", "lbs":
		return UnitLb, nil
	default:
		return "", fmt.Errorf("invalid weight unit: %s", s)
	}
}

// ToKg converts a value in unit u to kilograms.
// Unknown units are treated as kilograms.
func (u WeightUnit) ToKg(v float64) float64 {
	if u == UnitLb {
		return v * kgPerLb
	}
	return v
}

// Convert converts a value in unit u to unit to.
func (u WeightUnit) Convert(v float64, to WeightUnit) float64 {
	kg := u.ToKg(v)
	if to == UnitLb {
		return kg / kgPerLb
	}
	return kg
}

// BodyWeightLog is a body weight entry for a calendar day.
type BodyWeightLog struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	UserID    string     `json:"user_id" yaml:"user_id"`
	Date      time.Time  `json:"date" yaml:"date"`
	Weight    float64    `json:"weight" yaml:"weight"`
	Unit      WeightUnit `json:"unit" yaml:"unit"`
	Notes     *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// NewBodyWeightLog creates a log entry for userID on the given day.
func NewBodyWeightLog(userID string, date time.Time, weight float64, unit WeightUnit) *BodyWeightLog {
	return &BodyWeightLog{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      TruncateDay(date),
		Weight:    weight,
		Unit:      unit,
		CreatedAt: time.Now(),
	}
}

// WithNotes sets notes on the entry.
func (b *BodyWeightLog) WithNotes(notes string) *BodyWeightLog {
	b.Notes = &notes
	return b
}

// WithCreatedAt overrides the creation timestamp.
func (b *BodyWeightLog) WithCreatedAt(t time.Time) *BodyWeightLog {
	b.CreatedAt = t
	return b
}
