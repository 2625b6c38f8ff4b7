// ABOUTME: Exercise catalog and BodyPart models.
// ABOUTME: Exercises carry a category and an optional primary body part.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Category classifies how an exercise is measured.
type Category string

const (
	CategoryStrength Category = "strength"
	CategoryCardio   Category = "cardio"
	CategoryMobility Category = "mobility"
)

// AllCategories returns all valid exercise categories.
var AllCategories = []Category{CategoryStrength, CategoryCardio, CategoryMobility}

// IsValidCategory checks if a string is a valid exercise category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == strings.ToLower(s) {
			return true
		}
	}
	return false
}

// BodyPart is a free-text muscle group name from the catalog.
type BodyPart struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// NewBodyPart creates a BodyPart with a generated ID.
func NewBodyPart(name string) *BodyPart {
	return &BodyPart{ID: uuid.New(), Name: strings.TrimSpace(name)}
}

// Exercise is a catalog entry that sets refer to.
type Exercise struct {
	ID                uuid.UUID  `json:"id" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	Category          Category   `json:"category" yaml:"category"`
	PrimaryBodyPartID *uuid.UUID `json:"primary_body_part_id,omitempty" yaml:"primary_body_part_id,omitempty"`
}

// NewExercise creates an Exercise with a generated ID.
func NewExercise(name string, category Category) *Exercise {
	return &Exercise{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Category: Category(strings.ToLower(string(category))),
	}
}

// WithBodyPart sets the primary body part.
func (e *Exercise) WithBodyPart(id uuid.UUID) *Exercise {
	e.PrimaryBodyPartID = &id
	return e
}
