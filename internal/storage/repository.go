// ABOUTME: Repository interface for training log storage.
// ABOUTME: Defines the contract shared by the SQLite and Badger backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// ErrNotFound is returned when an ID, prefix, or name matches nothing.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for training data.
// It satisfies analytics.Store, so either backend can feed the analytics service.
// An empty userID in a list call matches every user.
type Repository interface {
	// Catalog operations
	CreateBodyPart(bp *models.BodyPart) error
	GetBodyPart(idOrName string) (*models.BodyPart, error)
	ListBodyParts() ([]*models.BodyPart, error)
	CreateExercise(e *models.Exercise) error
	GetExercise(idOrName string) (*models.Exercise, error)
	ListExercises(category *models.Category) ([]*models.Exercise, error)

	// Session operations
	CreateSession(s *models.WorkoutSession) error
	GetSession(idOrPrefix string) (*models.WorkoutSession, error)
	GetSessionWithSets(idOrPrefix string) (*models.WorkoutSession, error)
	ListSessions(ctx context.Context, userID string, r models.DateRange) ([]*models.WorkoutSession, error)
	DeleteSession(idOrPrefix string) error

	// Set operations
	AddSet(s *models.WorkoutSet) error
	ListSets(sessionID uuid.UUID) ([]*models.WorkoutSet, error)
	DeleteSet(idOrPrefix string) error
	ListSetDetails(ctx context.Context, userID string, f models.SetFilter) ([]*models.SetDetail, error)

	// Body weight operations
	LogBodyWeight(b *models.BodyWeightLog) error
	ListBodyWeights(ctx context.Context, userID string, r models.DateRange) ([]*models.BodyWeightLog, error)
	DeleteBodyWeight(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// isFullUUID reports whether s is a complete UUID rather than a prefix.
func isFullUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func ambiguous(prefix string) error {
	return fmt.Errorf("ambiguous prefix %s: matches multiple records", prefix)
}
