// ABOUTME: Data migration between training log storage backends.
// ABOUTME: Copies the catalog, sessions with their sets, and body weights from source to destination.

package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	BodyParts   int
	Exercises   int
	Sessions    int
	Sets        int
	BodyWeights int
}

// MigrateData copies all data from src to dst storage.
// Catalog entries go first so sets can reference their exercises.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	ctx := context.Background()
	summary := &MigrateSummary{}

	parts, err := src.ListBodyParts()
	if err != nil {
		return nil, fmt.Errorf("list source body parts: %w", err)
	}
	for _, bp := range parts {
		if err := dst.CreateBodyPart(bp); err != nil {
			return nil, fmt.Errorf("create body part %s: %w", bp.Name, err)
		}
		summary.BodyParts++
	}

	exercises, err := src.ListExercises(nil)
	if err != nil {
		return nil, fmt.Errorf("list source exercises: %w", err)
	}
	for _, e := range exercises {
		if err := dst.CreateExercise(e); err != nil {
			return nil, fmt.Errorf("create exercise %s: %w", e.Name, err)
		}
		summary.Exercises++
	}

	// Migrate all sessions with their sets
	sessions, err := src.ListSessions(ctx, "", models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("list source sessions: %w", err)
	}
	for _, s := range sessions {
		full, err := src.GetSessionWithSets(s.ID.String())
		if err != nil {
			return nil, fmt.Errorf("get session %s with sets: %w", s.ID, err)
		}

		// CreateSession only stores the session row; sets are added one by one.
		sets := full.Sets
		full.Sets = nil

		if err := dst.CreateSession(full); err != nil {
			return nil, fmt.Errorf("create session %s: %w", s.ID, err)
		}
		summary.Sessions++

		for i := range sets {
			sets[i].SessionID = full.ID
			if err := dst.AddSet(&sets[i]); err != nil {
				return nil, fmt.Errorf("add set %s: %w", sets[i].ID, err)
			}
			summary.Sets++
		}
	}

	weights, err := src.ListBodyWeights(ctx, "", models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("list source body weights: %w", err)
	}
	for _, b := range weights {
		if err := dst.LogBodyWeight(b); err != nil {
			return nil, fmt.Errorf("log body weight %s: %w", b.ID, err)
		}
		summary.BodyWeights++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
