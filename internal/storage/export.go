// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats for any Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for training data.
type ExportData struct {
	Version     string                   `json:"version" yaml:"version"`
	ExportedAt  time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool        string                   `json:"tool" yaml:"tool"`
	BodyParts   []*models.BodyPart       `json:"body_parts" yaml:"body_parts"`
	Exercises   []*models.Exercise       `json:"exercises" yaml:"exercises"`
	Sessions    []*models.WorkoutSession `json:"sessions" yaml:"sessions"`
	BodyWeights []*models.BodyWeightLog  `json:"body_weights" yaml:"body_weights"`
}

// collectAll reads every record from r, with sets attached to their sessions.
func collectAll(r Repository) (*ExportData, error) {
	ctx := context.Background()

	parts, err := r.ListBodyParts()
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}

	exercises, err := r.ListExercises(nil)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	sessions, err := r.ListSessions(ctx, "", models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	// Populate session sets
	for _, s := range sessions {
		sets, err := r.ListSets(s.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		for _, set := range sets {
			s.Sets = append(s.Sets, *set)
		}
	}

	weights, err := r.ListBodyWeights(ctx, "", models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("list body weights: %w", err)
	}

	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now(),
		Tool:        "ndl",
		BodyParts:   parts,
		Exercises:   exercises,
		Sessions:    sessions,
		BodyWeights: weights,
	}, nil
}

// importAll writes every record in data to r, catalog first so references resolve.
func importAll(r Repository, data *ExportData) error {
	for _, bp := range data.BodyParts {
		if err := r.CreateBodyPart(bp); err != nil {
			return fmt.Errorf("import body part: %w", err)
		}
	}

	for _, e := range data.Exercises {
		if err := r.CreateExercise(e); err != nil {
			return fmt.Errorf("import exercise: %w", err)
		}
	}

	// Import sessions and their sets
	for _, s := range data.Sessions {
		sets := s.Sets
		s.Sets = nil
		if err := r.CreateSession(s); err != nil {
			return fmt.Errorf("import session: %w", err)
		}
		for i := range sets {
			sets[i].SessionID = s.ID
			if err := r.AddSet(&sets[i]); err != nil {
				return fmt.Errorf("import set: %w", err)
			}
		}
		s.Sets = sets
	}

	for _, b := range data.BodyWeights {
		if err := r.LogBodyWeight(b); err != nil {
			return fmt.Errorf("import body weight: %w", err)
		}
	}

	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectAll(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return importAll(d, data)
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with names in place of catalog IDs.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	names := exerciseNames(data.Exercises)
	partNames := make(map[string]string, len(data.BodyParts))
	for _, bp := range data.BodyParts {
		partNames[bp.ID.String()] = bp.Name
	}

	yamlData := struct {
		Version     string                      `yaml:"version"`
		ExportedAt  string                      `yaml:"exported_at"`
		Tool        string                      `yaml:"tool"`
		Exercises   []yamlExercise              `yaml:"exercises"`
		Sessions    []yamlSession               `yaml:"sessions"`
		BodyWeights map[string][]yamlBodyWeight `yaml:"body_weights"`
	}{
		Version:     data.Version,
		ExportedAt:  data.ExportedAt.Format(time.RFC3339),
		Tool:        data.Tool,
		Exercises:   make([]yamlExercise, 0, len(data.Exercises)),
		Sessions:    make([]yamlSession, 0, len(data.Sessions)),
		BodyWeights: make(map[string][]yamlBodyWeight),
	}

	for _, e := range data.Exercises {
		ye := yamlExercise{Name: e.Name, Category: string(e.Category)}
		if e.PrimaryBodyPartID != nil {
			ye.BodyPart = partNames[e.PrimaryBodyPartID.String()]
		}
		yamlData.Exercises = append(yamlData.Exercises, ye)
	}

	for _, s := range data.Sessions {
		ys := yamlSession{
			ID:     s.ID.String()[:8],
			User:   s.UserID,
			Date:   s.Date.Format(models.DateLayout),
			Effort: deref(s.PerceivedExertion),
		}
		ys.DurationMinutes = deref(s.DurationMinutes)
		if s.Notes != nil {
			ys.Notes = *s.Notes
		}
		for _, set := range s.Sets {
			ys.Sets = append(ys.Sets, yamlSet{
				Exercise:        names[set.ExerciseID.String()],
				Weight:          deref(set.Weight),
				Unit:            string(set.Unit),
				Reps:            deref(set.Reps),
				DistanceMeters:  deref(set.DistanceMeters),
				DurationSeconds: deref(set.DurationSeconds),
			})
		}
		yamlData.Sessions = append(yamlData.Sessions, ys)
	}

	// Group body weights by user
	for _, b := range data.BodyWeights {
		yb := yamlBodyWeight{
			Date:   b.Date.Format(models.DateLayout),
			Weight: b.Weight,
			Unit:   string(b.Unit),
		}
		if b.Notes != nil {
			yb.Notes = *b.Notes
		}
		yamlData.BodyWeights[b.UserID] = append(yamlData.BodyWeights[b.UserID], yb)
	}

	return yaml.Marshal(yamlData)
}

type yamlExercise struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	BodyPart string `yaml:"body_part,omitempty"`
}

type yamlSession struct {
	ID              string    `yaml:"id"`
	User            string    `yaml:"user"`
	Date            string    `yaml:"date"`
	DurationMinutes int       `yaml:"duration_minutes,omitempty"`
	Effort          int       `yaml:"effort,omitempty"`
	Notes           string    `yaml:"notes,omitempty"`
	Sets            []yamlSet `yaml:"sets,omitempty"`
}

type yamlSet struct {
	Exercise        string  `yaml:"exercise"`
	Weight          float64 `yaml:"weight,omitempty"`
	Unit            string  `yaml:"unit,omitempty"`
	Reps            int     `yaml:"reps,omitempty"`
	DistanceMeters  float64 `yaml:"distance_meters,omitempty"`
	DurationSeconds float64 `yaml:"duration_seconds,omitempty"`
}

type yamlBodyWeight struct {
	Date   string  `yaml:"date"`
	Weight float64 `yaml:"weight"`
	Unit   string  `yaml:"unit"`
	Notes  string  `yaml:"notes,omitempty"`
}

// ExportMarkdown exports a user's sessions and body weights as Markdown.
// An empty userID includes every user; since limits output to that day onward.
func ExportMarkdown(r Repository, userID string, since *time.Time) (string, error) {
	ctx := context.Background()
	var rng models.DateRange
	if since != nil {
		day := models.TruncateDay(*since)
		rng.From = &day
	}

	sessions, err := r.ListSessions(ctx, userID, rng)
	if err != nil {
		return "", err
	}
	exercises, err := r.ListExercises(nil)
	if err != nil {
		return "", err
	}
	names := exerciseNames(exercises)

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Training Log - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(sessions) > 0 {
		sb.WriteString("## Sessions\n\n")
		sb.WriteString("| Date | User | Duration | Effort | Sets | Exercises |\n")
		sb.WriteString("|------|------|----------|--------|------|-----------|\n")
		for _, s := range sessions {
			sets, err := r.ListSets(s.ID)
			if err != nil {
				return "", err
			}
			duration := ""
			if s.DurationMinutes != nil {
				duration = fmt.Sprintf("%d min", *s.DurationMinutes)
			}
			effort := ""
			if s.PerceivedExertion != nil {
				effort = fmt.Sprintf("%d/10", *s.PerceivedExertion)
			}
			var seen []string
			for _, set := range sets {
				name := names[set.ExerciseID.String()]
				if !slices.Contains(seen, name) {
					seen = append(seen, name)
				}
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s |\n",
				s.Date.Format(models.DateLayout), s.UserID, duration, effort,
				len(sets), strings.Join(seen, ", ")))
		}
		sb.WriteString("\n")
	}

	weights, err := r.ListBodyWeights(ctx, userID, rng)
	if err != nil {
		return "", err
	}
	if len(weights) > 0 {
		sb.WriteString("## Body Weight\n\n")
		sb.WriteString("| Date | User | Weight | Notes |\n")
		sb.WriteString("|------|------|--------|-------|\n")
		for _, b := range weights {
			notes := ""
			if b.Notes != nil {
				notes = *b.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f %s | %s |\n",
				b.Date.Format(models.DateLayout), b.UserID, b.Weight, b.Unit, notes))
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&exportData)
}

func exerciseNames(exercises []*models.Exercise) map[string]string {
	names := make(map[string]string, len(exercises))
	for _, e := range exercises {
		names[e.ID.String()] = e.Name
	}
	return names
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
