// ABOUTME: Repository operations for the Badger key-value store.
// ABOUTME: Handles cascade deletes and reference checks manually since KV has no foreign keys.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// CreateBodyPart stores a new body part. Names are unique ignoring case.
func (k *KV) CreateBodyPart(bp *models.BodyPart) (err error) {
	defer k.observe(metrics.OpCreateBodyPart, &err)()

	if existing, _ := k.findBodyPartByName(bp.Name); existing != nil {
		return fmt.Errorf("create body part: name already exists: %s", bp.Name)
	}
	if err = k.insert(BodyPartPrefix+bp.ID.String(), bp); err != nil {
		return fmt.Errorf("create body part: %w", err)
	}
	return nil
}

// GetBodyPart retrieves a body part by name or ID prefix.
func (k *KV) GetBodyPart(idOrName string) (*models.BodyPart, error) {
	bp, err := k.findBodyPartByName(idOrName)
	if err != nil {
		return nil, err
	}
	if bp != nil {
		return bp, nil
	}
	return getRecord[models.BodyPart](k, BodyPartPrefix, idOrName)
}

func (k *KV) findBodyPartByName(name string) (*models.BodyPart, error) {
	parts, err := listRecords[models.BodyPart](k, BodyPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	for _, bp := range parts {
		if strings.EqualFold(bp.Name, name) {
			return bp, nil
		}
	}
	return nil, nil
}

// ListBodyParts retrieves all body parts sorted by name.
func (k *KV) ListBodyParts() (parts []*models.BodyPart, err error) {
	defer k.observe(metrics.OpListBodyParts, &err)()

	parts, err = listRecords[models.BodyPart](k, BodyPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	sort.Slice(parts, func(i, j int) bool {
		return strings.ToLower(parts[i].Name) < strings.ToLower(parts[j].Name)
	})
	return parts, nil
}

// CreateExercise stores a new exercise. Names are unique ignoring case.
func (k *KV) CreateExercise(e *models.Exercise) (err error) {
	defer k.observe(metrics.OpCreateExercise, &err)()

	if !models.IsValidCategory(string(e.Category)) {
		return fmt.Errorf("create exercise: invalid category: %s", e.Category)
	}
	if existing, _ := k.findExerciseByName(e.Name); existing != nil {
		return fmt.Errorf("create exercise: name already exists: %s", e.Name)
	}
	if e.PrimaryBodyPartID != nil {
		if _, err = k.getByIDPrefix(BodyPartPrefix, e.PrimaryBodyPartID.String()); err != nil {
			return fmt.Errorf("create exercise: body part: %w", err)
		}
	}
	if err = k.insert(ExercisePrefix+e.ID.String(), e); err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by name or ID prefix.
func (k *KV) GetExercise(idOrName string) (*models.Exercise, error) {
	e, err := k.findExerciseByName(idOrName)
	if err != nil {
		return nil, err
	}
	if e != nil {
		return e, nil
	}
	return getRecord[models.Exercise](k, ExercisePrefix, idOrName)
}

func (k *KV) findExerciseByName(name string) (*models.Exercise, error) {
	exercises, err := listRecords[models.Exercise](k, ExercisePrefix)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	for _, e := range exercises {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return nil, nil
}

// ListExercises retrieves exercises, optionally filtered by category, sorted by name.
func (k *KV) ListExercises(category *models.Category) (exercises []*models.Exercise, err error) {
	defer k.observe(metrics.OpListExercises, &err)()

	all, err := listRecords[models.Exercise](k, ExercisePrefix)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	for _, e := range all {
		if category != nil && e.Category != *category {
			continue
		}
		exercises = append(exercises, e)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return strings.ToLower(exercises[i].Name) < strings.ToLower(exercises[j].Name)
	})
	return exercises, nil
}

// CreateSession stores a new workout session (without its sets).
func (k *KV) CreateSession(s *models.WorkoutSession) (err error) {
	defer k.observe(metrics.OpCreateSession, &err)()

	if err = s.Validate(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	row := *s
	row.Sets = nil
	if err = k.insert(SessionPrefix+s.ID.String(), &row); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID or ID prefix (without sets).
func (k *KV) GetSession(idOrPrefix string) (s *models.WorkoutSession, err error) {
	defer k.observe(metrics.OpGetSession, &err)()

	s, err = getRecord[models.WorkoutSession](k, SessionPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// GetSessionWithSets retrieves a session with all of its sets.
func (k *KV) GetSessionWithSets(idOrPrefix string) (*models.WorkoutSession, error) {
	s, err := k.GetSession(idOrPrefix)
	if err != nil {
		return nil, err
	}

	sets, err := k.ListSets(s.ID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	for _, set := range sets {
		s.Sets = append(s.Sets, *set)
	}
	return s, nil
}

// ListSessions retrieves a user's sessions in the date range.
// Results are sorted by date descending (most recent first).
func (k *KV) ListSessions(ctx context.Context, userID string, r models.DateRange) (sessions []*models.WorkoutSession, err error) {
	defer k.observe(metrics.OpListSessions, &err)()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	all, err := listRecords[models.WorkoutSession](k, SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range all {
		if userID != "" && s.UserID != userID {
			continue
		}
		if !r.Contains(s.Date) {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.After(sessions[j].Date)
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// DeleteSession removes a session and all its sets (cascade delete).
func (k *KV) DeleteSession(idOrPrefix string) (err error) {
	defer k.observe(metrics.OpDeleteSession, &err)()

	key, err := k.resolveKey(SessionPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	id, err := uuid.Parse(strings.TrimPrefix(key, SessionPrefix))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	sets, err := k.ListSets(id)
	if err != nil {
		return fmt.Errorf("delete session sets: %w", err)
	}
	keys := make([]string, 0, len(sets)+1)
	for _, set := range sets {
		keys = append(keys, SetPrefix+set.ID.String())
	}
	keys = append(keys, key)
	return k.deleteKeys(keys...)
}

// AddSet adds a set to an existing session.
func (k *KV) AddSet(s *models.WorkoutSet) (err error) {
	defer k.observe(metrics.OpAddSet, &err)()

	if _, err = k.getByIDPrefix(SessionPrefix, s.SessionID.String()); err != nil {
		return fmt.Errorf("add set: session: %w", err)
	}
	if _, err = k.getByIDPrefix(ExercisePrefix, s.ExerciseID.String()); err != nil {
		return fmt.Errorf("add set: exercise: %w", err)
	}
	if s.Unit == "" {
		s.Unit = models.UnitKg
	}
	if err = k.insert(SetPrefix+s.ID.String(), s); err != nil {
		return fmt.Errorf("add set: %w", err)
	}
	return nil
}

// ListSets retrieves all sets for a session in creation order.
func (k *KV) ListSets(sessionID uuid.UUID) (sets []*models.WorkoutSet, err error) {
	defer k.observe(metrics.OpListSets, &err)()

	all, err := listRecords[models.WorkoutSet](k, SetPrefix)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	for _, s := range all {
		if s.SessionID == sessionID {
			sets = append(sets, s)
		}
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt.Before(sets[j].CreatedAt)
	})
	return sets, nil
}

// DeleteSet removes a set by ID or prefix.
func (k *KV) DeleteSet(idOrPrefix string) error {
	key, err := k.resolveKey(SetPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return k.deleteKeys(key)
}

// ListSetDetails retrieves a user's sets joined with session date, exercise, and body part.
// Results are sorted by session date ascending, then set creation time.
func (k *KV) ListSetDetails(ctx context.Context, userID string, f models.SetFilter) (details []*models.SetDetail, err error) {
	defer k.observe(metrics.OpListSetDetails, &err)()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	sessions, err := listRecords[models.WorkoutSession](k, SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	exercises, err := listRecords[models.Exercise](k, ExercisePrefix)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	parts, err := listRecords[models.BodyPart](k, BodyPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	sets, err := listRecords[models.WorkoutSet](k, SetPrefix)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	sessionByID := make(map[uuid.UUID]*models.WorkoutSession, len(sessions))
	for _, s := range sessions {
		if userID != "" && s.UserID != userID {
			continue
		}
		if !f.Range.Contains(s.Date) {
			continue
		}
		sessionByID[s.ID] = s
	}
	exerciseByID := make(map[uuid.UUID]*models.Exercise, len(exercises))
	for _, e := range exercises {
		exerciseByID[e.ID] = e
	}
	partNames := make(map[uuid.UUID]string, len(parts))
	for _, bp := range parts {
		partNames[bp.ID] = bp.Name
	}

	for _, s := range sets {
		session, ok := sessionByID[s.SessionID]
		if !ok {
			continue
		}
		e, ok := exerciseByID[s.ExerciseID]
		if !ok {
			continue
		}
		if f.ExerciseID != nil && e.ID != *f.ExerciseID {
			continue
		}
		if f.Category != nil && e.Category != *f.Category {
			continue
		}
		det := &models.SetDetail{
			SetID:              s.ID,
			SessionID:          session.ID,
			SessionDate:        session.Date,
			ExerciseID:         e.ID,
			ExerciseName:       e.Name,
			Category:           e.Category,
			Weight:             s.Weight,
			Unit:               s.Unit,
			Reps:               s.Reps,
			DistanceMeters:     s.DistanceMeters,
			DurationSeconds:    s.DurationSeconds,
			PaceSecondsPerKm:   s.PaceSecondsPerKm,
			EstimatedOneRepMax: s.EstimatedOneRepMax,
			CreatedAt:          s.CreatedAt,
		}
		if e.PrimaryBodyPartID != nil {
			det.BodyPart = partNames[*e.PrimaryBodyPartID]
		}
		details = append(details, det)
	}

	sort.SliceStable(details, func(i, j int) bool {
		if !details[i].SessionDate.Equal(details[j].SessionDate) {
			return details[i].SessionDate.Before(details[j].SessionDate)
		}
		return details[i].CreatedAt.Before(details[j].CreatedAt)
	})
	return details, nil
}

// LogBodyWeight stores a body weight entry.
func (k *KV) LogBodyWeight(b *models.BodyWeightLog) (err error) {
	defer k.observe(metrics.OpLogBodyWeight, &err)()

	if b.UserID == "" {
		return fmt.Errorf("log body weight: entry requires a user")
	}
	if b.Weight <= 0 {
		return fmt.Errorf("log body weight: weight must be positive, got %v", b.Weight)
	}
	if b.Unit == "" {
		b.Unit = models.UnitKg
	}
	if err = k.insert(BodyWeightPrefix+b.ID.String(), b); err != nil {
		return fmt.Errorf("log body weight: %w", err)
	}
	return nil
}

// ListBodyWeights retrieves a user's entries in the date range, oldest first.
func (k *KV) ListBodyWeights(ctx context.Context, userID string, r models.DateRange) (logs []*models.BodyWeightLog, err error) {
	defer k.observe(metrics.OpListBodyWeights, &err)()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	all, err := listRecords[models.BodyWeightLog](k, BodyWeightPrefix)
	if err != nil {
		return nil, fmt.Errorf("list body weights: %w", err)
	}
	for _, b := range all {
		if userID != "" && b.UserID != userID {
			continue
		}
		if !r.Contains(b.Date) {
			continue
		}
		logs = append(logs, b)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Date.Equal(logs[j].Date) {
			return logs[i].Date.Before(logs[j].Date)
		}
		return logs[i].CreatedAt.Before(logs[j].CreatedAt)
	})
	return logs, nil
}

// DeleteBodyWeight removes a body weight entry by ID or prefix.
func (k *KV) DeleteBodyWeight(idOrPrefix string) (err error) {
	defer k.observe(metrics.OpDeleteBodyWeight, &err)()

	key, err := k.resolveKey(BodyWeightPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete body weight: %w", err)
	}
	return k.deleteKeys(key)
}

// GetAllData retrieves all data for export.
func (k *KV) GetAllData() (*ExportData, error) {
	return collectAll(k)
}

// ImportData imports data from an export file.
func (k *KV) ImportData(data *ExportData) error {
	return importAll(k, data)
}

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*KV)(nil)
)
