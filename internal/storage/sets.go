// ABOUTME: Workout set operations for SQLite storage.
// ABOUTME: ListSetDetails joins sets with sessions, exercises, and body parts for analytics.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

const setColumns = `id, session_id, exercise_id, weight, unit, reps, distance_meters,
	duration_seconds, pace_seconds_per_km, estimated_one_rep_max, created_at`

// AddSet adds a set to an existing session.
func (d *DB) AddSet(s *models.WorkoutSet) (err error) {
	defer d.observe(metrics.OpAddSet, &err)()

	if s.Unit == "" {
		s.Unit = models.UnitKg
	}
	_, err = d.db.Exec(`
		INSERT INTO workout_sets (`+setColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(),
		s.SessionID.String(),
		s.ExerciseID.String(),
		s.Weight,
		string(s.Unit),
		s.Reps,
		s.DistanceMeters,
		s.DurationSeconds,
		s.PaceSecondsPerKm,
		s.EstimatedOneRepMax,
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add set: %w", err)
	}
	return nil
}

// ListSets retrieves all sets for a session in creation order.
func (d *DB) ListSets(sessionID uuid.UUID) (sets []*models.WorkoutSet, err error) {
	defer d.observe(metrics.OpListSets, &err)()

	rows, err := d.db.Query(`
		SELECT `+setColumns+`
		FROM workout_sets
		WHERE session_id = ?
		ORDER BY created_at ASC
	`, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// DeleteSet removes a set by ID or prefix.
func (d *DB) DeleteSet(idOrPrefix string) error {
	id, err := d.resolveID("workout_sets", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return d.deleteByID("workout_sets", id, idOrPrefix)
}

// ListSetDetails retrieves a user's sets joined with session date, exercise, and body part.
// Results are sorted by session date ascending, then set creation time.
func (d *DB) ListSetDetails(ctx context.Context, userID string, f models.SetFilter) (details []*models.SetDetail, err error) {
	defer d.observe(metrics.OpListSetDetails, &err)()

	query := `
		SELECT s.id, s.session_id, ws.date, s.exercise_id, e.name, e.category, COALESCE(bp.name, ''),
			s.weight, s.unit, s.reps, s.distance_meters, s.duration_seconds,
			s.pace_seconds_per_km, s.estimated_one_rep_max, s.created_at
		FROM workout_sets s
		JOIN workout_sessions ws ON ws.id = s.session_id
		JOIN exercises e ON e.id = s.exercise_id
		LEFT JOIN body_parts bp ON bp.id = e.primary_body_part_id
		WHERE 1 = 1`
	var args []interface{}
	if userID != "" {
		query += ` AND ws.user_id = ?`
		args = append(args, userID)
	}
	if f.ExerciseID != nil {
		query += ` AND s.exercise_id = ?`
		args = append(args, f.ExerciseID.String())
	}
	if f.Category != nil {
		query += ` AND e.category = ?`
		args = append(args, string(*f.Category))
	}
	query, args = appendDateRange(query, args, "ws.date", f.Range)
	query += ` ORDER BY ws.date ASC, s.created_at ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list set details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var det models.SetDetail
		var setID, sessionID, exerciseID, date, category, unit, createdAt string
		var weight, distance, duration, pace, oneRM sql.NullFloat64
		var reps sql.NullInt64

		if err := rows.Scan(&setID, &sessionID, &date, &exerciseID, &det.ExerciseName, &category, &det.BodyPart,
			&weight, &unit, &reps, &distance, &duration, &pace, &oneRM, &createdAt); err != nil {
			return nil, fmt.Errorf("scan set detail: %w", err)
		}

		det.SetID, _ = uuid.Parse(setID)
		det.SessionID, _ = uuid.Parse(sessionID)
		det.ExerciseID, _ = uuid.Parse(exerciseID)
		det.SessionDate = parseDay(date)
		det.Category = models.Category(category)
		det.Unit = models.WeightUnit(unit)
		det.CreatedAt = parseTimestamp(createdAt)
		det.Weight = nullFloat(weight)
		det.Reps = nullInt(reps)
		det.DistanceMeters = nullFloat(distance)
		det.DurationSeconds = nullFloat(duration)
		det.PaceSecondsPerKm = nullFloat(pace)
		det.EstimatedOneRepMax = nullFloat(oneRM)
		details = append(details, &det)
	}
	return details, rows.Err()
}

// scanSet scans a single set from a row or rows cursor.
func scanSet(row interface{ Scan(...any) error }) (*models.WorkoutSet, error) {
	var s models.WorkoutSet
	var idStr, sessionID, exerciseID, unit, createdAt string
	var weight, distance, duration, pace, oneRM sql.NullFloat64
	var reps sql.NullInt64

	err := row.Scan(&idStr, &sessionID, &exerciseID, &weight, &unit, &reps,
		&distance, &duration, &pace, &oneRM, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan set: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.SessionID, _ = uuid.Parse(sessionID)
	s.ExerciseID, _ = uuid.Parse(exerciseID)
	s.Unit = models.WeightUnit(unit)
	s.CreatedAt = parseTimestamp(createdAt)
	s.Weight = nullFloat(weight)
	s.Reps = nullInt(reps)
	s.DistanceMeters = nullFloat(distance)
	s.DurationSeconds = nullFloat(duration)
	s.PaceSecondsPerKm = nullFloat(pace)
	s.EstimatedOneRepMax = nullFloat(oneRM)
	return &s, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
