// ABOUTME: Body part and exercise catalog operations for SQLite storage.
// ABOUTME: Catalog entries resolve by exact name (case-insensitive) or ID prefix.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// CreateBodyPart stores a new body part.
func (d *DB) CreateBodyPart(bp *models.BodyPart) (err error) {
	defer d.observe(metrics.OpCreateBodyPart, &err)()

	_, err = d.db.Exec(`INSERT INTO body_parts (id, name) VALUES (?, ?)`, bp.ID.String(), bp.Name)
	if err != nil {
		return fmt.Errorf("create body part: %w", err)
	}
	return nil
}

// GetBodyPart retrieves a body part by name or ID prefix.
func (d *DB) GetBodyPart(idOrName string) (*models.BodyPart, error) {
	var bp models.BodyPart
	var idStr string
	err := d.db.QueryRow(`SELECT id, name FROM body_parts WHERE name = ? COLLATE NOCASE`, idOrName).Scan(&idStr, &bp.Name)
	if errors.Is(err, sql.ErrNoRows) {
		id, rerr := d.resolveID("body_parts", idOrName)
		if rerr != nil {
			return nil, rerr
		}
		err = d.db.QueryRow(`SELECT id, name FROM body_parts WHERE id = ?`, id).Scan(&idStr, &bp.Name)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(idOrName)
		}
		return nil, fmt.Errorf("get body part: %w", err)
	}
	bp.ID, _ = uuid.Parse(idStr)
	return &bp, nil
}

// ListBodyParts retrieves all body parts sorted by name.
func (d *DB) ListBodyParts() (parts []*models.BodyPart, err error) {
	defer d.observe(metrics.OpListBodyParts, &err)()

	rows, err := d.db.Query(`SELECT id, name FROM body_parts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bp models.BodyPart
		var idStr string
		if err := rows.Scan(&idStr, &bp.Name); err != nil {
			return nil, fmt.Errorf("scan body part: %w", err)
		}
		bp.ID, _ = uuid.Parse(idStr)
		parts = append(parts, &bp)
	}
	return parts, rows.Err()
}

// CreateExercise stores a new exercise.
func (d *DB) CreateExercise(e *models.Exercise) (err error) {
	defer d.observe(metrics.OpCreateExercise, &err)()

	var bodyPartID *string
	if e.PrimaryBodyPartID != nil {
		s := e.PrimaryBodyPartID.String()
		bodyPartID = &s
	}
	_, err = d.db.Exec(`
		INSERT INTO exercises (id, name, category, primary_body_part_id)
		VALUES (?, ?, ?, ?)
	`, e.ID.String(), e.Name, string(e.Category), bodyPartID)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by name or ID prefix.
func (d *DB) GetExercise(idOrName string) (*models.Exercise, error) {
	const cols = `SELECT id, name, category, primary_body_part_id FROM exercises`

	e, err := d.scanExercise(d.db.QueryRow(cols+` WHERE name = ? COLLATE NOCASE`, idOrName))
	if errors.Is(err, ErrNotFound) {
		id, rerr := d.resolveID("exercises", idOrName)
		if rerr != nil {
			return nil, rerr
		}
		return d.scanExercise(d.db.QueryRow(cols+` WHERE id = ?`, id))
	}
	return e, err
}

// ListExercises retrieves exercises, optionally filtered by category, sorted by name.
func (d *DB) ListExercises(category *models.Category) (exercises []*models.Exercise, err error) {
	defer d.observe(metrics.OpListExercises, &err)()

	query := `SELECT id, name, category, primary_body_part_id FROM exercises`
	var args []interface{}
	if category != nil {
		query += ` WHERE category = ?`
		args = append(args, string(*category))
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := d.scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// scanExercise scans a single exercise from a row or rows cursor.
func (d *DB) scanExercise(row interface{ Scan(...any) error }) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, category string
	var bodyPartID sql.NullString

	if err := row.Scan(&idStr, &e.Name, &category, &bodyPartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.Category = models.Category(category)
	if bodyPartID.Valid {
		if id, err := uuid.Parse(bodyPartID.String); err == nil {
			e.PrimaryBodyPartID = &id
		}
	}
	return &e, nil
}
