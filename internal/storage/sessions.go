// ABOUTME: Workout session CRUD operations for SQLite storage.
// ABOUTME: Deleting a session cascades to its sets through the foreign key.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

const sessionColumns = `id, user_id, date, duration_minutes, perceived_exertion, notes, created_at`

// CreateSession stores a new workout session.
func (d *DB) CreateSession(s *models.WorkoutSession) (err error) {
	defer d.observe(metrics.OpCreateSession, &err)()

	if err = s.Validate(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO workout_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(),
		s.UserID,
		formatDay(s.Date),
		s.DurationMinutes,
		s.PerceivedExertion,
		s.Notes,
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID or ID prefix (without sets).
func (d *DB) GetSession(idOrPrefix string) (s *models.WorkoutSession, err error) {
	defer d.observe(metrics.OpGetSession, &err)()

	id, err := d.resolveID("workout_sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return d.scanSession(d.db.QueryRow(`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = ?`, id))
}

// GetSessionWithSets retrieves a session with all of its sets.
func (d *DB) GetSessionWithSets(idOrPrefix string) (*models.WorkoutSession, error) {
	s, err := d.GetSession(idOrPrefix)
	if err != nil {
		return nil, err
	}

	sets, err := d.ListSets(s.ID)
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
func (d *DB) ListSessions(ctx context.Context, userID string, r models.DateRange) (sessions []*models.WorkoutSession, err error) {
	defer d.observe(metrics.OpListSessions, &err)()

	query := `SELECT ` + sessionColumns + ` FROM workout_sessions WHERE 1 = 1`
	var args []interface{}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query, args = appendDateRange(query, args, "date", r)
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := d.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and all its sets (cascade delete).
func (d *DB) DeleteSession(idOrPrefix string) (err error) {
	defer d.observe(metrics.OpDeleteSession, &err)()

	id, err := d.resolveID("workout_sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return d.deleteByID("workout_sessions", id, idOrPrefix)
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func (d *DB) deleteByID(table, id, label string) error {
	result, err := d.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected == 0 {
		return notFound(label)
	}
	return nil
}

// scanSession scans a single session from a row or rows cursor.
func (d *DB) scanSession(row interface{ Scan(...any) error }) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	var idStr, date, createdAt string
	var duration, exertion sql.NullInt64
	var notes sql.NullString

	err := row.Scan(&idStr, &s.UserID, &date, &duration, &exertion, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.Date = parseDay(date)
	s.CreatedAt = parseTimestamp(createdAt)
	if duration.Valid {
		v := int(duration.Int64)
		s.DurationMinutes = &v
	}
	if exertion.Valid {
		v := int(exertion.Int64)
		s.PerceivedExertion = &v
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}

// appendDateRange adds inclusive day bounds on column to a WHERE clause.
func appendDateRange(query string, args []interface{}, column string, r models.DateRange) (string, []interface{}) {
	if r.From != nil {
		query += fmt.Sprintf(` AND %s >= ?`, column)
		args = append(args, formatDay(*r.From))
	}
	if r.To != nil {
		query += fmt.Sprintf(` AND %s <= ?`, column)
		args = append(args, formatDay(*r.To))
	}
	return query, args
}

func formatDay(t time.Time) string {
	return t.Format(models.DateLayout)
}

func parseDay(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		// tolerate rows written with a full timestamp
		if ts, terr := time.Parse(time.RFC3339, s); terr == nil {
			return models.TruncateDay(ts)
		}
	}
	return t
}

// timestampLayout is fixed width so created_at sorts correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
