// ABOUTME: Body weight log operations for SQLite storage.
// ABOUTME: Several entries per day are kept; readers decide which one wins.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// LogBodyWeight stores a body weight entry.
func (d *DB) LogBodyWeight(b *models.BodyWeightLog) (err error) {
	defer d.observe(metrics.OpLogBodyWeight, &err)()

	if b.UserID == "" {
		return fmt.Errorf("log body weight: entry requires a user")
	}
	if b.Weight <= 0 {
		return fmt.Errorf("log body weight: weight must be positive, got %v", b.Weight)
	}
	if b.Unit == "" {
		b.Unit = models.UnitKg
	}
	_, err = d.db.Exec(`
		INSERT INTO body_weight_logs (id, user_id, date, weight, unit, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID.String(),
		b.UserID,
		formatDay(b.Date),
		b.Weight,
		string(b.Unit),
		b.Notes,
		formatTimestamp(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("log body weight: %w", err)
	}
	return nil
}

// ListBodyWeights retrieves a user's entries in the date range, oldest first.
func (d *DB) ListBodyWeights(ctx context.Context, userID string, r models.DateRange) (logs []*models.BodyWeightLog, err error) {
	defer d.observe(metrics.OpListBodyWeights, &err)()

	query := `SELECT id, user_id, date, weight, unit, notes, created_at FROM body_weight_logs WHERE 1 = 1`
	var args []interface{}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query, args = appendDateRange(query, args, "date", r)
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list body weights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.BodyWeightLog
		var idStr, date, unit, createdAt string
		var notes sql.NullString
		if err := rows.Scan(&idStr, &b.UserID, &date, &b.Weight, &unit, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan body weight: %w", err)
		}
		b.ID, _ = uuid.Parse(idStr)
		b.Date = parseDay(date)
		b.Unit = models.WeightUnit(unit)
		b.CreatedAt = parseTimestamp(createdAt)
		if notes.Valid {
			b.Notes = &notes.String
		}
		logs = append(logs, &b)
	}
	return logs, rows.Err()
}

// DeleteBodyWeight removes a body weight entry by ID or prefix.
func (d *DB) DeleteBodyWeight(idOrPrefix string) (err error) {
	defer d.observe(metrics.OpDeleteBodyWeight, &err)()

	id, err := d.resolveID("body_weight_logs", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete body weight: %w", err)
	}
	return d.deleteByID("body_weight_logs", id, idOrPrefix)
}
