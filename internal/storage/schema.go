// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Catalog tables, sessions with cascading sets, and body weight logs.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS body_parts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		category TEXT NOT NULL CHECK (category IN ('strength', 'cardio', 'mobility')),
		primary_body_part_id TEXT,
		FOREIGN KEY (primary_body_part_id) REFERENCES body_parts(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		duration_minutes INTEGER,
		perceived_exertion INTEGER CHECK (perceived_exertion BETWEEN 1 AND 10),
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		weight REAL,
		unit TEXT NOT NULL DEFAULT 'kg',
		reps INTEGER,
		distance_meters REAL,
		duration_seconds REAL,
		pace_seconds_per_km REAL,
		estimated_one_rep_max REAL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS body_weight_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		weight REAL NOT NULL,
		unit TEXT NOT NULL DEFAULT 'kg',
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON workout_sessions(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_sets_session ON workout_sets(session_id);
	CREATE INDEX IF NOT EXISTS idx_sets_exercise ON workout_sets(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_body_weight_user_date ON body_weight_logs(user_id, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
