// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for habits and habit_logs with period-key indexes.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		frequency TEXT NOT NULL,
		goal_type TEXT NOT NULL,
		target_value INTEGER,
		target_type TEXT NOT NULL DEFAULT 'ongoing',
		streak_target INTEGER,
		start_date DATETIME,
		end_date DATETIME,
		allowed_gaps INTEGER NOT NULL DEFAULT 1,
		archived INTEGER NOT NULL DEFAULT 0,
		copy_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS habit_logs (
		id TEXT PRIMARY KEY,
		habit_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		daily_key INTEGER NOT NULL,
		weekly_key INTEGER NOT NULL,
		monthly_key INTEGER NOT NULL,
		value INTEGER NOT NULL,
		target INTEGER NOT NULL,
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_habits_archived ON habits(archived);
	CREATE INDEX IF NOT EXISTS idx_logs_habit ON habit_logs(habit_id);
	CREATE INDEX IF NOT EXISTS idx_logs_habit_daily ON habit_logs(habit_id, daily_key DESC);
	CREATE INDEX IF NOT EXISTS idx_logs_habit_weekly ON habit_logs(habit_id, weekly_key DESC);
	CREATE INDEX IF NOT EXISTS idx_logs_habit_monthly ON habit_logs(habit_id, monthly_key DESC);
	CREATE INDEX IF NOT EXISTS idx_logs_habit_timestamp ON habit_logs(habit_id, timestamp DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
