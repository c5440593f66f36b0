// ABOUTME: Habit log operations for SQLite storage.
// ABOUTME: Append, period sums, distinct period keys, and bulk fetch.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
)

// AppendLog stores a new habit log. Logs are append-only and never updated.
func (d *DB) AppendLog(l *models.HabitLog) error {
	query := `
		INSERT INTO habit_logs (id, habit_id, timestamp, daily_key, weekly_key, monthly_key, value, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		l.ID.String(),
		l.HabitID.String(),
		l.Timestamp.Format(time.RFC3339),
		l.DailyKey,
		l.WeeklyKey,
		l.MonthlyKey,
		l.Value,
		l.Target,
	)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// SumValuesForPeriod returns the signed sum of log values for one habit in
// one period. Returns 0 when no logs match.
func (d *DB) SumValuesForPeriod(habitID uuid.UUID, frequency models.Frequency, periodKey int) (int, error) {
	col, err := keyColumn(frequency)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(value), 0) FROM habit_logs WHERE habit_id = ? AND %s = ?", col)

	var sum int
	if err := d.db.QueryRow(query, habitID.String(), periodKey).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum values for period: %w", err)
	}
	return sum, nil
}

// DistinctPeriodKeysDescending returns the distinct period keys a habit has
// logs in, most recent first. Empty slice when the habit has no logs.
func (d *DB) DistinctPeriodKeysDescending(habitID uuid.UUID, frequency models.Frequency) ([]int, error) {
	col, err := keyColumn(frequency)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM habit_logs WHERE habit_id = ? ORDER BY %s DESC", col, col)

	rows, err := d.db.Query(query, habitID.String())
	if err != nil {
		return nil, fmt.Errorf("distinct period keys: %w", err)
	}
	defer rows.Close()

	var keys []int
	for rows.Next() {
		var k int
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan period key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// BulkFetchLogs returns all logs for the given habit set in a single query.
// This is the batch evaluation path's one read.
func (d *DB) BulkFetchLogs(habitIDs []uuid.UUID) ([]*models.HabitLog, error) {
	if len(habitIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(habitIDs)), ",")
	query := fmt.Sprintf(`
		SELECT id, habit_id, timestamp, daily_key, weekly_key, monthly_key, value, target
		FROM habit_logs
		WHERE habit_id IN (%s)`, placeholders)

	args := make([]interface{}, len(habitIDs))
	for i, id := range habitIDs {
		args[i] = id.String()
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("bulk fetch logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// ListLogs returns a habit's logs in a time range, newest first.
func (d *DB) ListLogs(habitID uuid.UUID, from, to time.Time) ([]*models.HabitLog, error) {
	query := `
		SELECT id, habit_id, timestamp, daily_key, weekly_key, monthly_key, value, target
		FROM habit_logs
		WHERE habit_id = ? AND timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp DESC
	`
	rows, err := d.db.Query(query, habitID.String(),
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func keyColumn(frequency models.Frequency) (string, error) {
	switch frequency {
	case models.FrequencyDaily:
		return "daily_key", nil
	case models.FrequencyWeekly:
		return "weekly_key", nil
	case models.FrequencyMonthly:
		return "monthly_key", nil
	default:
		return "", models.ErrInvalidFrequency
	}
}

func scanLogs(rows *sql.Rows) ([]*models.HabitLog, error) {
	var logs []*models.HabitLog
	for rows.Next() {
		var l models.HabitLog
		var idStr, habitIDStr, timestamp string

		err := rows.Scan(&idStr, &habitIDStr, &timestamp, &l.DailyKey, &l.WeeklyKey,
			&l.MonthlyKey, &l.Value, &l.Target)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}

		l.ID, _ = uuid.Parse(idStr)
		l.HabitID, _ = uuid.Parse(habitIDStr)
		l.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
