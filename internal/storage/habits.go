// ABOUTME: Habit CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for habits.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
)

// CreateHabit stores a new habit in the database.
func (d *DB) CreateHabit(h *models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name is required")
	}

	query := `
		INSERT INTO habits (id, name, description, frequency, goal_type, target_value,
			target_type, streak_target, start_date, end_date, allowed_gaps, archived,
			copy_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		h.ID.String(),
		h.Name,
		h.Description,
		string(h.Frequency),
		string(h.GoalType),
		h.TargetValue,
		string(h.TargetType),
		h.StreakTarget,
		formatTimePtr(h.StartDate),
		formatTimePtr(h.EndDate),
		h.AllowedGaps,
		h.Archived,
		h.CopyCount,
		h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (d *DB) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := d.resolveHabitID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := habitSelect + ` WHERE id = ?`
	return d.scanHabit(d.db.QueryRow(query, id))
}

// ListHabits retrieves habits filtered by archived state, newest first.
func (d *DB) ListHabits(archived bool) ([]*models.Habit, error) {
	query := habitSelect + ` WHERE archived = ? ORDER BY created_at DESC`
	rows, err := d.db.Query(query, archived)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	return d.scanHabits(rows)
}

// UpdateHabit rewrites a habit's configuration. Archived habits cannot be
// edited.
func (d *DB) UpdateHabit(h *models.Habit) error {
	existing, err := d.GetHabit(h.ID.String())
	if err != nil {
		return err
	}
	if existing.Archived {
		return fmt.Errorf("archived habits cannot be edited")
	}

	query := `
		UPDATE habits
		SET name = ?, description = ?, frequency = ?, goal_type = ?, target_value = ?,
			target_type = ?, streak_target = ?, start_date = ?, end_date = ?, allowed_gaps = ?
		WHERE id = ?
	`
	_, err = d.db.Exec(query,
		h.Name,
		h.Description,
		string(h.Frequency),
		string(h.GoalType),
		h.TargetValue,
		string(h.TargetType),
		h.StreakTarget,
		formatTimePtr(h.StartDate),
		formatTimePtr(h.EndDate),
		h.AllowedGaps,
		h.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

// ArchiveHabit marks a habit archived. Its logs are retained.
func (d *DB) ArchiveHabit(idOrPrefix string) error {
	id, err := d.resolveHabitID(idOrPrefix)
	if err != nil {
		return err
	}

	result, err := d.db.Exec("UPDATE habits SET archived = 1 WHERE id = ? AND archived = 0", id)
	if err != nil {
		return fmt.Errorf("archive habit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive habit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit already archived: %s", idOrPrefix)
	}
	return nil
}

// DeleteHabit removes a habit and, via FK cascade, all its logs.
func (d *DB) DeleteHabit(idOrPrefix string) error {
	id, err := d.resolveHabitID(idOrPrefix)
	if err != nil {
		return err
	}

	result, err := d.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, idOrPrefix)
	}
	return nil
}

// IncrementCopyCount bumps the denormalized copy counter on a habit.
func (d *DB) IncrementCopyCount(id uuid.UUID) error {
	result, err := d.db.Exec("UPDATE habits SET copy_count = copy_count + 1 WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("increment copy count: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment copy count: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return nil
}

const habitSelect = `
	SELECT id, name, description, frequency, goal_type, target_value, target_type,
		streak_target, start_date, end_date, allowed_gaps, archived, copy_count, created_at
	FROM habits`

// resolveHabitID finds the full ID from a prefix.
func (d *DB) resolveHabitID(idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := `SELECT id FROM habits WHERE id LIKE ? || '%'`
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve habit ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan habit ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve habit ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrHabitNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches %d habits", idOrPrefix, len(matches))
	}
	return matches[0], nil
}

// scanHabit scans a single row into a Habit struct.
func (d *DB) scanHabit(row *sql.Row) (*models.Habit, error) {
	var h models.Habit
	var idStr, frequency, goalType, targetType, createdAt string
	var description sql.NullString
	var targetValue, streakTarget sql.NullInt64
	var startDate, endDate sql.NullString

	err := row.Scan(&idStr, &h.Name, &description, &frequency, &goalType, &targetValue,
		&targetType, &streakTarget, &startDate, &endDate, &h.AllowedGaps, &h.Archived,
		&h.CopyCount, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.ID, _ = uuid.Parse(idStr)
	h.Frequency = models.Frequency(frequency)
	h.GoalType = models.GoalType(goalType)
	h.TargetType = models.TargetType(targetType)
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if description.Valid {
		h.Description = &description.String
	}
	if targetValue.Valid {
		v := int(targetValue.Int64)
		h.TargetValue = &v
	}
	if streakTarget.Valid {
		v := int(streakTarget.Int64)
		h.StreakTarget = &v
	}
	if t := parseTimePtr(startDate); t != nil {
		h.StartDate = t
	}
	if t := parseTimePtr(endDate); t != nil {
		h.EndDate = t
	}

	return &h, nil
}

// scanHabits scans multiple rows into a slice of Habits.
func (d *DB) scanHabits(rows *sql.Rows) ([]*models.Habit, error) {
	var habits []*models.Habit

	for rows.Next() {
		var h models.Habit
		var idStr, frequency, goalType, targetType, createdAt string
		var description sql.NullString
		var targetValue, streakTarget sql.NullInt64
		var startDate, endDate sql.NullString

		err := rows.Scan(&idStr, &h.Name, &description, &frequency, &goalType, &targetValue,
			&targetType, &streakTarget, &startDate, &endDate, &h.AllowedGaps, &h.Archived,
			&h.CopyCount, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}

		h.ID, _ = uuid.Parse(idStr)
		h.Frequency = models.Frequency(frequency)
		h.GoalType = models.GoalType(goalType)
		h.TargetType = models.TargetType(targetType)
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if description.Valid {
			h.Description = &description.String
		}
		if targetValue.Valid {
			v := int(targetValue.Int64)
			h.TargetValue = &v
		}
		if streakTarget.Valid {
			v := int(streakTarget.Int64)
			h.StreakTarget = &v
		}
		if t := parseTimePtr(startDate); t != nil {
			h.StartDate = t
		}
		if t := parseTimePtr(endDate); t != nil {
			h.EndDate = t
		}

		habits = append(habits, &h)
	}

	return habits, rows.Err()
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
