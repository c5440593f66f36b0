// ABOUTME: Habit log operations for Charm KV storage.
// ABOUTME: Append, period sums, distinct keys, and bulk fetch via prefix scans.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// logPrefixFor returns the key prefix shared by one habit's logs.
func logPrefixFor(habitID uuid.UUID) string {
	return LogPrefix + habitID.String() + ":"
}

// AppendLog stores a new habit log. Logs are append-only and never updated.
func (c *Client) AppendLog(l *models.HabitLog) error {
	key := logPrefixFor(l.HabitID) + l.ID.String()
	data, err := marshalJSON(l)
	if err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}
	return c.set(key, data)
}

// logsFor returns all logs for one habit, unsorted.
func (c *Client) logsFor(habitID uuid.UUID) ([]*models.HabitLog, error) {
	allData, err := c.listByPrefix(logPrefixFor(habitID))
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	var logs []*models.HabitLog
	for _, data := range allData {
		l, err := unmarshalJSON[models.HabitLog](data)
		if err != nil {
			continue // Skip invalid entries
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// SumValuesForPeriod returns the signed sum of log values for one habit in
// one period. Returns 0 when no logs match.
func (c *Client) SumValuesForPeriod(habitID uuid.UUID, frequency models.Frequency, periodKey int) (int, error) {
	if _, err := models.ParseFrequency(string(frequency)); err != nil {
		return 0, err
	}

	logs, err := c.logsFor(habitID)
	if err != nil {
		return 0, err
	}

	sum := 0
	for _, l := range logs {
		if l.Key(frequency) == periodKey {
			sum += l.Value
		}
	}
	return sum, nil
}

// DistinctPeriodKeysDescending returns the distinct period keys a habit has
// logs in, most recent first.
func (c *Client) DistinctPeriodKeysDescending(habitID uuid.UUID, frequency models.Frequency) ([]int, error) {
	if _, err := models.ParseFrequency(string(frequency)); err != nil {
		return nil, err
	}

	logs, err := c.logsFor(habitID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	var keys []int
	for _, l := range logs {
		k := l.Key(frequency)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys, nil
}

// BulkFetchLogs returns all logs for the given habit set.
func (c *Client) BulkFetchLogs(habitIDs []uuid.UUID) ([]*models.HabitLog, error) {
	var all []*models.HabitLog
	for _, id := range habitIDs {
		logs, err := c.logsFor(id)
		if err != nil {
			return nil, err
		}
		all = append(all, logs...)
	}
	return all, nil
}

// ListLogs returns a habit's logs in a time range, newest first.
func (c *Client) ListLogs(habitID uuid.UUID, from, to time.Time) ([]*models.HabitLog, error) {
	logs, err := c.logsFor(habitID)
	if err != nil {
		return nil, err
	}

	var filtered []*models.HabitLog
	for _, l := range logs {
		if l.Timestamp.Before(from) || l.Timestamp.After(to) {
			continue
		}
		filtered = append(filtered, l)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})
	return filtered, nil
}

// GetAllData retrieves all habits and logs for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	active, err := c.ListHabits(false)
	if err != nil {
		return nil, err
	}
	archived, err := c.ListHabits(true)
	if err != nil {
		return nil, err
	}
	habits := append(active, archived...)

	ids := make([]uuid.UUID, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	logs, err := c.BulkFetchLogs(ids)
	if err != nil {
		return nil, err
	}

	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "habits",
		Habits:     habits,
		Logs:       logs,
	}, nil
}

// ImportData imports habits and logs from an export file. Period keys on
// imported logs are trusted as stored.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, h := range data.Habits {
		if err := c.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit %s: %w", h.ID, err)
		}
	}
	for _, l := range data.Logs {
		if err := c.AppendLog(l); err != nil {
			return fmt.Errorf("import log %s: %w", l.ID, err)
		}
	}
	return nil
}
