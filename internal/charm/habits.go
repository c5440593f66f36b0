// ABOUTME: Habit CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// CreateHabit stores a new habit in the KV store.
func (c *Client) CreateHabit(h *models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name is required")
	}

	key := HabitPrefix + h.ID.String()
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(key, data)
}

// GetHabit retrieves a habit by ID or ID prefix.
func (c *Client) GetHabit(idOrPrefix string) (*models.Habit, error) {
	data, err := c.getByIDPrefix(HabitPrefix, idOrPrefix)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrHabitNotFound, idOrPrefix)
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}

	habit, err := unmarshalJSON[models.Habit](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal habit: %w", err)
	}

	return habit, nil
}

// ListHabits retrieves habits filtered by archived state, newest first.
func (c *Client) ListHabits(archived bool) ([]*models.Habit, error) {
	allData, err := c.listByPrefix(HabitPrefix)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []*models.Habit
	for _, data := range allData {
		h, err := unmarshalJSON[models.Habit](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if h.Archived != archived {
			continue
		}
		habits = append(habits, h)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

// UpdateHabit rewrites a habit's configuration. Archived habits cannot be
// edited.
func (c *Client) UpdateHabit(h *models.Habit) error {
	existing, err := c.GetHabit(h.ID.String())
	if err != nil {
		return err
	}
	if existing.Archived {
		return fmt.Errorf("archived habits cannot be edited")
	}

	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}

// ArchiveHabit marks a habit archived. Its logs are retained.
func (c *Client) ArchiveHabit(idOrPrefix string) error {
	h, err := c.GetHabit(idOrPrefix)
	if err != nil {
		return err
	}
	if h.Archived {
		return fmt.Errorf("habit already archived: %s", idOrPrefix)
	}

	h.Archived = true
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}

// DeleteHabit removes a habit and all its logs.
func (c *Client) DeleteHabit(idOrPrefix string) error {
	h, err := c.GetHabit(idOrPrefix)
	if err != nil {
		return err
	}

	logKeys, err := c.keysByPrefix(logPrefixFor(h.ID))
	if err != nil {
		return fmt.Errorf("list habit logs: %w", err)
	}
	for _, key := range logKeys {
		if err := c.delete(string(key)); err != nil {
			return fmt.Errorf("delete log: %w", err)
		}
	}

	return c.delete(HabitPrefix + h.ID.String())
}

// IncrementCopyCount bumps the denormalized copy counter on a habit.
func (c *Client) IncrementCopyCount(id uuid.UUID) error {
	h, err := c.GetHabit(id.String())
	if err != nil {
		return err
	}

	h.CopyCount++
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}
