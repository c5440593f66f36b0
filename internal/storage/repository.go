// ABOUTME: Repository interface for habit data storage.
// ABOUTME: Defines the habit CRUD and log store contract shared by backends.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
)

// ErrHabitNotFound is returned when a habit id or prefix matches nothing.
var ErrHabitNotFound = errors.New("habit not found")

// Repository defines the storage interface for habit data.
// This interface allows swapping implementations (sqlite, charm, tests).
type Repository interface {
	// Habit operations
	CreateHabit(h *models.Habit) error
	GetHabit(idOrPrefix string) (*models.Habit, error)
	ListHabits(archived bool) ([]*models.Habit, error)
	UpdateHabit(h *models.Habit) error
	ArchiveHabit(idOrPrefix string) error
	DeleteHabit(idOrPrefix string) error
	IncrementCopyCount(id uuid.UUID) error

	// Log operations. Logs are append-only; period keys are stamped by the
	// caller at write time and stored as-is.
	AppendLog(l *models.HabitLog) error
	SumValuesForPeriod(habitID uuid.UUID, frequency models.Frequency, periodKey int) (int, error)
	DistinctPeriodKeysDescending(habitID uuid.UUID, frequency models.Frequency) ([]int, error)
	BulkFetchLogs(habitIDs []uuid.UUID) ([]*models.HabitLog, error)
	ListLogs(habitID uuid.UUID, from, to time.Time) ([]*models.HabitLog, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
