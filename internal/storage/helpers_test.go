// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB and log fixtures with stamped period keys.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/period"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLog(habitID uuid.UUID, ts time.Time, value int) *models.HabitLog {
	daily, weekly, monthly := period.Keys(ts)
	return &models.HabitLog{
		ID:         uuid.New(),
		HabitID:    habitID,
		Timestamp:  ts.UTC(),
		DailyKey:   daily,
		WeeklyKey:  weekly,
		MonthlyKey: monthly,
		Value:      value,
		Target:     1,
	}
}
