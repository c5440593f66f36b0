// ABOUTME: HabitLog model for completion and undo events.
// ABOUTME: Carries redundant period keys stamped once at write time.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitLog is one completion (+1) or undo (-1) event for a habit.
//
// The three period keys are computed from Timestamp exactly once, when the
// log is written, and are never recomputed afterwards. Progress for a period
// is the sum of Value over logs whose matching key equals that period's key.
type HabitLog struct {
	ID         uuid.UUID
	HabitID    uuid.UUID
	Timestamp  time.Time
	DailyKey   int
	WeeklyKey  int
	MonthlyKey int
	Value      int
	// Target snapshots the habit's target at logging time for history; the
	// evaluators always read the habit's current target instead.
	Target int
}

// Key returns the stored period key matching the given frequency.
func (l *HabitLog) Key(frequency Frequency) int {
	switch frequency {
	case FrequencyWeekly:
		return l.WeeklyKey
	case FrequencyMonthly:
		return l.MonthlyKey
	default:
		return l.DailyKey
	}
}
