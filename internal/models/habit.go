// ABOUTME: Habit model with frequency, goal, and streak configuration.
// ABOUTME: Defines Frequency, GoalType, and TargetType enums.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidFrequency is returned when a frequency string is not one of
// daily, weekly, or monthly.
var ErrInvalidFrequency = errors.New("invalid frequency")

// Frequency determines which calendar period governs a habit.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// AllFrequencies returns all valid frequencies.
var AllFrequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseFrequency normalizes and validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	default:
		return "", ErrInvalidFrequency
	}
}

// GoalType classifies how a habit's target is counted.
type GoalType string

const (
	// GoalBinary habits are done-or-not; their effective target is 1.
	GoalBinary GoalType = "binary"
	// GoalNumeric habits carry an explicit numeric target per period.
	GoalNumeric GoalType = "numeric"
)

// IsValidGoalType checks if a string is a valid goal type.
func IsValidGoalType(s string) bool {
	return s == string(GoalBinary) || s == string(GoalNumeric)
}

// TargetType classifies whether a habit has a natural termination condition.
type TargetType string

const (
	TargetOngoing TargetType = "ongoing"
	TargetStreak  TargetType = "streak"
	TargetEndDate TargetType = "endDate"
)

// IsValidTargetType checks if a string is a valid target type.
func IsValidTargetType(s string) bool {
	switch TargetType(s) {
	case TargetOngoing, TargetStreak, TargetEndDate:
		return true
	}
	return false
}

// Habit represents a recurring goal being tracked.
type Habit struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Frequency   Frequency
	GoalType    GoalType
	TargetValue *int
	TargetType  TargetType
	// StreakTarget marks the habit permanently achieved once the streak
	// reaches it.
	StreakTarget *int
	StartDate    *time.Time
	EndDate      *time.Time
	// AllowedGaps is how many consecutive missed days a daily streak
	// tolerates. Weekly and monthly streaks always use 0.
	AllowedGaps int
	Archived    bool
	// CopyCount is a denormalized counter maintained by the store when the
	// habit is copied; the evaluators never touch it.
	CopyCount int
	CreatedAt time.Time
}

// NewHabit creates a new Habit with generated UUID and current timestamp.
// StartDate defaults to creation time and AllowedGaps to 1, matching the
// behavior users expect from a freshly created daily habit.
func NewHabit(name string, frequency Frequency, goalType GoalType) *Habit {
	now := time.Now().UTC()
	start := now
	return &Habit{
		ID:          uuid.New(),
		Name:        name,
		Frequency:   frequency,
		GoalType:    goalType,
		TargetType:  TargetOngoing,
		StartDate:   &start,
		AllowedGaps: 1,
		CreatedAt:   now,
	}
}

// Target returns the effective target value, defaulting to 1 when unset.
func (h *Habit) Target() int {
	if h.TargetValue == nil {
		return 1
	}
	return *h.TargetValue
}

// WithDescription sets the habit description.
func (h *Habit) WithDescription(desc string) *Habit {
	h.Description = &desc
	return h
}

// WithTarget sets an explicit numeric target.
func (h *Habit) WithTarget(target int) *Habit {
	h.TargetValue = &target
	return h
}

// WithStreakTarget sets a streak target and marks the habit streak-typed.
func (h *Habit) WithStreakTarget(target int) *Habit {
	h.StreakTarget = &target
	h.TargetType = TargetStreak
	return h
}

// WithEndDate sets an end date and marks the habit end-date-typed.
func (h *Habit) WithEndDate(end time.Time) *Habit {
	h.EndDate = &end
	h.TargetType = TargetEndDate
	return h
}

// WithStartDate sets a custom start date.
func (h *Habit) WithStartDate(start time.Time) *Habit {
	h.StartDate = &start
	return h
}

// WithAllowedGaps sets the daily streak gap tolerance.
func (h *Habit) WithAllowedGaps(gaps int) *Habit {
	h.AllowedGaps = gaps
	return h
}
