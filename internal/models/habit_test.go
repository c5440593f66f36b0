// ABOUTME: Tests for Habit model and its enums.
// ABOUTME: Validates frequency parsing, defaults, and builder setters.
package models

import (
	"testing"
	"time"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    Frequency
		wantErr bool
	}{
		{"daily", FrequencyDaily, false},
		{"WEEKLY", FrequencyWeekly, false},
		{"  monthly ", FrequencyMonthly, false},
		{"", "", true},
		{"hourly", "", true},
		{"every day", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFrequency(tt.in)
			if tt.wantErr {
				if err != ErrInvalidFrequency {
					t.Errorf("ParseFrequency(%q) error = %v, want ErrInvalidFrequency", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrequency(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFrequency(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHabitDefaults(t *testing.T) {
	h := NewHabit("Read", FrequencyDaily, GoalBinary)

	if h.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if h.Target() != 1 {
		t.Errorf("Target() = %d, want 1 when TargetValue unset", h.Target())
	}
	if h.TargetType != TargetOngoing {
		t.Errorf("TargetType = %s, want ongoing", h.TargetType)
	}
	if h.AllowedGaps != 1 {
		t.Errorf("AllowedGaps = %d, want 1", h.AllowedGaps)
	}
	if h.StartDate == nil || h.StartDate.IsZero() {
		t.Error("expected StartDate to default to creation time")
	}
	if h.Archived {
		t.Error("new habit should not be archived")
	}
}

func TestHabitBuilders(t *testing.T) {
	end := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	h := NewHabit("Run", FrequencyWeekly, GoalNumeric).
		WithDescription("5k three times a week").
		WithTarget(3).
		WithEndDate(end)

	if h.Target() != 3 {
		t.Errorf("Target() = %d, want 3", h.Target())
	}
	if h.TargetType != TargetEndDate {
		t.Errorf("TargetType = %s, want endDate", h.TargetType)
	}
	if h.Description == nil || *h.Description != "5k three times a week" {
		t.Errorf("Description = %v, want set", h.Description)
	}

	h2 := NewHabit("Meditate", FrequencyDaily, GoalBinary).WithStreakTarget(30)
	if h2.TargetType != TargetStreak {
		t.Errorf("TargetType = %s, want streak", h2.TargetType)
	}
	if h2.StreakTarget == nil || *h2.StreakTarget != 30 {
		t.Errorf("StreakTarget = %v, want 30", h2.StreakTarget)
	}
}

func TestGoalAndTargetTypeValidation(t *testing.T) {
	if !IsValidGoalType("binary") || !IsValidGoalType("numeric") {
		t.Error("binary and numeric should be valid goal types")
	}
	if IsValidGoalType("count") {
		t.Error("count should not be a valid goal type")
	}
	if !IsValidTargetType("ongoing") || !IsValidTargetType("streak") || !IsValidTargetType("endDate") {
		t.Error("ongoing, streak, endDate should be valid target types")
	}
	if IsValidTargetType("forever") {
		t.Error("forever should not be a valid target type")
	}
}

func TestHabitLogKeySelection(t *testing.T) {
	l := &HabitLog{DailyKey: 20250307, WeeklyKey: 202510, MonthlyKey: 202503}

	tests := []struct {
		freq Frequency
		want int
	}{
		{FrequencyDaily, 20250307},
		{FrequencyWeekly, 202510},
		{FrequencyMonthly, 202503},
	}

	for _, tt := range tests {
		if got := l.Key(tt.freq); got != tt.want {
			t.Errorf("Key(%s) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}
