// ABOUTME: Single-habit evaluator for progress, streak, completion, and visibility.
// ABOUTME: Reads period sums and distinct period keys through a LogSource.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/period"
)

// LogSource answers the two read queries the evaluator needs. The SQLite and
// Charm KV stores implement it directly; the batch path implements it over a
// pre-fetched in-memory log set.
type LogSource interface {
	SumValuesForPeriod(habitID uuid.UUID, frequency models.Frequency, periodKey int) (int, error)
	DistinctPeriodKeysDescending(habitID uuid.UUID, frequency models.Frequency) ([]int, error)
}

// Evaluator computes a habit's live state. It is stateless: every answer is
// a pure function of the store contents and the caller-supplied now.
type Evaluator struct {
	source LogSource
}

// NewEvaluator creates an evaluator reading from the given source.
func NewEvaluator(source LogSource) *Evaluator {
	return &Evaluator{source: source}
}

// CurrentProgress returns the signed sum of log values in the habit's current
// period. Returns 0 when the habit has no logs this period.
func (e *Evaluator) CurrentProgress(h *models.Habit, now time.Time) (int, error) {
	key, err := period.Key(h.Frequency, now)
	if err != nil {
		return 0, err
	}
	return e.source.SumValuesForPeriod(h.ID, h.Frequency, key)
}

// IsCompleted reports whether current-period progress has reached the target.
func (e *Evaluator) IsCompleted(h *models.Habit, now time.Time) (bool, error) {
	progress, err := e.CurrentProgress(h, now)
	if err != nil {
		return false, err
	}
	return progress >= h.Target(), nil
}

// Streak returns the habit's current gap-tolerant streak under its own
// frequency. Returns 0 when the habit has no logs.
func (e *Evaluator) Streak(h *models.Habit, now time.Time) (int, error) {
	frequency, err := models.ParseFrequency(string(h.Frequency))
	if err != nil {
		return 0, err
	}
	return e.streak(h, frequency, now)
}

// streak walks the habit's distinct period keys under an explicit frequency
// framing. Gap tolerance applies to daily framing only.
func (e *Evaluator) streak(h *models.Habit, frequency models.Frequency, now time.Time) (int, error) {
	keys, err := e.source.DistinctPeriodKeysDescending(h.ID, frequency)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	allowedGaps := 0
	if frequency == models.FrequencyDaily {
		allowedGaps = h.AllowedGaps
	}

	current, err := period.Key(frequency, now)
	if err != nil {
		return 0, err
	}
	return walkStreak(keys, frequency, current, allowedGaps)
}

// HasReachedTerminalCompletion reports whether the habit is permanently done:
// its streak target is met or its end date has passed.
//
// The streak target check always uses daily framing, even for weekly and
// monthly habits: the target counts consecutive days regardless of the
// habit's own cadence.
func (e *Evaluator) HasReachedTerminalCompletion(h *models.Habit, now time.Time) (bool, error) {
	if h.StreakTarget != nil {
		streak, err := e.streak(h, models.FrequencyDaily, now)
		if err != nil {
			return false, err
		}
		if streak >= *h.StreakTarget {
			return true, nil
		}
	}

	if h.EndDate != nil && dateOnly(now).After(dateOnly(*h.EndDate)) {
		return true, nil
	}

	return false, nil
}

// ShouldAppearToday reports whether the habit belongs in a "today" view.
// Daily habits always appear while active. Weekly and monthly habits stay
// visible through the whole period even once completed, then drop out when
// the period boundary passes.
func (e *Evaluator) ShouldAppearToday(h *models.Habit, now time.Time) (bool, error) {
	terminal, err := e.HasReachedTerminalCompletion(h, now)
	if err != nil {
		return false, err
	}
	if terminal {
		return false, nil
	}

	if h.StartDate != nil && dateOnly(*h.StartDate).After(dateOnly(now)) {
		return false, nil
	}

	switch h.Frequency {
	case models.FrequencyDaily:
		return true, nil
	case models.FrequencyWeekly:
		progress, err := e.CurrentProgress(h, now)
		if err != nil {
			return false, err
		}
		// Sunday is the last day of an ISO week.
		return progress < h.Target() || now.UTC().Weekday() != time.Sunday, nil
	case models.FrequencyMonthly:
		progress, err := e.CurrentProgress(h, now)
		if err != nil {
			return false, err
		}
		return progress < h.Target() || now.UTC().Day() < daysInMonth(now), nil
	default:
		return false, models.ErrInvalidFrequency
	}
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(t time.Time) int {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
