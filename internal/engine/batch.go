// ABOUTME: Batch evaluator computing habit state for many habits at once.
// ABOUTME: One bulk log fetch by the caller, then pure in-memory computation.
package engine

import (
	"time"

	"github.com/harperreed/habits/internal/models"
)

// Mode selects which habits a batch evaluation retains.
type Mode int

const (
	// ModeAll keeps every habit regardless of today-visibility.
	ModeAll Mode = iota
	// ModeToday keeps only habits that should appear in a today view.
	ModeToday
)

// Result is one habit's evaluated state. Owned and CanManageProgress are
// relationship flags the caller attaches; the engine never computes them.
type Result struct {
	Habit             *models.Habit
	Progress          int
	Streak            int
	Completed         bool
	AppearsToday      bool
	Owned             bool
	CanManageProgress bool
}

// Batch evaluates a set of habits against one pre-fetched log list. It
// performs no I/O: the caller does the single bulk fetch (for example via
// Repository.BulkFetchLogs) and hands the flat result in.
//
// For any fixed snapshot of habits and logs, a Batch produces exactly the
// same per-habit numbers as running an Evaluator against the store habit by
// habit; both paths share the same evaluation code.
type Batch struct {
	habits []*models.Habit
	eval   *Evaluator
}

// NewBatch groups the logs by habit id and prepares an evaluator over the
// in-memory index.
func NewBatch(habits []*models.Habit, logs []*models.HabitLog) *Batch {
	return &Batch{
		habits: habits,
		eval:   NewEvaluator(newMemorySource(logs)),
	}
}

// Evaluate computes progress, streak, completion, and today-visibility for
// each habit, filtering by mode. Archived habits are always skipped.
func (b *Batch) Evaluate(now time.Time, mode Mode) ([]*Result, error) {
	results := make([]*Result, 0, len(b.habits))

	for _, h := range b.habits {
		if h.Archived {
			continue
		}

		appears, err := b.eval.ShouldAppearToday(h, now)
		if err != nil {
			return nil, err
		}
		if mode == ModeToday && !appears {
			continue
		}

		progress, err := b.eval.CurrentProgress(h, now)
		if err != nil {
			return nil, err
		}
		streak, err := b.eval.Streak(h, now)
		if err != nil {
			return nil, err
		}

		results = append(results, &Result{
			Habit:        h,
			Progress:     progress,
			Streak:       streak,
			Completed:    progress >= h.Target(),
			AppearsToday: appears,
		})
	}

	return results, nil
}

// MarkOwnership attaches caller-determined relationship flags to a result
// set and returns it for chaining.
func MarkOwnership(results []*Result, owned, canManage bool) []*Result {
	for _, r := range results {
		r.Owned = owned
		r.CanManageProgress = canManage
	}
	return results
}
