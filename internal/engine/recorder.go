// ABOUTME: Completion recorder, the engine's sole mutator.
// ABOUTME: Appends one signed log per call with write-time period keys.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/period"
)

// LogAppender is the single write the recorder needs from a store.
type LogAppender interface {
	AppendLog(l *models.HabitLog) error
}

// Recorder appends completion and undo events. Writes for the same habit are
// serialized through a per-habit mutex, so two concurrent completions cannot
// interleave their appends.
type Recorder struct {
	store LogAppender

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewRecorder creates a recorder writing through the given store.
func NewRecorder(store LogAppender) *Recorder {
	return &Recorder{
		store: store,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Record appends exactly one log: +1 for a completion, -1 for an undo. All
// three period keys are computed from now at write time and stored with the
// log; they are never recomputed later. The habit's current target is
// snapshotted onto the log for history.
//
// Undo is not validated against current progress: undoing at zero drives the
// period sum to -1. Callers must only pass decrease=true when progress is
// positive.
func (r *Recorder) Record(h *models.Habit, now time.Time, decrease bool) (*models.HabitLog, error) {
	lock := r.lockFor(h.ID)
	lock.Lock()
	defer lock.Unlock()

	value := 1
	if decrease {
		value = -1
	}

	daily, weekly, monthly := period.Keys(now)
	l := &models.HabitLog{
		ID:         uuid.New(),
		HabitID:    h.ID,
		Timestamp:  now.UTC(),
		DailyKey:   daily,
		WeeklyKey:  weekly,
		MonthlyKey: monthly,
		Value:      value,
		Target:     h.Target(),
	}

	if err := r.store.AppendLog(l); err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	return l, nil
}

// lockFor returns the mutex serializing writes for one habit, creating it on
// first use.
func (r *Recorder) lockFor(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}
