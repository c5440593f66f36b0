// ABOUTME: In-memory LogSource over a bulk-fetched, grouped log set.
// ABOUTME: Backs the batch evaluator so it answers reads with zero I/O.
package engine

import (
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
)

// memorySource indexes a flat log list by habit id and answers the same
// queries a store would, from memory.
type memorySource struct {
	byHabit map[uuid.UUID][]*models.HabitLog
}

// newMemorySource groups the logs by habit id. This is the single O(logs)
// pass of the batch path; everything after is per-habit computation.
func newMemorySource(logs []*models.HabitLog) *memorySource {
	byHabit := make(map[uuid.UUID][]*models.HabitLog)
	for _, l := range logs {
		byHabit[l.HabitID] = append(byHabit[l.HabitID], l)
	}
	return &memorySource{byHabit: byHabit}
}

func (s *memorySource) SumValuesForPeriod(habitID uuid.UUID, frequency models.Frequency, periodKey int) (int, error) {
	if err := validFrequency(frequency); err != nil {
		return 0, err
	}
	sum := 0
	for _, l := range s.byHabit[habitID] {
		if l.Key(frequency) == periodKey {
			sum += l.Value
		}
	}
	return sum, nil
}

func (s *memorySource) DistinctPeriodKeysDescending(habitID uuid.UUID, frequency models.Frequency) ([]int, error) {
	if err := validFrequency(frequency); err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var keys []int
	for _, l := range s.byHabit[habitID] {
		k := l.Key(frequency)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys, nil
}

func validFrequency(frequency models.Frequency) error {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
		return nil
	default:
		return models.ErrInvalidFrequency
	}
}
