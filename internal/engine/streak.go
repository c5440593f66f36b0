// ABOUTME: Gap-tolerant streak walk over distinct period keys.
// ABOUTME: Shared by the single-habit and batch evaluation paths.
package engine

import (
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/period"
)

// walkStreak counts consecutive periods backward from current, tolerating up
// to allowedGaps missed periods between logged ones.
//
// keys must be the habit's distinct period keys sorted descending. On a
// mismatch the walk spends one gap, moves expected one period back, and
// re-tests the same key against the new expected; the streak ends once the
// gap budget between two logged periods is exhausted. A single old key with
// nothing since therefore never inflates the count.
func walkStreak(keys []int, frequency models.Frequency, current, allowedGaps int) (int, error) {
	streak := 0
	gapCount := 0
	expected := current

	for i := 0; i < len(keys); {
		if keys[i] == expected {
			streak++
			gapCount = 0
			i++
		} else {
			gapCount++
			if gapCount > allowedGaps {
				return streak, nil
			}
		}
		prev, err := period.PreviousKey(frequency, expected)
		if err != nil {
			return 0, err
		}
		expected = prev
	}

	return streak, nil
}
