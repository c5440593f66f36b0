// ABOUTME: Tests for the period key codec.
// ABOUTME: Covers key encoding, previous-key walking, and boundary wraparound.
package period

import (
	"testing"
	"time"

	"github.com/harperreed/habits/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestKeyDaily(t *testing.T) {
	tests := []struct {
		t    time.Time
		want int
	}{
		{date(2025, time.March, 7), 20250307},
		{date(2024, time.December, 31), 20241231},
		{date(2025, time.January, 1), 20250101},
	}

	for _, tt := range tests {
		got, err := Key(models.FrequencyDaily, tt.t)
		if err != nil {
			t.Fatalf("Key failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("Key(daily, %v) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestKeyWeeklyUsesISOWeek(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
		{"year boundary forward", date(2024, time.December, 30), 202501},
		// 2021-01-01 is a Friday in ISO week 53 of 2020.
		{"year boundary backward", date(2021, time.January, 1), 202053},
		{"mid year", date(2025, time.June, 11), 202524},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(models.FrequencyWeekly, tt.t)
			if err != nil {
				t.Fatalf("Key failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Key(weekly, %v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

func TestKeyMonthly(t *testing.T) {
	got, err := Key(models.FrequencyMonthly, date(2025, time.November, 2))
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if got != 202511 {
		t.Errorf("Key(monthly) = %d, want 202511", got)
	}
}

func TestKeyInvalidFrequency(t *testing.T) {
	if _, err := Key(models.Frequency("hourly"), time.Now()); err != models.ErrInvalidFrequency {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}
	if _, err := PreviousKey(models.Frequency(""), 20250101); err != models.ErrInvalidFrequency {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestPreviousKeyDaily(t *testing.T) {
	tests := []struct {
		name string
		key  int
		want int
	}{
		{"mid month", 20250307, 20250306},
		{"month boundary", 20250301, 20250228},
		{"leap february", 20240301, 20240229},
		{"year boundary", 20250101, 20241231},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreviousKey(models.FrequencyDaily, tt.key)
			if err != nil {
				t.Fatalf("PreviousKey failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PreviousKey(daily, %d) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestPreviousKeyWeekly(t *testing.T) {
	tests := []struct {
		name string
		key  int
		want int
	}{
		{"mid year", 202524, 202523},
		// Always wraps to week 52: a 53-week prior year loses one week.
		// Documented behavior, matches the keys stamped on historical logs.
		{"year boundary", 202501, 202452},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreviousKey(models.FrequencyWeekly, tt.key)
			if err != nil {
				t.Fatalf("PreviousKey failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PreviousKey(weekly, %d) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestPreviousKeyMonthly(t *testing.T) {
	tests := []struct {
		key  int
		want int
	}{
		{202511, 202510},
		{202501, 202412},
	}

	for _, tt := range tests {
		got, err := PreviousKey(models.FrequencyMonthly, tt.key)
		if err != nil {
			t.Fatalf("PreviousKey failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("PreviousKey(monthly, %d) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

// Walking one period back from t must land on the key of t minus one period.
func TestPreviousKeyRoundTrip(t *testing.T) {
	start := date(2025, time.February, 10)

	for _, f := range models.AllFrequencies {
		cur := start
		for i := 0; i < 30; i++ {
			key, err := Key(f, cur)
			if err != nil {
				t.Fatalf("Key failed: %v", err)
			}
			prev, err := PreviousKey(f, key)
			if err != nil {
				t.Fatalf("PreviousKey failed: %v", err)
			}

			var earlier time.Time
			switch f {
			case models.FrequencyDaily:
				earlier = cur.AddDate(0, 0, -1)
			case models.FrequencyWeekly:
				earlier = cur.AddDate(0, 0, -7)
			case models.FrequencyMonthly:
				earlier = cur.AddDate(0, -1, 0)
			}

			want, err := Key(f, earlier)
			if err != nil {
				t.Fatalf("Key failed: %v", err)
			}
			// Skip the documented weekly mismatch across 53-week years.
			if f == models.FrequencyWeekly && want%100 == 53 {
				cur = earlier
				continue
			}
			if prev != want {
				t.Errorf("%s: PreviousKey(%d) = %d, want %d (from %v)", f, key, prev, want, earlier)
			}
			if prev >= key {
				t.Errorf("%s: keys not strictly decreasing: %d -> %d", f, key, prev)
			}
			cur = earlier
		}
	}
}

func TestKeysStampsAllThree(t *testing.T) {
	ts := date(2025, time.January, 1)
	daily, weekly, monthly := Keys(ts)

	if daily != 20250101 {
		t.Errorf("daily = %d, want 20250101", daily)
	}
	// 2025-01-01 is a Wednesday in ISO week 1 of 2025.
	if weekly != 202501 {
		t.Errorf("weekly = %d, want 202501", weekly)
	}
	if monthly != 202501 {
		t.Errorf("monthly = %d, want 202501", monthly)
	}
}
