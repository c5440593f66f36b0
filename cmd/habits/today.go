// ABOUTME: CLI command showing the habits due today.
// ABOUTME: One batch evaluation over all active habits.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show habits due today",
	Long: `Show the habits that should appear today.

Daily habits always appear while active. Weekly and monthly habits stay
visible through their whole period, even once completed, and drop out when
the period ends. Habits that reached their streak target or passed their
end date never appear.

OUTPUT FORMAT:

  Each line shows: STATUS  ID  NAME  PROGRESS  STREAK

EXAMPLES:

  habits today`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := evaluateHabits(engine.ModeToday)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("Nothing due today.")
			return nil
		}

		printResults(results)
		return nil
	},
}

// evaluateHabits bulk-fetches logs for all active habits and runs one batch
// evaluation.
func evaluateHabits(mode engine.Mode) ([]*engine.Result, error) {
	habits, err := repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	ids := make([]uuid.UUID, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	logs, err := repo.BulkFetchLogs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	results, err := engine.NewBatch(habits, logs).Evaluate(time.Now(), mode)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate habits: %w", err)
	}
	return results, nil
}

func printResults(results []*engine.Result) {
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	for _, r := range results {
		status := "·"
		if r.Completed {
			status = green.Sprint("✓")
		}

		streak := ""
		if r.Streak > 0 {
			streak = fmt.Sprintf("  %s", faint.Sprintf("streak %d", r.Streak))
		}

		fmt.Printf("%s %s %s  %d/%d per %s%s\n",
			status,
			faint.Sprint(r.Habit.ID.String()[:8]),
			padRight(r.Habit.Name, 24),
			r.Progress, r.Habit.Target(),
			periodNoun(r.Habit.Frequency),
			streak)
	}
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
