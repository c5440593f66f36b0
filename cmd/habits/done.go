// ABOUTME: CLI command for logging habit completions and undos.
// ABOUTME: Shows the resulting progress and streak after each log.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var (
	doneUndo bool
	doneAt   string
)

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"d", "log"},
	Short:   "Log a habit completion",
	Long: `Log a completion for a habit, identified by ID or ID prefix.

Each completion adds one to the current period's progress. Numeric habits
need several completions to finish a period; done-or-not habits need one.

UNDO:

  --undo takes back one completion from the current period. Undo is only
  allowed while the period's progress is positive.

BACKDATING:

  --at logs the completion at a past time. The completion counts toward
  the period that time falls in, not today's.

EXAMPLES:

  habits done 3f2a                          # Log a completion now
  habits done 3f2a --undo                   # Take one back
  habits done 3f2a --at "2025-03-06 21:00"  # Log for yesterday evening`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}
		if h.Archived {
			return fmt.Errorf("habit is archived: %s", h.Name)
		}

		now := time.Now()
		if doneAt != "" {
			now, err = parseTime(doneAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", doneAt)
			}
		}

		eval := engine.NewEvaluator(repo)

		if doneUndo {
			progress, err := eval.CurrentProgress(h, now)
			if err != nil {
				return fmt.Errorf("failed to read progress: %w", err)
			}
			if progress <= 0 {
				return fmt.Errorf("nothing to undo for %q this %s", h.Name, periodNoun(h.Frequency))
			}
		}

		recorder := engine.NewRecorder(repo)
		if _, err := recorder.Record(h, now, doneUndo); err != nil {
			return err
		}

		progress, err := eval.CurrentProgress(h, now)
		if err != nil {
			return fmt.Errorf("failed to read progress: %w", err)
		}
		streak, err := eval.Streak(h, now)
		if err != nil {
			return fmt.Errorf("failed to read streak: %w", err)
		}

		if doneUndo {
			color.Yellow("↩ Undid %s", h.Name)
		} else if progress >= h.Target() {
			color.Green("✓ %s complete", h.Name)
		} else {
			color.Green("✓ Logged %s", h.Name)
		}
		fmt.Printf("  %s %d/%d this %s, streak %d\n",
			color.New(color.Faint).Sprint(h.ID.String()[:8]),
			progress, h.Target(), periodNoun(h.Frequency), streak)

		if h.StreakTarget != nil && !doneUndo {
			terminal, err := eval.HasReachedTerminalCompletion(h, now)
			if err == nil && terminal {
				color.Green("★ Streak target reached. %q is done for good.", h.Name)
			}
		}

		return nil
	},
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "undo one completion")
	doneCmd.Flags().StringVar(&doneAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	rootCmd.AddCommand(doneCmd)
}
