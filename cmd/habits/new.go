// ABOUTME: CLI command for creating habits.
// ABOUTME: Handles cadence, targets, streak targets, end dates, and gap tolerance.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	newFrequency    string
	newDescription  string
	newTarget       int
	newStreakTarget int
	newEndDate      string
	newStartDate    string
	newAllowedGaps  int
)

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"n", "add"},
	Short:   "Create a new habit",
	Long: `Create a new habit with a daily, weekly, or monthly cadence.

TARGETS:

  By default a habit is done-or-not: one completion finishes the period.
  Use --target for habits that need several completions per period, like
  drinking eight glasses of water a day.

TERMINAL HABITS:

  --streak-target N   The habit is permanently achieved once its daily
                      streak reaches N. It then disappears from the today
                      view for good.
  --end-date DATE     The habit ends after this date (YYYY-MM-DD).

STREAK TOLERANCE:

  Daily streaks survive up to --gaps missed days in a row (default 1).
  Weekly and monthly streaks never tolerate a missed period.

EXAMPLES:

  habits new "Read"                                 # Daily, once a day
  habits new "Drink water" --target 8               # Daily, 8 times a day
  habits new "Review finances" -f monthly           # Monthly
  habits new "Meditate" --streak-target 30          # 30-day challenge
  habits new "Rehab" --end-date 2026-03-01          # Ends on a date
  habits new "Run" --gaps 0                         # Strict streak`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frequency, err := models.ParseFrequency(newFrequency)
		if err != nil {
			return fmt.Errorf("unknown frequency: %s (use daily, weekly, or monthly)", newFrequency)
		}

		goal := models.GoalBinary
		if newTarget > 1 {
			goal = models.GoalNumeric
		}

		h := models.NewHabit(args[0], frequency, goal)
		if newDescription != "" {
			h.WithDescription(newDescription)
		}
		if newTarget > 1 {
			h.WithTarget(newTarget)
		}
		if newStreakTarget > 0 {
			h.WithStreakTarget(newStreakTarget)
		}
		if newEndDate != "" {
			end, err := time.Parse("2006-01-02", newEndDate)
			if err != nil {
				return fmt.Errorf("invalid end date: %s (use YYYY-MM-DD)", newEndDate)
			}
			h.WithEndDate(end)
		}
		if newStartDate != "" {
			start, err := time.Parse("2006-01-02", newStartDate)
			if err != nil {
				return fmt.Errorf("invalid start date: %s (use YYYY-MM-DD)", newStartDate)
			}
			h.WithStartDate(start)
		}
		if cmd.Flags().Changed("gaps") {
			h.WithAllowedGaps(newAllowedGaps)
		}

		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		color.Green("✓ Created %s habit %q", h.Frequency, h.Name)
		fmt.Printf("  %s target %d per %s\n",
			color.New(color.Faint).Sprint(h.ID.String()[:8]),
			h.Target(), periodNoun(h.Frequency))

		return nil
	},
}

// periodNoun names one period of a frequency.
func periodNoun(f models.Frequency) string {
	switch f {
	case models.FrequencyWeekly:
		return "week"
	case models.FrequencyMonthly:
		return "month"
	default:
		return "day"
	}
}

func init() {
	newCmd.Flags().StringVarP(&newFrequency, "frequency", "f", "daily", "cadence (daily, weekly, monthly)")
	newCmd.Flags().StringVar(&newDescription, "description", "", "habit description")
	newCmd.Flags().IntVar(&newTarget, "target", 1, "completions needed per period")
	newCmd.Flags().IntVar(&newStreakTarget, "streak-target", 0, "days after which the habit is permanently achieved")
	newCmd.Flags().StringVar(&newEndDate, "end-date", "", "date the habit ends (YYYY-MM-DD)")
	newCmd.Flags().StringVar(&newStartDate, "start-date", "", "date the habit starts (YYYY-MM-DD)")
	newCmd.Flags().IntVar(&newAllowedGaps, "gaps", 1, "missed days a daily streak tolerates")
	rootCmd.AddCommand(newCmd)
}
