// ABOUTME: CLI command showing one habit in detail.
// ABOUTME: Prints configuration, evaluated state, and recent logs.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show habit details",
	Long: `Show one habit's configuration, current state, and recent completions.

EXAMPLES:

  habits show 3f2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		now := time.Now()
		eval := engine.NewEvaluator(repo)

		progress, err := eval.CurrentProgress(h, now)
		if err != nil {
			return fmt.Errorf("failed to read progress: %w", err)
		}
		streak, err := eval.Streak(h, now)
		if err != nil {
			return fmt.Errorf("failed to read streak: %w", err)
		}
		terminal, err := eval.HasReachedTerminalCompletion(h, now)
		if err != nil {
			return fmt.Errorf("failed to compute state: %w", err)
		}

		faint := color.New(color.Faint)

		bold := color.New(color.Bold)
		bold.Println(h.Name)
		fmt.Printf("  %s\n", faint.Sprint(h.ID.String()))
		if h.Description != nil && *h.Description != "" {
			fmt.Printf("  %s\n", *h.Description)
		}
		fmt.Println()

		fmt.Printf("  frequency   %s\n", h.Frequency)
		fmt.Printf("  target      %d per %s\n", h.Target(), periodNoun(h.Frequency))
		fmt.Printf("  gaps        %d\n", h.AllowedGaps)
		if h.StreakTarget != nil {
			fmt.Printf("  streak goal %d days\n", *h.StreakTarget)
		}
		if h.StartDate != nil {
			fmt.Printf("  starts      %s\n", h.StartDate.Format("2006-01-02"))
		}
		if h.EndDate != nil {
			fmt.Printf("  ends        %s\n", h.EndDate.Format("2006-01-02"))
		}
		if h.CopyCount > 0 {
			fmt.Printf("  copied      %d times\n", h.CopyCount)
		}
		fmt.Println()

		status := fmt.Sprintf("%d/%d this %s", progress, h.Target(), periodNoun(h.Frequency))
		if progress >= h.Target() {
			color.Green("  ✓ %s", status)
		} else {
			fmt.Printf("  · %s\n", status)
		}
		fmt.Printf("  streak %d\n", streak)
		if terminal {
			color.Green("  ★ permanently achieved")
		}
		if h.Archived {
			color.Yellow("  archived")
		}

		logs, err := repo.ListLogs(h.ID, now.AddDate(0, 0, -7), now)
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}
		if len(logs) > 0 {
			fmt.Println()
			faint.Println("  last 7 days:")
			for _, l := range logs {
				fmt.Printf("  %s %+d\n",
					faint.Sprint(l.Timestamp.Format("2006-01-02 15:04")), l.Value)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
