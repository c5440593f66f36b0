// ABOUTME: CLI command for cloning a habit's configuration.
// ABOUTME: Copies settings into a fresh habit and counts the copy on the source.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id> <new-name>",
	Short: "Copy a habit",
	Long: `Create a new habit with the same configuration as an existing one.

The copy starts fresh: no logs, no streak, start date today. The source
habit keeps a count of how many times it has been copied.

EXAMPLES:

  habits copy 3f2a "Run 10k"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		h := models.NewHabit(args[1], src.Frequency, src.GoalType)
		if src.Description != nil {
			h.WithDescription(*src.Description)
		}
		if src.TargetValue != nil {
			h.WithTarget(*src.TargetValue)
		}
		if src.StreakTarget != nil {
			h.WithStreakTarget(*src.StreakTarget)
		}
		if src.EndDate != nil {
			h.WithEndDate(*src.EndDate)
		}
		h.WithAllowedGaps(src.AllowedGaps)

		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}
		if err := repo.IncrementCopyCount(src.ID); err != nil {
			return fmt.Errorf("failed to count copy: %w", err)
		}

		color.Green("✓ Copied %q to %q", src.Name, h.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(h.ID.String()[:8]))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
