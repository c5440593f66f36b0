// ABOUTME: CLI command for deleting habits.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a habit",
	Long: `Delete a habit by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'habits list' output.

CAUTION:

  This permanently deletes the habit and all of its logs. There is no
  undo. If you want to keep the history, use 'habits archive' instead.
  If the prefix matches multiple habits, an error is returned.

EXAMPLES:

  habits delete abc12345                    # Delete by 8-char prefix
  habits rm abc1                            # Short prefix (if unique)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		// First, resolve the habit to show what we're deleting
		h, err := repo.GetHabit(idOrPrefix)
		if err != nil {
			return fmt.Errorf("habit not found: %s", idOrPrefix)
		}

		if err := repo.DeleteHabit(idOrPrefix); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}

		color.Yellow("✗ Deleted %s", h.Name)
		fmt.Printf("  %s logs removed\n",
			color.New(color.Faint).Sprint(h.ID.String()[:8]))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
