// ABOUTME: CLI command for archiving habits.
// ABOUTME: Retires a habit while keeping its full history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a habit",
	Long: `Archive a habit by its ID or ID prefix.

Archived habits disappear from 'habits today' and 'habits list', but their
logs are kept and they still appear in exports. Archived habits cannot be
edited or logged.

Use 'habits list --archived' to see archived habits.

EXAMPLES:

  habits archive 3f2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		if err := repo.ArchiveHabit(args[0]); err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}

		color.Yellow("✓ Archived %s", h.Name)
		fmt.Printf("  %s history kept\n", color.New(color.Faint).Sprint(h.ID.String()[:8]))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
