// ABOUTME: CLI command for listing habits.
// ABOUTME: Shows all active habits with progress and streaks, or archived ones.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var listArchived bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List habits",
	Long: `List all active habits with their current progress and streaks.

Unlike 'habits today', this shows every active habit, including weekly and
monthly habits outside their due window and habits that reached a terminal
state.

OUTPUT FORMAT:

  Each line shows: STATUS  ID  NAME  PROGRESS  STREAK

  The ID is an 8-character prefix you can use with done, show, archive,
  and delete commands.

EXAMPLES:

  habits list              # All active habits
  habits list --archived   # Archived habits only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listArchived {
			habits, err := repo.ListHabits(true)
			if err != nil {
				return fmt.Errorf("failed to list habits: %w", err)
			}
			if len(habits) == 0 {
				fmt.Println("No archived habits.")
				return nil
			}

			faint := color.New(color.Faint)
			for _, h := range habits {
				fmt.Printf("%s %s (%s)\n",
					faint.Sprint(h.ID.String()[:8]),
					h.Name, h.Frequency)
			}
			return nil
		}

		results, err := evaluateHabits(engine.ModeAll)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No habits yet. Create one with 'habits new'.")
			return nil
		}

		printResults(results)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "list archived habits")
	rootCmd.AddCommand(listCmd)
}
