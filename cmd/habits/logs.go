// ABOUTME: CLI command listing a habit's completion history.
// ABOUTME: Shows signed log values with their period keys.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logsDays int

var logsCmd = &cobra.Command{
	Use:   "logs <id>",
	Short: "List a habit's completion log",
	Long: `List a habit's completion history, newest first.

Each log is one completion (+1) or undo (-1). The day column shows which
calendar day the log counted toward.

EXAMPLES:

  habits logs 3f2a             # Last 30 days
  habits logs 3f2a --days 90   # Last 90 days`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		now := time.Now()
		logs, err := repo.ListLogs(h.ID, now.AddDate(0, 0, -logsDays), now)
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		if len(logs) == 0 {
			fmt.Printf("No logs for %q in the last %d days.\n", h.Name, logsDays)
			return nil
		}

		faint := color.New(color.Faint)
		for _, l := range logs {
			fmt.Printf("%s %s %+d  %s\n",
				faint.Sprint(l.ID.String()[:8]),
				l.Timestamp.Format("2006-01-02 15:04"),
				l.Value,
				faint.Sprintf("day %d", l.DailyKey))
		}

		return nil
	},
}

func init() {
	logsCmd.Flags().IntVar(&logsDays, "days", 30, "how many days back to list")
	rootCmd.AddCommand(logsCmd)
}
