// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Opens the configured storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Personal habit tracker with streaks",
	Long: `Habits is a CLI tool for building habits and keeping streaks alive.

HOW IT WORKS:

  Habits have a cadence (daily, weekly, monthly) and a target number of
  completions per period (default 1). Logging a completion adds to the
  current period's progress; streaks count consecutive periods in which
  you showed up. Daily streaks tolerate a configurable number of missed
  days (default 1) before breaking.

QUICK START:

  $ habits new "Drink water" --target 8             # 8 glasses a day
  $ habits new "Review finances" -f monthly         # Once a month
  $ habits new "Run" --streak-target 30             # Done for good at 30 days
  $ habits done 3f2a                                # Log a completion
  $ habits done 3f2a --undo                         # Take one back
  $ habits today                                    # What's due today
  $ habits list                                     # All habits with streaks

LIFECYCLE:

  $ habits show 3f2a            # Details, progress, and recent logs
  $ habits archive 3f2a         # Retire a habit, keep its history
  $ habits delete 3f2a          # Remove a habit and all its logs
  $ habits copy 3f2a "Run 10k"  # Clone a habit's configuration

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "habits": { "command": "habits", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in SQLite at ~/.local/share/habits/habits.db by default.
  Set "backend": "charm" in ~/.config/habits/config.json to store data
  in Charm KV with automatic E2E-encrypted sync across devices.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
