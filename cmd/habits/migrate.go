// ABOUTME: CLI command for migrating habit data between storage backends.
// ABOUTME: Copies all habits and logs from the active backend to the other one.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/charm"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:       "migrate <sqlite|charm>",
	Short:     "Migrate data to another storage backend",
	ValidArgs: []string{"sqlite", "charm"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Copy all habits and logs from the active backend to the named one.

The destination must be empty. Logs keep their original period keys, so
streaks and progress are unchanged after migrating.

IMPORTANT:

  - The source data is left in place; delete it yourself once you have
    verified the migration.
  - Run with --dry-run first to see what would be copied.
  - After migrating, set "backend" in the config file to the new backend:
      habits migrate charm
      then edit ~/.local/share/habits/config.json

USAGE:

  habits migrate charm --dry-run
  habits migrate charm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", target)
		}

		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read source data: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run - no changes will be made")
			fmt.Printf("Would migrate %d habits and %d logs from %s to %s\n",
				len(data.Habits), len(data.Logs), cfg.GetBackend(), target)
			return nil
		}

		dst, err := openBackend(target)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", target, err)
		}
		defer dst.Close()

		existing, err := dst.ListHabits(false)
		if err != nil {
			return fmt.Errorf("failed to inspect destination: %w", err)
		}
		archived, err := dst.ListHabits(true)
		if err != nil {
			return fmt.Errorf("failed to inspect destination: %w", err)
		}
		if len(existing)+len(archived) > 0 {
			return fmt.Errorf("destination %s backend is not empty", target)
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d habits and %d logs to %s", summary.Habits, summary.Logs, target)
		fmt.Printf("Set \"backend\" in %s to finish switching backends\n", config.GetConfigPath())
		return nil
	},
}

func openBackend(name string) (storage.Repository, error) {
	switch name {
	case "sqlite":
		return storage.OpenDefault()
	case "charm":
		return charm.GetClient()
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
