// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: Supports JSON, YAML, and Markdown output plus JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:       "export <format>",
	Short:     "Export habit data",
	ValidArgs: []string{"json", "yaml", "markdown"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Export all habits and logs in the given format.

FORMATS:

  json      Full fidelity export. Use this for backups and for
            re-importing with 'habits import'.
  yaml      Same data as JSON, YAML syntax.
  markdown  Human-readable tables. Supports --since to limit logs.

Output goes to stdout unless --output is given.

EXAMPLES:

  habits export json -o backup.json
  habits export markdown --since 2025-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to gather data: %w", err)
		}

		var out []byte
		switch args[0] {
		case "json":
			out, err = storage.MarshalExportJSON(data)
		case "yaml":
			out, err = storage.MarshalExportYAML(data)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, perr := time.Parse("2006-01-02", exportSince)
				if perr != nil {
					return fmt.Errorf("invalid --since date %q, use YYYY-MM-DD", exportSince)
				}
				since = &t
			}
			out = []byte(storage.RenderExportMarkdown(data, since))
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported %d habits and %d logs to %s",
			len(data.Habits), len(data.Logs), exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import habit data from a JSON export",
	Long: `Import habits and logs from a file created by 'habits export json'.

Imported logs keep the period keys they were exported with. Importing
into a store that already contains the same habits will fail on the
duplicate IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		data, err := storage.ParseExportJSON(raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}
		if err := repo.ImportData(data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		color.Green("✓ Imported %d habits and %d logs", len(data.Habits), len(data.Logs))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include logs on or after this date (markdown, YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
