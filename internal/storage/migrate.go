// ABOUTME: Data migration between habit storage backends.
// ABOUTME: Copies habits and their logs from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Habits int
	Logs   int
}

// MigrateData copies all habits and logs from src to dst storage.
// The destination should be empty before calling this function. Logs carry
// their original period keys unchanged.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}

	for _, h := range data.Habits {
		if err := dst.CreateHabit(h); err != nil {
			return nil, fmt.Errorf("create habit %s: %w", h.ID, err)
		}
		summary.Habits++
	}

	for _, l := range data.Logs {
		if err := dst.AppendLog(l); err != nil {
			return nil, fmt.Errorf("append log %s: %w", l.ID, err)
		}
		summary.Logs++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or
// subdirectories. Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return len(entries) > 0, nil
}
