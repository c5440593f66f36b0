// ABOUTME: Export and import functionality for habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for habit data.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Habits     []*models.Habit    `json:"habits" yaml:"habits"`
	Logs       []*models.HabitLog `json:"logs" yaml:"logs"`
}

// GetAllData retrieves all habits and logs for export.
func (d *DB) GetAllData() (*ExportData, error) {
	active, err := d.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	archived, err := d.ListHabits(true)
	if err != nil {
		return nil, fmt.Errorf("list archived habits: %w", err)
	}
	habits := append(active, archived...)

	ids := make([]uuid.UUID, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	logs, err := d.BulkFetchLogs(ids)
	if err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "habits",
		Habits:     habits,
		Logs:       logs,
	}, nil
}

// ImportData imports habits and logs from an export file.
// Period keys on imported logs are trusted as stored; they are never
// recomputed from timestamps.
func (d *DB) ImportData(data *ExportData) error {
	for _, h := range data.Habits {
		if err := d.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit %s: %w", h.ID, err)
		}
	}
	for _, l := range data.Logs {
		if err := d.AppendLog(l); err != nil {
			return fmt.Errorf("import log %s: %w", l.ID, err)
		}
	}
	return nil
}

// MarshalExportJSON renders an export as indented JSON.
func MarshalExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// MarshalExportYAML renders an export as YAML.
func MarshalExportYAML(data *ExportData) ([]byte, error) {
	return yaml.Marshal(data)
}

// RenderExportMarkdown renders habits and their logs as Markdown tables.
// When since is set, logs before it are omitted.
func RenderExportMarkdown(data *ExportData, since *time.Time) string {
	var b strings.Builder
	b.WriteString("# Habits Export\n\n")
	b.WriteString(fmt.Sprintf("Exported: %s\n\n", data.ExportedAt.Format("2006-01-02 15:04")))

	b.WriteString("## Habits\n\n")
	b.WriteString("| Name | Frequency | Goal | Target | Gaps | Archived |\n")
	b.WriteString("|------|-----------|------|--------|------|----------|\n")
	for _, h := range data.Habits {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %v |\n",
			h.Name, h.Frequency, h.GoalType, h.Target(), h.AllowedGaps, h.Archived))
	}

	b.WriteString("\n## Logs\n\n")
	b.WriteString("| Habit | Timestamp | Value | Day | Week | Month |\n")
	b.WriteString("|-------|-----------|-------|-----|------|-------|\n")
	for _, l := range data.Logs {
		if since != nil && l.Timestamp.Before(*since) {
			continue
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %+d | %d | %d | %d |\n",
			l.HabitID.String()[:8], l.Timestamp.Format("2006-01-02 15:04"),
			l.Value, l.DailyKey, l.WeeklyKey, l.MonthlyKey))
	}

	return b.String()
}

// ParseExportJSON parses a JSON export file.
func ParseExportJSON(data []byte) (*ExportData, error) {
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse import data: %w", err)
	}
	return &export, nil
}
