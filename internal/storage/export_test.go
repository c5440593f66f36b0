// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and key preservation.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/habits/internal/models"
)

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)

	h := models.NewHabit("Drink water", models.FrequencyDaily, models.GoalNumeric).WithTarget(8)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	archived := models.NewHabit("Old", models.FrequencyWeekly, models.GoalBinary)
	archived.Archived = true
	if err := db.CreateHabit(archived); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	db.AppendLog(testLog(h.ID, time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC), 1))

	all, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	data, err := MarshalExportJSON(all)
	if err != nil {
		t.Fatalf("MarshalExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "habits" {
		t.Errorf("Expected tool habits, got %s", export.Tool)
	}
	// Archived habits are exported too.
	if len(export.Habits) != 2 {
		t.Errorf("Expected 2 habits, got %d", len(export.Habits))
	}
	if len(export.Logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(export.Logs))
	}
	if export.Logs[0].DailyKey != 20250307 {
		t.Errorf("DailyKey = %d, want 20250307", export.Logs[0].DailyKey)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	all, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	data, err := MarshalExportYAML(all)
	if err != nil {
		t.Fatalf("MarshalExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if yamlData["version"] != "1.0" {
		t.Errorf("Expected version 1.0, got %v", yamlData["version"])
	}
	if yamlData["tool"] != "habits" {
		t.Errorf("Expected tool habits, got %v", yamlData["tool"])
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	old := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	recent := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)
	db.AppendLog(testLog(h.ID, old, 1))
	db.AppendLog(testLog(h.ID, recent, 1))

	all, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	md := RenderExportMarkdown(all, nil)
	if !strings.Contains(md, "# Habits Export") {
		t.Error("missing export header")
	}
	if !strings.Contains(md, "Read") {
		t.Error("missing habit name")
	}
	if !strings.Contains(md, "20250101") || !strings.Contains(md, "20250307") {
		t.Error("expected both log days without a since filter")
	}

	since := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	md = RenderExportMarkdown(all, &since)
	if strings.Contains(md, "20250101") {
		t.Error("since filter should drop the january log")
	}
	if !strings.Contains(md, "20250307") {
		t.Error("since filter should keep the march log")
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)

	h := models.NewHabit("Run", models.FrequencyDaily, models.GoalBinary).WithStreakTarget(30)
	if err := src.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	src.AppendLog(testLog(h.ID, time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC), 1))

	all, err := src.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	data, err := MarshalExportJSON(all)
	if err != nil {
		t.Fatalf("MarshalExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	parsed, err := ParseExportJSON(data)
	if err != nil {
		t.Fatalf("ParseExportJSON failed: %v", err)
	}
	if err := dst.ImportData(parsed); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	got, err := dst.GetHabit(h.ID.String())
	if err != nil {
		t.Fatalf("GetHabit after import failed: %v", err)
	}
	if got.StreakTarget == nil || *got.StreakTarget != 30 {
		t.Errorf("StreakTarget mismatch after import: got %v", got.StreakTarget)
	}

	logs, err := dst.BulkFetchLogs([]uuid.UUID{h.ID})
	if err != nil {
		t.Fatalf("BulkFetchLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 imported log, got %d", len(logs))
	}
	// Imported keys are trusted as stored, never recomputed.
	if logs[0].DailyKey != 20250307 || logs[0].WeeklyKey != 202510 || logs[0].MonthlyKey != 202503 {
		t.Errorf("period keys mutated on import: %d %d %d",
			logs[0].DailyKey, logs[0].WeeklyKey, logs[0].MonthlyKey)
	}
}
