// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "habits.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestNewServer(t *testing.T) {
	db := setupTestDB(t)

	server, err := NewServer(db)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
}

func TestHandleCreateHabit(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     createHabitInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "simple daily habit",
			input: createHabitInput{
				Name:      "Read",
				Frequency: "daily",
			},
			wantErr: false,
		},
		{
			name: "numeric weekly habit",
			input: createHabitInput{
				Name:      "Workouts",
				Frequency: "weekly",
				Target:    3,
			},
			wantErr: false,
		},
		{
			name: "habit with streak target",
			input: createHabitInput{
				Name:         "Meditate",
				Frequency:    "daily",
				StreakTarget: 30,
			},
			wantErr: false,
		},
		{
			name: "habit with end date",
			input: createHabitInput{
				Name:      "Rehab exercises",
				Frequency: "daily",
				EndDate:   "2025-12-31",
			},
			wantErr: false,
		},
		{
			name: "unknown frequency",
			input: createHabitInput{
				Name:      "Odd",
				Frequency: "fortnightly",
			},
			wantErr:   true,
			errSubstr: "unknown frequency",
		},
		{
			name: "bad end date",
			input: createHabitInput{
				Name:      "Odd",
				Frequency: "daily",
				EndDate:   "soon",
			},
			wantErr:   true,
			errSubstr: "invalid end date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleCreateHabit(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("handleCreateHabit failed: %v", err)
			}
			if output.ID == "" {
				t.Error("Expected non-empty habit ID")
			}
			if output.Name != tt.input.Name {
				t.Errorf("Name = %q, want %q", output.Name, tt.input.Name)
			}
		})
	}
}

func TestHandleLogHabit(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	_, output, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String()})
	if err != nil {
		t.Fatalf("handleLogHabit failed: %v", err)
	}
	if output.Progress != 1 {
		t.Errorf("Progress = %d, want 1", output.Progress)
	}
	if !output.Completed {
		t.Error("binary habit should be completed after one log")
	}
	if output.Streak != 1 {
		t.Errorf("Streak = %d, want 1", output.Streak)
	}
}

func TestHandleLogHabitUndo(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if _, _, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String()}); err != nil {
		t.Fatalf("handleLogHabit failed: %v", err)
	}

	_, output, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String(), Undo: true})
	if err != nil {
		t.Fatalf("handleLogHabit undo failed: %v", err)
	}
	if output.Progress != 0 {
		t.Errorf("Progress after undo = %d, want 0", output.Progress)
	}
	if output.Completed {
		t.Error("habit should not be completed after undo")
	}
}

func TestHandleLogHabitUndoAtZeroRejected(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	_, _, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String(), Undo: true})
	if err == nil {
		t.Error("Expected error undoing with no completions")
	}
}

func TestHandleLogHabitNotFound(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	_, _, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: "deadbeef"})
	if err == nil {
		t.Error("Expected error for unknown habit")
	}
}

func TestHandleTodayHabits(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	_, output, err := server.handleTodayHabits(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("handleTodayHabits failed: %v", err)
	}

	states, ok := output.([]habitState)
	if !ok {
		t.Fatalf("Expected []habitState output, got %T", output)
	}
	if len(states) != 1 {
		t.Fatalf("Expected 1 habit due today, got %d", len(states))
	}
	if states[0].Name != "Read" {
		t.Errorf("Name = %q, want %q", states[0].Name, "Read")
	}
}

func TestHandleTodayHabitsEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	_, output, err := server.handleTodayHabits(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("handleTodayHabits failed: %v", err)
	}

	msg, ok := output.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected message map for empty store, got %T", output)
	}
	if msg["message"] == "" {
		t.Error("Expected a message for the empty case")
	}
}

func TestHandleListHabitsArchived(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Old", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := db.ArchiveHabit(h.ID.String()); err != nil {
		t.Fatalf("ArchiveHabit failed: %v", err)
	}

	_, output, err := server.handleListHabits(ctx, &mcp.CallToolRequest{}, listHabitsInput{Archived: true})
	if err != nil {
		t.Fatalf("handleListHabits failed: %v", err)
	}

	habits, ok := output.([]*models.Habit)
	if !ok {
		t.Fatalf("Expected []*models.Habit output, got %T", output)
	}
	if len(habits) != 1 {
		t.Errorf("Expected 1 archived habit, got %d", len(habits))
	}
}

func TestHandleGetHabit(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Water", models.FrequencyDaily, models.GoalNumeric).WithTarget(8)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	_, output, err := server.handleGetHabit(ctx, &mcp.CallToolRequest{}, getHabitInput{ID: h.ID.String()[:8]})
	if err != nil {
		t.Fatalf("handleGetHabit failed: %v", err)
	}

	state, ok := output.(*habitState)
	if !ok {
		t.Fatalf("Expected *habitState output, got %T", output)
	}
	if state.Target != 8 {
		t.Errorf("Target = %d, want 8", state.Target)
	}
	if state.Completed {
		t.Error("habit with no logs should not be completed")
	}
}

func TestHandleHabitLogs(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if _, _, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String()}); err != nil {
		t.Fatalf("handleLogHabit failed: %v", err)
	}

	_, output, err := server.handleHabitLogs(ctx, &mcp.CallToolRequest{}, habitLogsInput{ID: h.ID.String()})
	if err != nil {
		t.Fatalf("handleHabitLogs failed: %v", err)
	}

	logs, ok := output.([]*models.HabitLog)
	if !ok {
		t.Fatalf("Expected []*models.HabitLog output, got %T", output)
	}
	if len(logs) != 1 {
		t.Errorf("Expected 1 log, got %d", len(logs))
	}
}

func TestHandleArchiveHabit(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	_, output, err := server.handleArchiveHabit(ctx, &mcp.CallToolRequest{}, getHabitInput{ID: h.ID.String()})
	if err != nil {
		t.Fatalf("handleArchiveHabit failed: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected confirmation message")
	}

	got, err := db.GetHabit(h.ID.String())
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if !got.Archived {
		t.Error("habit should be archived")
	}
}

func TestHandleDeleteHabit(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if _, _, err := server.handleDeleteHabit(ctx, &mcp.CallToolRequest{}, getHabitInput{ID: h.ID.String()}); err != nil {
		t.Fatalf("handleDeleteHabit failed: %v", err)
	}

	if _, err := db.GetHabit(h.ID.String()); err == nil {
		t.Error("Expected habit to be gone after delete")
	}
}

func TestHandleTodayResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content item, got %d", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "Read") {
		t.Error("Expected habit name in resource text")
	}
}

func TestHandleSummaryResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	h := models.NewHabit("Read", models.FrequencyDaily, models.GoalBinary)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if _, _, err := server.handleLogHabit(ctx, &mcp.CallToolRequest{}, logHabitInput{ID: h.ID.String()}); err != nil {
		t.Fatalf("handleLogHabit failed: %v", err)
	}

	result, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleSummaryResource failed: %v", err)
	}
	text := result.Contents[0].Text
	if !strings.Contains(text, "completed_today") {
		t.Error("Expected completed_today in summary")
	}
	if !strings.Contains(text, "top_streaks") {
		t.Error("Expected top_streaks in summary")
	}
}

func TestHandleAllResourceEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	result, err := server.handleAllResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleAllResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content item, got %d", len(result.Contents))
	}
}
