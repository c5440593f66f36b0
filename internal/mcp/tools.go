// ABOUTME: MCP tool implementations for habit tracking.
// ABOUTME: Provides habit CRUD, completion logging, and today-view tools.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// create_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_habit",
		Description: "Create a new habit with a daily, weekly, or monthly cadence",
	}, s.handleCreateHabit)

	// log_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_habit",
		Description: "Log a completion for a habit, or undo one with undo=true",
	}, s.handleLogHabit)

	// today_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "today_habits",
		Description: "List the habits that should appear today with progress and streaks",
	}, s.handleTodayHabits)

	// list_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List all habits, optionally including archived ones",
	}, s.handleListHabits)

	// get_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_habit",
		Description: "Get one habit with its current progress, streak, and completion state",
	}, s.handleGetHabit)

	// habit_logs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "habit_logs",
		Description: "List recent completion logs for a habit",
	}, s.handleHabitLogs)

	// archive_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "archive_habit",
		Description: "Archive a habit, keeping its history",
	}, s.handleArchiveHabit)

	// delete_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit and all its logs",
	}, s.handleDeleteHabit)
}

// Tool input/output types

type createHabitInput struct {
	Name         string `json:"name" jsonschema:"Habit name"`
	Frequency    string `json:"frequency" jsonschema:"Cadence (daily, weekly, monthly)"`
	Description  string `json:"description,omitempty" jsonschema:"Optional description"`
	Target       int    `json:"target,omitempty" jsonschema:"Completions needed per period (default 1)"`
	StreakTarget int    `json:"streak_target,omitempty" jsonschema:"Consecutive days after which the habit is permanently achieved"`
	EndDate      string `json:"end_date,omitempty" jsonschema:"Date (YYYY-MM-DD) after which the habit ends"`
	AllowedGaps  int    `json:"allowed_gaps,omitempty" jsonschema:"Missed days a daily streak tolerates (default 1)"`
}

type habitOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Message   string `json:"message"`
}

type logHabitInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or prefix"`
	Undo bool   `json:"undo,omitempty" jsonschema:"Undo one completion instead of adding one"`
}

type logHabitOutput struct {
	ID        string `json:"id"`
	Progress  int    `json:"progress"`
	Target    int    `json:"target"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
	Message   string `json:"message"`
}

type listHabitsInput struct {
	Archived bool `json:"archived,omitempty" jsonschema:"List archived habits instead of active ones"`
}

type getHabitInput struct {
	ID string `json:"id" jsonschema:"Habit ID or prefix"`
}

type habitLogsInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or prefix"`
	Days int    `json:"days,omitempty" jsonschema:"How many days back to list (default 30)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type habitState struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Frequency    string `json:"frequency"`
	Progress     int    `json:"progress"`
	Target       int    `json:"target"`
	Completed    bool   `json:"completed"`
	Streak       int    `json:"streak"`
	AppearsToday bool   `json:"appears_today"`
}

// Tool handlers

func (s *Server) handleCreateHabit(ctx context.Context, req *mcp.CallToolRequest, input createHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	frequency, err := models.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("unknown frequency: %s", input.Frequency)
	}

	goal := models.GoalBinary
	if input.Target > 1 {
		goal = models.GoalNumeric
	}

	h := models.NewHabit(input.Name, frequency, goal)
	if input.Description != "" {
		h.WithDescription(input.Description)
	}
	if input.Target > 1 {
		h.WithTarget(input.Target)
	}
	if input.StreakTarget > 0 {
		h.WithStreakTarget(input.StreakTarget)
	}
	if input.EndDate != "" {
		end, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return nil, habitOutput{}, fmt.Errorf("invalid end date: %s", input.EndDate)
		}
		h.WithEndDate(end)
	}
	if input.AllowedGaps > 0 {
		h.WithAllowedGaps(input.AllowedGaps)
	}

	if err := s.repo.CreateHabit(h); err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to create habit: %w", err)
	}

	return nil, habitOutput{
		ID:        h.ID.String()[:8],
		Name:      h.Name,
		Frequency: string(h.Frequency),
		Message:   fmt.Sprintf("Created %s habit %q (ID: %s)", h.Frequency, h.Name, h.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogHabit(ctx context.Context, req *mcp.CallToolRequest, input logHabitInput) (*mcp.CallToolResult, logHabitOutput, error) {
	h, err := s.repo.GetHabit(input.ID)
	if err != nil {
		return nil, logHabitOutput{}, fmt.Errorf("habit not found: %s", input.ID)
	}

	now := time.Now()
	if input.Undo {
		progress, err := s.eval.CurrentProgress(h, now)
		if err != nil {
			return nil, logHabitOutput{}, fmt.Errorf("failed to read progress: %w", err)
		}
		if progress <= 0 {
			return nil, logHabitOutput{}, fmt.Errorf("nothing to undo for %q", h.Name)
		}
	}

	if _, err := s.recorder.Record(h, now, input.Undo); err != nil {
		return nil, logHabitOutput{}, fmt.Errorf("failed to log habit: %w", err)
	}

	progress, err := s.eval.CurrentProgress(h, now)
	if err != nil {
		return nil, logHabitOutput{}, fmt.Errorf("failed to read progress: %w", err)
	}
	streak, err := s.eval.Streak(h, now)
	if err != nil {
		return nil, logHabitOutput{}, fmt.Errorf("failed to read streak: %w", err)
	}

	verb := "Logged"
	if input.Undo {
		verb = "Undid"
	}
	return nil, logHabitOutput{
		ID:        h.ID.String()[:8],
		Progress:  progress,
		Target:    h.Target(),
		Completed: progress >= h.Target(),
		Streak:    streak,
		Message:   fmt.Sprintf("%s %q: %d/%d this %s, streak %d", verb, h.Name, progress, h.Target(), h.Frequency, streak),
	}, nil
}

func (s *Server) handleTodayHabits(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	results, err := s.evaluateAll(engine.ModeToday)
	if err != nil {
		return nil, nil, err
	}
	if len(results) == 0 {
		return nil, map[string]interface{}{"message": "Nothing due today."}, nil
	}
	return nil, results, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, any, error) {
	if input.Archived {
		habits, err := s.repo.ListHabits(true)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list habits: %w", err)
		}
		if len(habits) == 0 {
			return nil, map[string]interface{}{"message": "No archived habits."}, nil
		}
		return nil, habits, nil
	}

	results, err := s.evaluateAll(engine.ModeAll)
	if err != nil {
		return nil, nil, err
	}
	if len(results) == 0 {
		return nil, map[string]interface{}{"message": "No habits found."}, nil
	}
	return nil, results, nil
}

func (s *Server) handleGetHabit(ctx context.Context, req *mcp.CallToolRequest, input getHabitInput) (*mcp.CallToolResult, any, error) {
	h, err := s.repo.GetHabit(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("habit not found: %s", input.ID)
	}

	state, err := s.stateFor(h, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return nil, state, nil
}

func (s *Server) handleHabitLogs(ctx context.Context, req *mcp.CallToolRequest, input habitLogsInput) (*mcp.CallToolResult, any, error) {
	h, err := s.repo.GetHabit(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("habit not found: %s", input.ID)
	}

	days := input.Days
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	logs, err := s.repo.ListLogs(h.ID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list logs: %w", err)
	}
	if len(logs) == 0 {
		return nil, map[string]interface{}{"message": "No logs in range."}, nil
	}
	return nil, logs, nil
}

func (s *Server) handleArchiveHabit(ctx context.Context, req *mcp.CallToolRequest, input getHabitInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.ArchiveHabit(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to archive habit: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Archived habit: %s", input.ID),
	}, nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input getHabitInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteHabit(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit: %s", input.ID),
	}, nil
}

// evaluateAll runs a batch evaluation over all active habits.
func (s *Server) evaluateAll(mode engine.Mode) ([]habitState, error) {
	habits, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	ids := make([]uuid.UUID, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	logs, err := s.repo.BulkFetchLogs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	results, err := engine.NewBatch(habits, logs).Evaluate(time.Now(), mode)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate habits: %w", err)
	}

	states := make([]habitState, 0, len(results))
	for _, r := range results {
		states = append(states, habitState{
			ID:           r.Habit.ID.String()[:8],
			Name:         r.Habit.Name,
			Frequency:    string(r.Habit.Frequency),
			Progress:     r.Progress,
			Target:       r.Habit.Target(),
			Completed:    r.Completed,
			Streak:       r.Streak,
			AppearsToday: r.AppearsToday,
		})
	}
	return states, nil
}

// stateFor evaluates one habit directly against the store.
func (s *Server) stateFor(h *models.Habit, now time.Time) (*habitState, error) {
	progress, err := s.eval.CurrentProgress(h, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}
	streak, err := s.eval.Streak(h, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read streak: %w", err)
	}
	appears, err := s.eval.ShouldAppearToday(h, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute visibility: %w", err)
	}

	return &habitState{
		ID:           h.ID.String()[:8],
		Name:         h.Name,
		Frequency:    string(h.Frequency),
		Progress:     progress,
		Target:       h.Target(),
		Completed:    progress >= h.Target(),
		Streak:       streak,
		AppearsToday: appears,
	}, nil
}
