// ABOUTME: MCP resource implementations for habit tracking.
// ABOUTME: Provides habits://today, habits://all, and habits://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// habits://today - Habits due today with progress and streaks
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "habits://today",
		Name:        "Today's Habits",
		Description: "Habits that should appear today with progress and streaks",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// habits://all - Every active habit with its evaluated state
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "habits://all",
		Name:        "All Habits",
		Description: "Every active habit with progress, streak, and visibility",
		MIMEType:    "application/json",
	}, s.handleAllResource)

	// habits://summary - Counts and streak highlights
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "habits://summary",
		Name:        "Habit Summary Dashboard",
		Description: "Habit counts, completions today, and the longest current streaks",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	states, err := s.evaluateAll(engine.ModeToday)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"date":   time.Now().UTC().Format("2006-01-02"),
		"habits": states,
		"count":  len(states),
	}

	return resourceJSON("habits://today", result)
}

func (s *Server) handleAllResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	states, err := s.evaluateAll(engine.ModeAll)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"habits": states,
		"count":  len(states),
	}

	return resourceJSON("habits://all", result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	states, err := s.evaluateAll(engine.ModeAll)
	if err != nil {
		return nil, err
	}

	archived, err := s.repo.ListHabits(true)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived habits: %w", err)
	}

	completedToday := 0
	var topStreaks []map[string]interface{}
	for _, st := range states {
		if st.Completed {
			completedToday++
		}
		if st.Streak > 0 {
			topStreaks = append(topStreaks, map[string]interface{}{
				"name":   st.Name,
				"streak": st.Streak,
			})
		}
	}

	// Keep the three longest streaks.
	for i := 0; i < len(topStreaks); i++ {
		for j := i + 1; j < len(topStreaks); j++ {
			if topStreaks[j]["streak"].(int) > topStreaks[i]["streak"].(int) {
				topStreaks[i], topStreaks[j] = topStreaks[j], topStreaks[i]
			}
		}
	}
	if len(topStreaks) > 3 {
		topStreaks = topStreaks[:3]
	}

	result := map[string]interface{}{
		"generated_at":    time.Now().Format(time.RFC3339),
		"active_count":    len(states),
		"archived_count":  len(archived),
		"completed_today": completedToday,
		"top_streaks":     topStreaks,
	}

	return resourceJSON("habits://summary", result)
}

func resourceJSON(uri string, result map[string]interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
