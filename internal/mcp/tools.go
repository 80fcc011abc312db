package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercise definitions with their IDs. Use the IDs with get_exercise_history and get_exercise_summary."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-session performance history for one exercise: date, per-set reps/weight/Epley score, and the exercise's total score that session. Ordered oldest first."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise definition ID (see list_exercises)")),
)

var toolGetExerciseSummary = mcp.NewTool("get_exercise_summary",
	mcp.WithDescription("All-time statistics for one exercise: session/set counts, total volume, best set, average session score, last performed."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise definition ID (see list_exercises)")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Completed workout sessions with their Epley-based scores, newest first. Filter by template to track progression of one workout type (e.g. 'Push Day A')."),
	mcp.WithNumber("template_id", mcp.Description("Filter to sessions started from this template")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	history, err := h.ds.GetExerciseHistory(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	summary, err := h.ds.GetExerciseSummary(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_exercise_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var templateID *int64
	if id := req.GetInt("template_id", 0); id != 0 {
		v := int64(id)
		templateID = &v
	}

	sessions, err := h.ds.ListSessions(ctx, templateID)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
