package mcp

import (
	"context"

	"github.com/meltforce/liftlog/internal/api"
)

// DataSource abstracts the training-data reads the MCP tools need. The API
// client satisfies it directly; tests substitute a fake.
type DataSource interface {
	ListExercises(ctx context.Context) ([]api.Exercise, error)
	GetExerciseHistory(ctx context.Context, exerciseID int64) ([]api.ExerciseSessionHistory, error)
	GetExerciseSummary(ctx context.Context, exerciseID int64) (*api.ExerciseSummary, error)
	ListSessions(ctx context.Context, templateID *int64) ([]api.SessionSummary, error)
}

// Compile-time check: *api.Client satisfies DataSource.
var _ DataSource = (*api.Client)(nil)
