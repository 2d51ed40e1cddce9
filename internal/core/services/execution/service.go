package execution

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/domain"
)

// IExecutionService defines the run and submit flow
type IExecutionService interface {
	// Execute validates, wraps, dispatches and grades the code. Submissions are also persisted.
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error)

	// GetResult retrieves a recent execution result by ID
	GetResult(ctx context.Context, executionID uuid.UUID) (*domain.ExecutionResult, error)

	// GetTeamSubmissions lists the graded submissions of a team, newest first
	GetTeamSubmissions(ctx context.Context, teamID string, limit int) ([]*domain.Submission, error)
}
