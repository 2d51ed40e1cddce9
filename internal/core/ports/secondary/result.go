package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/domain"
)

// ResultRepository defines the interface for storing and retrieving execution results
type ResultRepository interface {
	// SaveResult saves an execution result
	SaveResult(ctx context.Context, result *domain.ExecutionResult) error

	// GetResult retrieves an execution result by execution ID, nil when absent
	GetResult(ctx context.Context, executionID uuid.UUID) (*domain.ExecutionResult, error)
}
