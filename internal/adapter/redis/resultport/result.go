package resultport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
)

const resultKeyPrefix = "execution:result:"

var _ secondary.ResultRepository = (*ResultRepository)(nil)

// ResultRepository implements the ResultRepository interface with Redis
type ResultRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

// NewResultRepository creates a new Redis result repository
func NewResultRepository(redisClient *redis.Client, ttl time.Duration, logger primary.Logger) *ResultRepository {
	return &ResultRepository{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func resultKey(id uuid.UUID) string {
	return resultKeyPrefix + id.String()
}

// SaveResult stores the result as JSON, expiring after the configured TTL
func (r *ResultRepository) SaveResult(ctx context.Context, result *domain.ExecutionResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal result", "error", err)
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := r.redisClient.Set(ctx, resultKey(result.ID), resultJSON, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save result", "executionId", result.ID, "error", err)
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResult returns nil when the result is unknown or expired
func (r *ResultRepository) GetResult(ctx context.Context, executionID uuid.UUID) (*domain.ExecutionResult, error) {
	resultJSON, err := r.redisClient.Get(ctx, resultKey(executionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to get result", "executionId", executionID, "error", err)
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result domain.ExecutionResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		r.logger.Error("Failed to unmarshal result", "executionId", executionID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}
