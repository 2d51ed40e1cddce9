package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
)

var _ secondary.ResultRepository = (*ResultStore)(nil)

type cachedResult struct {
	result    *domain.ExecutionResult
	expiresAt time.Time
}

// ResultStore keeps results in process when Redis is not configured
type ResultStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	results map[uuid.UUID]cachedResult
	now     func() time.Time
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return &ResultStore{
		ttl:     ttl,
		results: make(map[uuid.UUID]cachedResult),
		now:     time.Now,
	}
}

// SaveResult also evicts expired entries
func (s *ResultStore) SaveResult(_ context.Context, result *domain.ExecutionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, cached := range s.results {
		if now.After(cached.expiresAt) {
			delete(s.results, id)
		}
	}
	s.results[result.ID] = cachedResult{result: result, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *ResultStore) GetResult(_ context.Context, executionID uuid.UUID) (*domain.ExecutionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.results[executionID]
	if !ok || s.now().After(cached.expiresAt) {
		return nil, nil
	}
	return cached.result, nil
}
