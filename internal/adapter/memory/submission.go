package memory

import (
	"context"
	"sync"

	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
)

var _ secondary.SubmissionRepository = (*SubmissionLedger)(nil)

// SubmissionLedger keeps submissions in process when no database is configured
type SubmissionLedger struct {
	mu          sync.RWMutex
	submissions []*domain.Submission
}

func NewSubmissionLedger() *SubmissionLedger {
	return &SubmissionLedger{}
}

func (l *SubmissionLedger) SaveSubmission(_ context.Context, submission *domain.Submission) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.submissions = append(l.submissions, submission)
	return nil
}

func (l *SubmissionLedger) GetSubmissionsByTeam(_ context.Context, teamID string, limit int) ([]*domain.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Submission, 0)
	for i := len(l.submissions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if l.submissions[i].TeamID == teamID {
			out = append(out, l.submissions[i])
		}
	}
	return out, nil
}
