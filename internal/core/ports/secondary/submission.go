package secondary

import (
	"context"

	"gitlab.com/code-round.net/internal/domain"
)

type SubmissionRepository interface {
	// SaveSubmission appends a graded submission to the ledger
	SaveSubmission(ctx context.Context, submission *domain.Submission) error

	// GetSubmissionsByTeam lists the team's submissions, newest first
	GetSubmissionsByTeam(ctx context.Context, teamID string, limit int) ([]*domain.Submission, error)
}
