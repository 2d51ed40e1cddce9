package secondary

import (
	"context"

	"gitlab.com/code-round.net/internal/domain"
)

type JudgeClient interface {
	// Execute sends a harness to the remote judge and waits for its verdict
	Execute(ctx context.Context, source string, languageID int) (*domain.JudgeResponse, error)
}
