package secondary

import "context"

// SubmissionBucket stores raw submitted sources, one folder per team.
type SubmissionBucket interface {
	// Put writes the source under the team folder. It fails if the name is already taken.
	Put(ctx context.Context, team, filename string, source []byte) error
}
