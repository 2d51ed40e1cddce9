// Package bucket stores the raw source of submissions, one folder per team.
package bucket

import "context"

// SavingFailed is returned in place of a filename when the write did not succeed.
const SavingFailed = "error_saving"

// IBucketService is the persistence gate in front of the submission bucket
type IBucketService interface {
	// Persist stores rawCode when isSubmission is set and returns the stored
	// filename, SavingFailed on error, or nil when nothing had to be stored.
	Persist(ctx context.Context, isSubmission bool, teamID, problemID, language, rawCode string) *string
}
