package bucket

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
)

var _ IBucketService = (*BucketService)(nil)

const (
	anonymousTeam = "anonymous"
	// putAttempts bounds retries when another process already took the name.
	putAttempts = 3
)

var unsafeTeamChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

type BucketService struct {
	bucket secondary.SubmissionBucket
	clock  *Clock
	logger primary.Logger
}

// NewBucketService creates a new bucket service
func NewBucketService(bucket secondary.SubmissionBucket, clock *Clock, logger primary.Logger) *BucketService {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &BucketService{
		bucket: bucket,
		clock:  clock,
		logger: logger,
	}
}

// SanitizeTeam maps every character outside [a-z0-9] to '_' and lowercases the result.
func SanitizeTeam(teamID string) string {
	if teamID == "" {
		return anonymousTeam
	}
	return strings.ToLower(unsafeTeamChars.ReplaceAllString(teamID, "_"))
}

// Filename builds <problemID>_<timestamp>.<ext>
func Filename(problemID, stamp, language string) string {
	return fmt.Sprintf("%s_%s.%s", problemID, stamp, domain.ExtensionFor(language))
}

func (s *BucketService) Persist(ctx context.Context, isSubmission bool, teamID, problemID, language, rawCode string) *string {
	if !isSubmission {
		return nil
	}

	team := SanitizeTeam(teamID)
	var err error
	for attempt := 0; attempt < putAttempts; attempt++ {
		filename := Filename(problemID, s.clock.Stamp(), language)
		err = s.bucket.Put(ctx, team, filename, []byte(rawCode))
		if err == nil {
			s.logger.Info("Submission saved", "team", team, "problemId", problemID, "file", filename)
			return &filename
		}
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}

	s.logger.Error("Failed to save submission", "team", team, "problemId", problemID, "error", err)
	failed := SavingFailed
	return &failed
}
