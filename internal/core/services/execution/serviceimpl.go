package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/core/services/bucket"
	"gitlab.com/code-round.net/internal/core/services/grading"
	"gitlab.com/code-round.net/internal/core/services/harness"
	"gitlab.com/code-round.net/internal/core/services/validator"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/static/errs"
)

var _ IExecutionService = (*ExecutionService)(nil)

// DefaultSubmissionLimit applies when the caller does not ask for a page size
const DefaultSubmissionLimit = 50

// ExecutionService implements the IExecutionService interface
type ExecutionService struct {
	problems    secondary.ProblemRegistry
	compiler    harness.ICompiler
	judge       secondary.JudgeClient
	grader      grading.IGrader
	bucket      bucket.IBucketService
	results     secondary.ResultRepository
	submissions secondary.SubmissionRepository
	logger      primary.Logger
	now         func() time.Time
}

// NewExecutionService creates a new execution service
func NewExecutionService(
	problems secondary.ProblemRegistry,
	compiler harness.ICompiler,
	judge secondary.JudgeClient,
	grader grading.IGrader,
	bucketService bucket.IBucketService,
	results secondary.ResultRepository,
	submissions secondary.SubmissionRepository,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		problems:    problems,
		compiler:    compiler,
		judge:       judge,
		grader:      grader,
		bucket:      bucketService,
		results:     results,
		submissions: submissions,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute runs the request end to end. Validation, unsupported language and
// dispatch failures are returned as errors, every graded outcome as a result.
func (s *ExecutionService) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	if err := validator.Validate(req.Code, req.Language); err != nil {
		s.logger.Info("Code rejected", "team", req.TeamID, "language", req.Language, "error", err)
		return nil, err
	}

	lang, ok := domain.LookupLanguage(req.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, req.Language)
	}

	problem := s.problems.Get(req.ProblemID)
	source := s.compiler.Wrap(req.Code, lang.Name, problem)

	s.logger.Info("Dispatching execution",
		"problemId", problem.ID,
		"language", lang.Name,
		"submission", req.IsSubmission)

	start := s.now()
	resp, err := s.judge.Execute(ctx, source, lang.JudgeID)
	if err != nil {
		s.logger.Error("Failed to dispatch to judge", "problemId", problem.ID, "language", lang.Name, "error", err)
		return nil, fmt.Errorf("failed to execute code: %w", err)
	}

	result := s.grader.Interpret(resp, problem)
	result.ID = uuid.New()
	result.Language = lang.Name
	result.CompletedAt = s.now().UTC()
	result.Documentation = s.bucket.Persist(ctx, req.IsSubmission, req.TeamID, problem.ID, lang.Name, req.Code)

	s.logger.Info("Execution graded",
		"executionId", result.ID,
		"problemId", problem.ID,
		"status", result.Status,
		"score", result.Score,
		"elapsed", s.now().Sub(start))

	s.record(ctx, req, result)
	return result, nil
}

// record keeps the result and the ledger row. Both are best effort.
func (s *ExecutionService) record(ctx context.Context, req domain.ExecutionRequest, result *domain.ExecutionResult) {
	if err := s.results.SaveResult(ctx, result); err != nil {
		s.logger.Warn("Failed to cache result", "executionId", result.ID, "error", err)
	}
	if !req.IsSubmission {
		return
	}
	submission := domain.NewSubmission(req, result)
	submission.TeamID = bucket.SanitizeTeam(req.TeamID)
	if err := s.submissions.SaveSubmission(ctx, submission); err != nil {
		s.logger.Warn("Failed to record submission", "executionId", result.ID, "error", err)
	}
}

// GetResult returns errs.ErrNotFound for unknown or expired ids
func (s *ExecutionService) GetResult(ctx context.Context, executionID uuid.UUID) (*domain.ExecutionResult, error) {
	result, err := s.results.GetResult(ctx, executionID)
	if err != nil {
		s.logger.Error("Failed to get result", "executionId", executionID, "error", err)
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("execution %s: %w", executionID, errs.ErrNotFound)
	}
	return result, nil
}

func (s *ExecutionService) GetTeamSubmissions(ctx context.Context, teamID string, limit int) ([]*domain.Submission, error) {
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}
	team := bucket.SanitizeTeam(teamID)
	submissions, err := s.submissions.GetSubmissionsByTeam(ctx, team, limit)
	if err != nil {
		s.logger.Error("Failed to get submissions", "team", team, "error", err)
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return submissions, nil
}
