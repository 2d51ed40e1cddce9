package submissionrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
	querybuilder "gitlab.com/code-round.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

const createTable = `
	CREATE TABLE IF NOT EXISTS %s.submissions (
		id           UUID PRIMARY KEY,
		team_id      TEXT NOT NULL,
		problem_id   TEXT NOT NULL,
		language     TEXT NOT NULL,
		status       TEXT NOT NULL,
		score        TEXT NOT NULL,
		document     TEXT,
		submitted_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS submissions_team_submitted_idx
		ON %s.submissions (team_id, submitted_at DESC);
`

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// EnsureSchema creates the submissions table when missing
func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(createTable, r.schema, r.schema)); err != nil {
		r.logger.Error("Failed to create submissions table", "error", err)
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}

func insertQuery(schema string, s *domain.Submission) (string, []interface{}, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(schema).
		Insert(
			tbl.ID, tbl.TeamID, tbl.ProblemID, tbl.Language,
			tbl.Status, tbl.Score, tbl.Document, tbl.SubmittedAt,
		).
		Into(tbl.TableName()).
		Values(
			s.ID, s.TeamID, s.ProblemID, s.Language,
			string(s.Status), s.Score, s.Document, s.SubmittedAt,
		).
		OnConflict(tbl.ID).
		DoNothing().
		Build()
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

func selectByTeamQuery(schema, teamID string, limit int) (string, []interface{}, error) {
	tbl := domain.GetSubmissionTable()
	query, args, err := querybuilder.NewQueryBuilder(schema).
		Select(
			tbl.ID, tbl.TeamID, tbl.ProblemID, tbl.Language,
			tbl.Status, tbl.Score, tbl.Document, tbl.SubmittedAt,
		).
		From(tbl.TableName()).
		Where(tbl.TeamID+" = ?", teamID).
		OrderBy(tbl.SubmittedAt, false).
		Limit(limit).
		Build()
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

// SaveSubmission appends a ledger row, replays of the same id are ignored
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, submission *domain.Submission) error {
	query, args, err := insertQuery(r.schema, submission)
	if err != nil {
		return fmt.Errorf("failed to build submission insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "submissionId", submission.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetSubmissionsByTeam(ctx context.Context, teamID string, limit int) ([]*domain.Submission, error) {
	query, args, err := selectByTeamQuery(r.schema, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build submission query: %w", err)
	}

	submissions := make([]*domain.Submission, 0)
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		r.logger.Error("Failed to get submissions", "team", teamID, "error", err)
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return submissions, nil
}
