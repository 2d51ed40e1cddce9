package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a ledger row written for every graded submit event
type Submission struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TeamID      string    `db:"team_id" json:"teamId"`
	ProblemID   string    `db:"problem_id" json:"problemId"`
	Language    string    `db:"language" json:"language"`
	Status      Status    `db:"status" json:"status"`
	Score       string    `db:"score" json:"score"`
	Document    *string   `db:"document" json:"documentation"`
	SubmittedAt time.Time `db:"submitted_at" json:"submittedAt"`
}

type SubmissionTable struct {
	ID          string
	TeamID      string
	ProblemID   string
	Language    string
	Status      string
	Score       string
	Document    string
	SubmittedAt string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:          "id",
		TeamID:      "team_id",
		ProblemID:   "problem_id",
		Language:    "language",
		Status:      "status",
		Score:       "score",
		Document:    "document",
		SubmittedAt: "submitted_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

// NewSubmission creates a ledger row from a graded submission
func NewSubmission(req ExecutionRequest, result *ExecutionResult) *Submission {
	return &Submission{
		ID:          result.ID,
		TeamID:      req.TeamID,
		ProblemID:   result.ProblemID,
		Language:    req.Language,
		Status:      result.Status,
		Score:       result.Score,
		Document:    result.Documentation,
		SubmittedAt: result.CompletedAt,
	}
}
