package execute

import "gitlab.com/code-round.net/internal/domain"

// ExecuteRequest is the body of POST /api/execute
type ExecuteRequest struct {
	Code         string `json:"code"`
	Language     string `json:"language"`
	ProblemID    string `json:"problemId"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	IsSubmission bool   `json:"isSubmission"`
}

// Team prefers teamId and accepts teamName from older clients
func (r ExecuteRequest) Team() string {
	if r.TeamID != "" {
		return r.TeamID
	}
	return r.TeamName
}

func (r ExecuteRequest) ToDomain() domain.ExecutionRequest {
	return domain.ExecutionRequest{
		Code:         r.Code,
		Language:     r.Language,
		ProblemID:    r.ProblemID,
		TeamID:       r.Team(),
		IsSubmission: r.IsSubmission,
	}
}
