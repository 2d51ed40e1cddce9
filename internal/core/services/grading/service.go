// Package grading turns the raw judge verdict into per-test results and a score.
package grading

import (
	"gitlab.com/code-round.net/internal/domain"
)

// IGrader interprets judge responses
type IGrader interface {
	// Interpret grades the judge response against every test case of the problem
	Interpret(resp *domain.JudgeResponse, problem domain.Problem) *domain.ExecutionResult
}
