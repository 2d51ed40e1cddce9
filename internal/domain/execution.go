package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the verdict of an execution or of a single test case
type Status string

const (
	StatusAccepted         Status = "Accepted"
	StatusWrongAnswer      Status = "Wrong Answer"
	StatusRuntimeError     Status = "Runtime Error"
	StatusCompilationError Status = "Compilation Error"
	StatusInvalid          Status = "Invalid"
	StatusError            Status = "Error"
)

const (
	// RedactedValue replaces input, expected and actual of hidden test cases.
	RedactedValue = "Hidden"
	// NoOutputValue is the actual value of a test case whose marker line is missing.
	NoOutputValue = "No Output"
	// ZeroScore is the score of outcomes that never reached per-test grading.
	ZeroScore = "0.00"
	FullScore = "100.00"
)

// ExecutionRequest is a single run or submit event
type ExecutionRequest struct {
	Code         string
	Language     string
	ProblemID    string
	TeamID       string
	IsSubmission bool
}

// TestResult is the externally visible verdict of one test case
type TestResult struct {
	Index    int    `json:"index"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Hidden   bool   `json:"hidden"`
	Status   Status `json:"status"`
}

// Metrics carries the elapsed time in milliseconds
type Metrics struct {
	Time float64 `json:"time"`
}

// ExecutionResult is the graded outcome of an execution request
type ExecutionResult struct {
	ID            uuid.UUID    `json:"executionId"`
	ProblemID     string       `json:"problemId"`
	Language      string       `json:"language"`
	Status        Status       `json:"status"`
	Output        string       `json:"output"`
	Results       []TestResult `json:"results"`
	Metrics       Metrics      `json:"metrics"`
	Score         string       `json:"score"`
	Documentation *string      `json:"documentation"`
	CompletedAt   time.Time    `json:"completedAt"`
}
