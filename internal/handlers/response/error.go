package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/code-round.net/internal/domain"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// ExecutionError has the shape of an execution result so clients parse one format.
type ExecutionError struct {
	Status  domain.Status       `json:"status"`
	Output  string              `json:"output"`
	Results []domain.TestResult `json:"results"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteExecutionError(w http.ResponseWriter, statusCode int, status domain.Status, output string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ExecutionError{
		Status:  status,
		Output:  output,
		Results: []domain.TestResult{},
	})
}
