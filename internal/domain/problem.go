package domain

import (
	"encoding/json"
	"fmt"
)

// TestCase represents a single graded case of a problem
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hidden   bool   `json:"hidden"`
	Params   Params `json:"params"`
}

// Problem is immutable once the registry is loaded. Test case order is significant:
// the position decides the marker line and the index shown to users.
type Problem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	FunctionName string     `json:"functionName"`
	TestCases    []TestCase `json:"testCases"`
}

// ParamsJSON serializes the params of every test case, hidden ones included.
func (p Problem) ParamsJSON() (string, error) {
	params := make([]Params, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		params = append(params, tc.Params)
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to serialize test cases of %s: %w", p.ID, err)
	}
	return string(raw), nil
}

// PublicTestCase is the view of a test case exposed before execution.
type PublicTestCase struct {
	Index    int    `json:"index"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// PublicProblem is the problem as listed to candidates, hidden cases are only counted.
type PublicProblem struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	FunctionName string           `json:"functionName"`
	Examples     []PublicTestCase `json:"examples"`
	HiddenCount  int              `json:"hiddenCount"`
	TotalCount   int              `json:"totalCount"`
}

// Public strips hidden test cases from the problem.
func (p Problem) Public() PublicProblem {
	view := PublicProblem{
		ID:           p.ID,
		Title:        p.Title,
		FunctionName: p.FunctionName,
		Examples:     make([]PublicTestCase, 0, len(p.TestCases)),
		TotalCount:   len(p.TestCases),
	}
	for i, tc := range p.TestCases {
		if tc.Hidden {
			view.HiddenCount++
			continue
		}
		view.Examples = append(view.Examples, PublicTestCase{
			Index:    i + 1,
			Input:    tc.Input,
			Expected: tc.Expected,
		})
	}
	return view
}
