package secondary

import "gitlab.com/code-round.net/internal/domain"

// ProblemRegistry is the read-only problem catalog, loaded once at start.
type ProblemRegistry interface {
	// Get returns the problem, or the default problem when the id is unknown
	Get(problemID string) domain.Problem

	// Lookup returns the problem only when the id is known
	Lookup(problemID string) (domain.Problem, bool)

	// List returns every problem ordered by id
	List() []domain.Problem
}
