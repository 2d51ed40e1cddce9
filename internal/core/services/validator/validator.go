// Package validator is a coarse textual pre-flight filter on submitted code.
//
// It is not a security boundary: it only saves a judge round trip for obviously
// unwanted submissions. Isolation of untrusted code is entirely the remote judge's job.
package validator

import (
	"fmt"
	"strings"

	"gitlab.com/code-round.net/internal/static/errs"
)

// forbidden substrings: process termination, process spawning, OS command
// execution, dynamic evaluation and dynamic module loading.
var forbidden = []string{
	"process.exit",
	"exec(",
	"spawn(",
	"os.system",
	"eval(",
	"__import__",
}

// Validate rejects empty code and code containing a denylisted substring.
// The denylist applies to every language alike.
func Validate(code, language string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: empty code", errs.ErrValidation)
	}
	for _, f := range forbidden {
		if strings.Contains(code, f) {
			return fmt.Errorf("%w: restricted content %q", errs.ErrValidation, f)
		}
	}
	return nil
}

// Forbidden returns a copy of the denylist.
func Forbidden() []string {
	out := make([]string, len(forbidden))
	copy(out, forbidden)
	return out
}
