package grading

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/domain"
)

var _ IGrader = (*Grader)(nil)

var (
	metricsPattern = regexp.MustCompile(`METRICS: TIME=([\d.]+)ms`)
	// matches result markers on stdout and failure lines on stderr
	caseLinePattern = regexp.MustCompile(`Test Case (\d+)(?:: | )`)
)

// Grader is stateless apart from its logger
type Grader struct {
	logger primary.Logger
}

// NewGrader creates a new grader
func NewGrader(logger primary.Logger) *Grader {
	return &Grader{logger: logger}
}

// Interpret applies, in order: compilation failure, runtime failure without
// output, then per-test marker matching. Hidden cases are redacted, in the
// results and in the returned output, but still scored.
func (g *Grader) Interpret(resp *domain.JudgeResponse, problem domain.Problem) *domain.ExecutionResult {
	result := &domain.ExecutionResult{
		ProblemID: problem.ID,
		Results:   []domain.TestResult{},
		Score:     domain.ZeroScore,
	}
	if resp == nil {
		result.Status = domain.StatusError
		result.Output = "Empty response from judge"
		return result
	}

	if resp.Status.ID == domain.JudgeStatusCompilationError {
		result.Status = domain.StatusCompilationError
		result.Output = g.decode("compile_output", resp.CompileOutput)
		return result
	}

	stdout := g.decode("stdout", resp.Stdout)
	stderr := g.decode("stderr", resp.Stderr)
	hidden := hiddenIndexes(problem)

	if stdout == "" && stderr != "" {
		result.Status = domain.StatusRuntimeError
		result.Output = redactHidden(strings.TrimRight(stderr, "\n"), hidden)
		return result
	}

	output, elapsed, found := extractMetrics(stdout)
	if !found {
		elapsed = judgeMillis(resp.Time)
	}
	result.Metrics.Time = elapsed

	// solutions that throw still let the harness finish, their trace is only on stderr
	result.Output = redactHidden(joinStreams(output, stderr), hidden)

	lines := strings.Split(stdout, "\n")
	passed := 0
	for i, tc := range problem.TestCases {
		tr := grade(i, tc, lines)
		if tr.Status == domain.StatusAccepted {
			passed++
		}
		if tc.Hidden {
			tr.Input = domain.RedactedValue
			tr.Expected = domain.RedactedValue
			tr.Actual = domain.RedactedValue
		}
		result.Results = append(result.Results, tr)
	}

	total := len(problem.TestCases)
	if total > 0 && passed == total {
		result.Status = domain.StatusAccepted
	} else {
		result.Status = domain.StatusWrongAnswer
	}
	result.Score = Score(passed, total)
	return result
}

func grade(i int, tc domain.TestCase, lines []string) domain.TestResult {
	tr := domain.TestResult{
		Index:    i + 1,
		Input:    tc.Input,
		Expected: tc.Expected,
		Hidden:   tc.Hidden,
	}
	actual, ok := findMarker(lines, i+1)
	if !ok {
		tr.Actual = domain.NoOutputValue
		tr.Status = domain.StatusRuntimeError
		return tr
	}
	tr.Actual = actual
	if Normalize(actual) == Normalize(tc.Expected) {
		tr.Status = domain.StatusAccepted
	} else {
		tr.Status = domain.StatusWrongAnswer
	}
	return tr
}

// findMarker returns the trimmed remainder of the first line carrying the
// "Test Case <n>: " marker.
func findMarker(lines []string, n int) (string, bool) {
	marker := fmt.Sprintf("Test Case %d: ", n)
	for _, line := range lines {
		if idx := strings.Index(line, marker); idx >= 0 {
			return strings.TrimSpace(line[idx+len(marker):]), true
		}
	}
	return "", false
}

// Normalize removes every whitespace rune. It is the only leniency of the comparison.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Score formats passed/total as a percentage with two decimals.
func Score(passed, total int) string {
	if total <= 0 {
		return domain.ZeroScore
	}
	return strconv.FormatFloat(float64(passed)/float64(total)*100, 'f', 2, 64)
}

// extractMetrics reads the first METRICS line and returns the output without it.
func extractMetrics(stdout string) (string, float64, bool) {
	lines := strings.Split(stdout, "\n")
	for i, line := range lines {
		m := metricsPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ms, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		rest := append(lines[:i:i], lines[i+1:]...)
		return strings.TrimRight(strings.Join(rest, "\n"), "\n"), ms, true
	}
	return strings.TrimRight(stdout, "\n"), 0, false
}

func hiddenIndexes(problem domain.Problem) map[int]bool {
	hidden := make(map[int]bool)
	for i, tc := range problem.TestCases {
		if tc.Hidden {
			hidden[i+1] = true
		}
	}
	return hidden
}

// redactHidden cuts every line that reports a hidden case right after its marker.
func redactHidden(text string, hidden map[int]bool) string {
	if len(hidden) == 0 || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := caseLinePattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(line[m[2]:m[3]])
		if err != nil || !hidden[n] {
			continue
		}
		lines[i] = line[:m[1]] + domain.RedactedValue
	}
	return strings.Join(lines, "\n")
}

func joinStreams(stdout, stderr string) string {
	stderr = strings.TrimRight(stderr, "\n")
	switch {
	case stderr == "":
		return stdout
	case stdout == "":
		return stderr
	default:
		return stdout + "\n" + stderr
	}
}

func judgeMillis(seconds *string) float64 {
	if seconds == nil || *seconds == "" {
		return 0
	}
	s, err := strconv.ParseFloat(*seconds, 64)
	if err != nil {
		return 0
	}
	return s * 1000
}

// decode reads a base64 judge stream. Judge0 wraps long payloads across lines.
func (g *Grader) decode(field string, value *string) string {
	if value == nil || *value == "" {
		return ""
	}
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, *value)
	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		g.logger.Warn("Failed to decode judge stream, using it verbatim", "field", field, "error", err)
		return *value
	}
	return string(raw)
}
