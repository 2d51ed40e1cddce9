package harness

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/code-round.net/internal/adapter/catalog"
	"gitlab.com/code-round.net/internal/adapter/logging"
	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/services/grading"
	"gitlab.com/code-round.net/internal/domain"
)

const pythonTwoSum = `
def twoSum(nums, target):
    seen = {}
    for i, n in enumerate(nums):
        if target - n in seen:
            return [seen[target - n], i]
        seen[n] = i
    return []
`

const pythonTwoSumClass = `
class Solution:
    def twoSum(self, nums, target):
        seen = {}
        for i, n in enumerate(nums):
            if target - n in seen:
                return [seen[target - n], i]
            seen[n] = i
        return []
`

const jsTwoSum = `
function twoSum(nums, target) {
  const seen = new Map();
  for (let i = 0; i < nums.length; i++) {
    if (seen.has(target - nums[i])) return [seen.get(target - nums[i]), i];
    seen.set(nums[i], i);
  }
  return [];
}
`

const jsTwoSumClass = `
class Solution {
  twoSum(nums, target) {
    const seen = new Map();
    for (let i = 0; i < nums.length; i++) {
      if (seen.has(target - nums[i])) return [seen.get(target - nums[i]), i];
      seen.set(nums[i], i);
    }
    return [];
  }
}
`

// runHarness executes the wrapped source locally and shapes the streams like a judge response.
func runHarness(t *testing.T, interpreter, file, source string) *domain.JudgeResponse {
	t.Helper()
	bin, err := exec.LookPath(interpreter)
	if err != nil {
		t.Skipf("%s not installed", interpreter)
	}

	path := filepath.Join(t.TempDir(), file)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("%s failed: %v\n%s", interpreter, err, stderr.String())
	}

	out := base64.StdEncoding.EncodeToString(stdout.Bytes())
	errOut := base64.StdEncoding.EncodeToString(stderr.Bytes())
	return &domain.JudgeResponse{
		Status: domain.JudgeStatus{ID: domain.JudgeStatusAccepted, Description: "Accepted"},
		Stdout: &out,
		Stderr: &errOut,
	}
}

func TestGeneratedHarnessesGradeAccepted(t *testing.T) {
	registry, err := catalog.NewCatalog(&config.CatalogConfig{DefaultProblemID: "two-sum"})
	if err != nil {
		t.Fatal(err)
	}
	problem := registry.Get("two-sum")
	compiler := newTestCompiler(t)
	grader := grading.NewGrader(logging.NewNopLogger())

	tests := []struct {
		name        string
		language    string
		interpreter string
		file        string
		code        string
	}{
		{"python function", "python", "python3", "main.py", pythonTwoSum},
		{"python class", "python", "python3", "main.py", pythonTwoSumClass},
		{"javascript function", "javascript", "node", "main.js", jsTwoSum},
		{"javascript class", "javascript", "node", "main.js", jsTwoSumClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := compiler.Wrap(tt.code, tt.language, problem)
			resp := runHarness(t, tt.interpreter, tt.file, source)

			got := grader.Interpret(resp, problem)

			if got.Status != domain.StatusAccepted || got.Score != domain.FullScore {
				t.Fatalf("status = %q score = %q, output:\n%s", got.Status, got.Score, got.Output)
			}
			if len(got.Results) != len(problem.TestCases) {
				t.Fatalf("results = %d, want %d", len(got.Results), len(problem.TestCases))
			}
			if strings.Contains(got.Output, "METRICS:") {
				t.Fatalf("metrics line left in output %q", got.Output)
			}
		})
	}
}

func TestWrapInterpretedTemplatesFallBackToSolutionClass(t *testing.T) {
	c := newTestCompiler(t)
	fallbacks := map[string]string{
		"javascript": "new Solution()",
		"typescript": `lookup("Solution")`,
		"python":     `globals()["Solution"]()`,
	}
	for lang, want := range fallbacks {
		out := c.Wrap("class Solution {}", lang, twoSumProblem())
		if !strings.Contains(out, want) {
			t.Fatalf("%s harness lacks %s:\n%s", lang, want, out)
		}
	}
}
