package harness

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gitlab.com/code-round.net/internal/domain"
)

// RunnerKey selects the runner of a compiled language for one problem.
type RunnerKey struct {
	ProblemID string
	Language  string
}

// RunnerFunc renders statements that call the candidate's function with literal
// arguments for every test case and print one marker line per case.
type RunnerFunc func(problem domain.Problem) (string, error)

// RunnerTable maps (problem, language) to its runner. Adding a problem means
// adding one entry per compiled language that must support it.
type RunnerTable map[RunnerKey]RunnerFunc

// DefaultRunners covers the built-in catalog.
func DefaultRunners() RunnerTable {
	return RunnerTable{
		{ProblemID: "two-sum", Language: "java"}:       javaNumsTarget,
		{ProblemID: "two-sum", Language: "cpp"}:        cppNumsTarget,
		{ProblemID: "binary-search", Language: "java"}: javaNumsTarget,
		{ProblemID: "binary-search", Language: "cpp"}:  cppNumsTarget,
	}
}

// Render returns the runner snippet, false when no runner is registered.
func (t RunnerTable) Render(problem domain.Problem, language string) (string, bool, error) {
	fn, ok := t[RunnerKey{ProblemID: problem.ID, Language: language}]
	if !ok {
		return "", false, nil
	}
	snippet, err := fn(problem)
	if err != nil {
		return "", true, fmt.Errorf("runner %s/%s: %w", problem.ID, language, err)
	}
	return snippet, true, nil
}

// javaNumsTarget calls fn(int[] nums, int target) for each case.
// Arrays go through Main.ints so large inputs stay under the method size limit.
func javaNumsTarget(problem domain.Problem) (string, error) {
	var b strings.Builder
	for i, tc := range problem.TestCases {
		n := i + 1
		nums, target, err := numsAndTarget(tc)
		if err != nil {
			return "", fmt.Errorf("test case %d: %w", n, err)
		}
		fmt.Fprintf(&b, "        try {\n")
		fmt.Fprintf(&b, "            int[] nums%d = ints(%q);\n", n, joinInts(nums, ","))
		fmt.Fprintf(&b, "            long start%d = System.nanoTime();\n", n)
		fmt.Fprintf(&b, "            var r%d = sol.%s(nums%d, %d);\n", n, problem.FunctionName, n, target)
		fmt.Fprintf(&b, "            elapsedNanos += System.nanoTime() - start%d;\n", n)
		fmt.Fprintf(&b, "            System.out.println(\"Test Case %d: \" + show(r%d));\n", n, n)
		fmt.Fprintf(&b, "        } catch (Exception e) {\n")
		fmt.Fprintf(&b, "            System.err.println(\"Test Case %d threw \" + e);\n", n)
		fmt.Fprintf(&b, "        }\n")
	}
	return b.String(), nil
}

// cppNumsTarget calls fn(vector<int>& nums, int target) for each case.
func cppNumsTarget(problem domain.Problem) (string, error) {
	var b strings.Builder
	for i, tc := range problem.TestCases {
		n := i + 1
		nums, target, err := numsAndTarget(tc)
		if err != nil {
			return "", fmt.Errorf("test case %d: %w", n, err)
		}
		fmt.Fprintf(&b, "    {\n")
		fmt.Fprintf(&b, "        vector<int> nums%d = {%s};\n", n, joinInts(nums, ","))
		fmt.Fprintf(&b, "        auto start%d = chrono::steady_clock::now();\n", n)
		fmt.Fprintf(&b, "        try {\n")
		fmt.Fprintf(&b, "            auto r%d = sol.%s(nums%d, %d);\n", n, problem.FunctionName, n, target)
		fmt.Fprintf(&b, "            harness_elapsed_ms += chrono::duration<double, milli>(chrono::steady_clock::now() - start%d).count();\n", n)
		fmt.Fprintf(&b, "            cout << \"Test Case %d: \"; printValue(r%d); cout << endl;\n", n, n)
		fmt.Fprintf(&b, "        } catch (...) {\n")
		fmt.Fprintf(&b, "            cerr << \"Test Case %d threw an exception\" << endl;\n", n)
		fmt.Fprintf(&b, "        }\n")
		fmt.Fprintf(&b, "    }\n")
	}
	return b.String(), nil
}

func numsAndTarget(tc domain.TestCase) ([]int, int, error) {
	rawNums, ok := tc.Params.Get("nums")
	if !ok {
		return nil, 0, fmt.Errorf("param nums missing")
	}
	nums, err := toIntSlice(rawNums)
	if err != nil {
		return nil, 0, fmt.Errorf("param nums: %w", err)
	}
	rawTarget, ok := tc.Params.Get("target")
	if !ok {
		return nil, 0, fmt.Errorf("param target missing")
	}
	target, err := toInt(rawTarget)
	if err != nil {
		return nil, 0, fmt.Errorf("param target: %w", err)
	}
	return nums, target, nil
}

func toIntSlice(v interface{}) ([]int, error) {
	switch vs := v.(type) {
	case []int:
		return vs, nil
	case []interface{}:
		out := make([]int, 0, len(vs))
		for i, item := range vs {
			n, err := toInt(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected an integer list, got %T", v)
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func joinInts(nums []int, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
