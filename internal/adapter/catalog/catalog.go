package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
)

//go:embed problems.yaml
var builtin []byte

var _ secondary.ProblemRegistry = (*Catalog)(nil)

// Catalog is the in-memory problem registry. It is never mutated after load.
type Catalog struct {
	problems  map[string]domain.Problem
	defaultID string
}

type catalogFile struct {
	Problems []problemEntry `yaml:"problems"`
}

type problemEntry struct {
	ID           string          `yaml:"id"`
	Title        string          `yaml:"title"`
	FunctionName string          `yaml:"functionName"`
	TestCases    []testCaseEntry `yaml:"testCases"`
}

type testCaseEntry struct {
	Input    string    `yaml:"input"`
	Expected string    `yaml:"expected"`
	Hidden   bool      `yaml:"hidden"`
	Params   yaml.Node `yaml:"params"`
}

// generator expands to `times` copies of `repeat` followed by `append`.
type generator struct {
	Repeat interface{}   `yaml:"repeat"`
	Times  int           `yaml:"times"`
	Append []interface{} `yaml:"append"`
}

// NewCatalog loads PROBLEMS_FILE when set, the built-in catalog otherwise.
func NewCatalog(cfg *config.CatalogConfig) (*Catalog, error) {
	raw := builtin
	if cfg.ProblemsFile != "" {
		data, err := os.ReadFile(cfg.ProblemsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read problems file: %w", err)
		}
		raw = data
	}
	return Parse(raw, cfg.DefaultProblemID)
}

// Parse decodes a YAML catalog and validates every problem.
func Parse(raw []byte, defaultID string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse problems: %w", err)
	}

	c := &Catalog{
		problems:  make(map[string]domain.Problem, len(file.Problems)),
		defaultID: defaultID,
	}
	var errList []error
	for _, entry := range file.Problems {
		problem, err := entry.toDomain()
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if _, dup := c.problems[problem.ID]; dup {
			errList = append(errList, fmt.Errorf("problem %s: duplicate id", problem.ID))
			continue
		}
		c.problems[problem.ID] = problem
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	if _, ok := c.problems[defaultID]; !ok {
		return nil, fmt.Errorf("default problem %q is not in the catalog", defaultID)
	}
	return c, nil
}

func (e problemEntry) toDomain() (domain.Problem, error) {
	if e.ID == "" {
		return domain.Problem{}, fmt.Errorf("problem without id")
	}
	if e.FunctionName == "" {
		return domain.Problem{}, fmt.Errorf("problem %s: functionName is required", e.ID)
	}
	if len(e.TestCases) == 0 {
		return domain.Problem{}, fmt.Errorf("problem %s: at least one test case is required", e.ID)
	}

	problem := domain.Problem{
		ID:           e.ID,
		Title:        e.Title,
		FunctionName: e.FunctionName,
		TestCases:    make([]domain.TestCase, 0, len(e.TestCases)),
	}
	for i, tc := range e.TestCases {
		params, err := decodeParams(&tc.Params)
		if err != nil {
			return domain.Problem{}, fmt.Errorf("problem %s test case %d: %w", e.ID, i+1, err)
		}
		problem.TestCases = append(problem.TestCases, domain.TestCase{
			Input:    tc.Input,
			Expected: tc.Expected,
			Hidden:   tc.Hidden,
			Params:   params,
		})
	}
	return problem, nil
}

// decodeParams keeps the mapping order of the document.
func decodeParams(node *yaml.Node) (domain.Params, error) {
	if node.Kind == 0 {
		return domain.Params{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("params must be a mapping")
	}
	params := make(domain.Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value, err := decodeValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		params = append(params, domain.Param{Name: name, Value: value})
	}
	return params, nil
}

func decodeValue(node *yaml.Node) (interface{}, error) {
	if node.Kind == yaml.MappingNode && hasKey(node, "repeat") {
		var g generator
		if err := node.Decode(&g); err != nil {
			return nil, err
		}
		if g.Times < 0 {
			return nil, fmt.Errorf("times must not be negative")
		}
		out := make([]interface{}, 0, g.Times+len(g.Append))
		for i := 0; i < g.Times; i++ {
			out = append(out, g.Repeat)
		}
		return append(out, g.Append...), nil
	}
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Get falls back to the default problem for unknown ids.
func (c *Catalog) Get(problemID string) domain.Problem {
	if p, ok := c.problems[problemID]; ok {
		return p
	}
	return c.problems[c.defaultID]
}

func (c *Catalog) Lookup(problemID string) (domain.Problem, bool) {
	p, ok := c.problems[problemID]
	return p, ok
}

func (c *Catalog) List() []domain.Problem {
	out := make([]domain.Problem, 0, len(c.problems))
	for _, p := range c.problems {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultID is the id served for unknown problems
func (c *Catalog) DefaultID() string {
	return c.defaultID
}
