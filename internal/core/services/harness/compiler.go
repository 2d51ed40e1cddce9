// Package harness turns candidate code plus problem metadata into a complete program
// that runs every test case and prints one "Test Case <n>: <value>" line per case.
package harness

import (
	"regexp"
	"strings"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/domain"
)

// ICompiler wraps user code into a runnable harness
type ICompiler interface {
	// Wrap returns the harness source, or the raw code when the language has no template
	Wrap(code, language string, problem domain.Problem) string
}

var _ ICompiler = (*Compiler)(nil)

var javaPublicSolution = regexp.MustCompile(`public\s+class\s+Solution\b`)

// sanitizers strip declarations that clash with the wrapper the template declares.
var sanitizers = map[string]func(code string) string{
	"java": func(code string) string {
		return javaPublicSolution.ReplaceAllString(code, "class Solution")
	},
}

// Compiler holds the template cache and runner table, both read-only after construction.
type Compiler struct {
	profiles map[string]domain.LanguageProfile
	runners  RunnerTable
	logger   primary.Logger
}

// NewCompiler creates a compiler over already loaded templates
func NewCompiler(profiles map[string]domain.LanguageProfile, runners RunnerTable, logger primary.Logger) *Compiler {
	if runners == nil {
		runners = RunnerTable{}
	}
	return &Compiler{
		profiles: profiles,
		runners:  runners,
		logger:   logger,
	}
}

// Wrap substitutes the user code, the function name and the serialized params of
// every test case into the language template. Substitution is a single pass, so
// placeholder-looking text inside the user code is left alone.
func (c *Compiler) Wrap(code, language string, problem domain.Problem) string {
	profile, ok := c.profiles[language]
	if !ok {
		c.logger.Warn("Template not found, sending code unwrapped", "language", language)
		return code
	}

	if sanitize, ok := sanitizers[language]; ok {
		code = sanitize(code)
	}

	paramsJSON, err := problem.ParamsJSON()
	if err != nil {
		c.logger.Error("Failed to serialize test cases", "problemId", problem.ID, "error", err)
		paramsJSON = "[]"
	}

	replacements := []string{
		PlaceholderUserCode, code,
		PlaceholderFunctionName, problem.FunctionName,
		PlaceholderTestCases, paramsJSON,
	}
	if profile.Compiled {
		replacements = append(replacements, PlaceholderRunner, c.runner(problem, language))
	}

	return strings.NewReplacer(replacements...).Replace(profile.Template)
}

func (c *Compiler) runner(problem domain.Problem, language string) string {
	snippet, ok, err := c.runners.Render(problem, language)
	if err != nil {
		c.logger.Error("Failed to render runner", "problemId", problem.ID, "language", language, "error", err)
		return ""
	}
	if !ok {
		c.logger.Warn("No runner registered", "problemId", problem.ID, "language", language)
	}
	return snippet
}

// Languages lists the languages that have a loaded template.
func (c *Compiler) Languages() []string {
	out := make([]string, 0, len(c.profiles))
	for _, lang := range domain.Languages() {
		if _, ok := c.profiles[lang.Name]; ok {
			out = append(out, lang.Name)
		}
	}
	return out
}
