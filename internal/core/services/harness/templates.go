package harness

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/domain"
)

const (
	PlaceholderUserCode     = "{{USER_CODE}}"
	PlaceholderFunctionName = "{{FUNCTION_NAME}}"
	PlaceholderTestCases    = "{{TEST_CASES_JSON}}"
	PlaceholderRunner       = "{{TEST_RUNNER}}"
)

//go:embed templates/*.txt
var embedded embed.FS

// EmbeddedTemplates returns the templates shipped with the binary.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplatesFrom returns the template directory when set, the embedded templates otherwise.
func TemplatesFrom(dir string) fs.FS {
	if dir == "" {
		return EmbeddedTemplates()
	}
	return os.DirFS(dir)
}

// LoadTemplates reads <language>.txt for every templated language.
// Languages whose template is missing or malformed are left out of the
// returned profiles and reported in the joined error, the rest still load.
func LoadTemplates(fsys fs.FS, logger primary.Logger) (map[string]domain.LanguageProfile, error) {
	profiles := make(map[string]domain.LanguageProfile)
	var errList []error

	for _, lang := range domain.Languages() {
		if !lang.Templated {
			continue
		}
		raw, err := fs.ReadFile(fsys, lang.Name+".txt")
		if err != nil {
			logger.Error("Failed to load template", "language", lang.Name, "error", err)
			errList = append(errList, fmt.Errorf("template %s: %w", lang.Name, err))
			continue
		}
		template := string(raw)
		if err := checkPlaceholders(template, lang.Compiled); err != nil {
			logger.Error("Invalid template", "language", lang.Name, "error", err)
			errList = append(errList, fmt.Errorf("template %s: %w", lang.Name, err))
			continue
		}
		profiles[lang.Name] = domain.LanguageProfile{Language: lang, Template: template}
		logger.Debug("Template loaded", "language", lang.Name, "bytes", len(raw))
	}

	return profiles, errors.Join(errList...)
}

func checkPlaceholders(template string, compiled bool) error {
	required := []string{PlaceholderUserCode, PlaceholderFunctionName, PlaceholderTestCases}
	if compiled {
		required = append(required, PlaceholderRunner)
	}
	var missing []string
	for _, token := range required {
		if !strings.Contains(template, token) {
			missing = append(missing, token)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing placeholders %s", strings.Join(missing, ", "))
	}
	return nil
}
