package domain

import "sort"

// Language describes how a supported language is run by the remote judge
type Language struct {
	Name      string `json:"name"`
	JudgeID   int    `json:"judgeId"`
	Extension string `json:"extension"`
	// Compiled languages need a per-problem runner instead of iterating the JSON payload.
	Compiled bool `json:"compiled"`
	// Templated languages ship a harness template, others are sent unwrapped.
	Templated bool `json:"templated"`
}

// LanguageProfile is a language together with its loaded harness template.
type LanguageProfile struct {
	Language
	Template string
}

const DefaultExtension = "txt"

var languages = map[string]Language{
	"javascript": {Name: "javascript", JudgeID: 63, Extension: "js", Templated: true},
	"typescript": {Name: "typescript", JudgeID: 74, Extension: "ts", Templated: true},
	"python":     {Name: "python", JudgeID: 71, Extension: "py", Templated: true},
	"java":       {Name: "java", JudgeID: 62, Extension: "java", Compiled: true, Templated: true},
	"cpp":        {Name: "cpp", JudgeID: 54, Extension: "cpp", Compiled: true, Templated: true},
	"c":          {Name: "c", JudgeID: 50, Extension: "c", Compiled: true},
}

// LookupLanguage returns the judge mapping for a language identifier.
func LookupLanguage(name string) (Language, bool) {
	lang, ok := languages[name]
	return lang, ok
}

// Languages lists every language the judge mapping knows, sorted by name.
func Languages() []Language {
	out := make([]Language, 0, len(languages))
	for _, lang := range languages {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ExtensionFor returns the file extension used when storing raw sources.
func ExtensionFor(language string) string {
	if lang, ok := languages[language]; ok && lang.Extension != "" {
		return lang.Extension
	}
	return DefaultExtension
}
