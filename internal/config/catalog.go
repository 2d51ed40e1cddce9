package config

import "github.com/caarlos0/env/v11"

type CatalogConfig struct {
	// ProblemsFile overrides the embedded problem catalog when set.
	ProblemsFile     string `env:"PROBLEMS_FILE"`
	DefaultProblemID string `env:"DEFAULT_PROBLEM_ID" envDefault:"two-sum"`
	// TemplateDir overrides the embedded harness templates when set.
	TemplateDir string `env:"TEMPLATE_DIR"`
}

func NewCatalogConfig() (*CatalogConfig, error) {
	cfg, err := env.ParseAs[CatalogConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
