package config

import "github.com/caarlos0/env/v11"

type PostgresConfig struct {
	Url    string `env:"DATABASE_URL"`
	Schema string `env:"DB_SCHEMA" envDefault:"public"`
}

func NewPostgresConfig() (*PostgresConfig, error) {
	cfg, err := env.ParseAs[PostgresConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *PostgresConfig) Enabled() bool {
	return c.Url != ""
}
