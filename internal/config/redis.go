package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type RedisConfig struct {
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Url      string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	// ResultTTL bounds how long graded results stay readable by id.
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"24h"`
}

func NewRedisConfig() (*RedisConfig, error) {
	cfg, err := env.ParseAs[RedisConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RedisConfig) Enabled() bool {
	return c.Url != ""
}
