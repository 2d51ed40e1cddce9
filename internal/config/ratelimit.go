package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type RateLimitConfig struct {
	// PerWindow is the number of /api/ requests allowed per client IP, 0 disables the limiter.
	PerWindow int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	Window    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

func NewRateLimitConfig() (*RateLimitConfig, error) {
	cfg, err := env.ParseAs[RateLimitConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
