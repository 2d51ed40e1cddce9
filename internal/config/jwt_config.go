package config

import "github.com/caarlos0/env/v11"

type JwtConfig struct {
	Secret string `env:"JWT_SECRET"`
}

func NewJwtConfig() (*JwtConfig, error) {
	cfg, err := env.ParseAs[JwtConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *JwtConfig) Enabled() bool {
	return c.Secret != ""
}
