package config

import "github.com/caarlos0/env/v11"

type HttpConfig struct {
	Port        int      `env:"PORT" envDefault:"3001"`
	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// TrustProxy takes the client address from X-Forwarded-For, only safe behind a proxy.
	TrustProxy bool `env:"TRUST_PROXY"`
	AccessLog  bool `env:"ACCESS_LOG" envDefault:"true"`
}

func NewHttpConfig() (*HttpConfig, error) {
	cfg, err := env.ParseAs[HttpConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
