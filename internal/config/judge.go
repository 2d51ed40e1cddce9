package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type JudgeConfig struct {
	Url       string        `env:"JUDGE_URL" envDefault:"http://172.20.0.10:2358"`
	Timeout   time.Duration `env:"JUDGE_TIMEOUT" envDefault:"30s"`
	AuthToken string        `env:"JUDGE_AUTH_TOKEN"`
}

func NewJudgeConfig() (*JudgeConfig, error) {
	cfg, err := env.ParseAs[JudgeConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
