package config

import (
	"errors"
)

type AppConfig struct {
	HttpConfig      *HttpConfig
	JudgeConfig     *JudgeConfig
	BucketConfig    *BucketConfig
	CatalogConfig   *CatalogConfig
	RedisConfig     *RedisConfig
	PostgresConfig  *PostgresConfig
	JwtConfig       *JwtConfig
	RateLimitConfig *RateLimitConfig
}

func NewSystemConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	var errList []error
	collect := func(err error) {
		if err != nil {
			errList = append(errList, err)
		}
	}

	var err error
	cfg.HttpConfig, err = NewHttpConfig()
	collect(err)
	cfg.JudgeConfig, err = NewJudgeConfig()
	collect(err)
	cfg.BucketConfig, err = NewBucketConfig()
	collect(err)
	cfg.CatalogConfig, err = NewCatalogConfig()
	collect(err)
	cfg.RedisConfig, err = NewRedisConfig()
	collect(err)
	cfg.PostgresConfig, err = NewPostgresConfig()
	collect(err)
	cfg.JwtConfig, err = NewJwtConfig()
	collect(err)
	cfg.RateLimitConfig, err = NewRateLimitConfig()
	collect(err)

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return cfg, nil
}
