package config

import (
	"github.com/caarlos0/env/v11"
)

const (
	BucketBackendLocal = "local"
	BucketBackendMinio = "minio"
)

type BucketConfig struct {
	Backend string `env:"BUCKET_BACKEND" envDefault:"local"`
	Dir     string `env:"BUCKET_DIR" envDefault:"documentation_bucket"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"documentation-bucket"`
}

func NewBucketConfig() (*BucketConfig, error) {
	cfg, err := env.ParseAs[BucketConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
