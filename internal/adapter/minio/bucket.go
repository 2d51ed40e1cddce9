package minio

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/static/errs"
)

var _ secondary.SubmissionBucket = (*MinioBucket)(nil)

// MinioBucket stores submissions as objects keyed <team>/<filename>
type MinioBucket struct {
	client *minio.Client
	bucket string
}

func NewMinioBucket(cfg *config.BucketConfig) (*MinioBucket, error) {
	if cfg.MinioEndpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.MinioAccessKey == "" {
		return nil, fmt.Errorf("minio accessKey is required")
	}
	if cfg.MinioSecretKey == "" {
		return nil, fmt.Errorf("minio secretKey is required")
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}
	return &MinioBucket{client: client, bucket: cfg.MinioBucket}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (b *MinioBucket) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket exists failed: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio make bucket failed: %w", err)
	}
	return nil
}

func ObjectKey(team, filename string) string {
	return team + "/" + filename
}

// Put refuses to replace an existing object
func (b *MinioBucket) Put(ctx context.Context, team, filename string, source []byte) error {
	key := ObjectKey(team, filename)

	_, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("%w: object %s: %w", errs.ErrPersistence, key, fs.ErrExist)
	}
	if minio.ToErrorResponse(err).StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: minio stat object failed: %w", errs.ErrPersistence, err)
	}

	_, err = b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(source), int64(len(source)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("%w: minio put object failed: %w", errs.ErrPersistence, err)
	}
	return nil
}
