package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore persists artifacts in an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStore connects to the endpoint and makes sure the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, logger *slog.Logger) (*MinioStore, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("artifact store configuration incomplete")
	}
	host, useSSL := sanitizeEndpoint(endpoint)
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect artifact store: %w", err)
	}
	store := &MinioStore{
		client: client,
		bucket: bucket,
		logger: logger.With("component", "artifacts.store"),
	}
	if err := store.ensureBucket(); err != nil {
		return nil, err
	}
	return store, nil
}

// Put uploads one artifact blob.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		// Artifacts stay well under the multipart threshold.
		DisableMultipart: true,
	})
	if err != nil {
		return fmt.Errorf("put artifact %s: %w", key, err)
	}
	return nil
}

func (s *MinioStore) ensureBucket() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check artifact bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") || strings.Contains(err.Error(), "BucketAlreadyExists") {
			return nil
		}
		return fmt.Errorf("create artifact bucket: %w", err)
	}
	s.logger.Info("artifact bucket created", "bucket", s.bucket)
	return nil
}

func sanitizeEndpoint(endpoint string) (string, bool) {
	useSSL := true
	if strings.HasPrefix(endpoint, "http://") {
		useSSL = false
	}
	host := strings.TrimPrefix(endpoint, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/"), useSSL
}

var _ ObjectStore = (*MinioStore)(nil)
