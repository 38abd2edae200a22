package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cratefm/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MinioUploader pushes binary assets to the MinIO bucket and hands back a
// public URL. Objects are never deleted here: if a pipeline step after the
// upload fails, the object stays behind as an orphan (known limitation).
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioUploader 创建上传器
func NewMinioUploader(client *minio.Client, cfg *config.Config) *MinioUploader {
	return &MinioUploader{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}
}

// Upload stores the payload under a generated key inside the namespace
// prefix ("albums", "songs", or "" for unscoped thumbnails) and returns
// the URL the asset will be served from.
func (u *MinioUploader) Upload(ctx context.Context, payload []byte, namespace, contentType string) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	if u.client == nil {
		return "", fmt.Errorf("MinIO 客户端未初始化")
	}

	key := ObjectKey(namespace)
	opts := minio.PutObjectOptions{}
	if contentType != "" {
		opts.ContentType = contentType
	}

	_, err := u.client.PutObject(ctx, u.bucket, key,
		bytes.NewReader(payload), int64(len(payload)), opts)
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key), nil
}

// ObjectKey generates a bucket key for a new asset.
func ObjectKey(namespace string) string {
	id := uuid.New().String()
	if namespace == "" {
		return id
	}
	return namespace + "/" + id
}
