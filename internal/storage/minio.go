package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const linkTTL = 7 * 24 * time.Hour

// MinIO stores fill results in an object bucket and hands out presigned
// download links.
type MinIO struct {
	client *minio.Client
	bucket string

	nowFunc func() time.Time
}

// NewMinIO ...
func NewMinIO(
	endpoint string,
	accessKey string,
	secretKey string,
	bucket string,
	secure bool,
) (s *MinIO, err error) {
	s = &MinIO{
		bucket:  bucket,
		nowFunc: time.Now,
	}
	if s.client, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	}); err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", bucket, err)
		}
	}
	return s, nil
}

// Save uploads a fill result and returns a presigned download link valid
// for a week.
func (s *MinIO) Save(ctx context.Context, name string, data []byte, project, version string) (string, error) {
	key := objectKey(project, version, uniqueName(name, s.nowFunc()))

	if _, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType(name)},
	); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	link, err := s.client.PresignedGetObject(ctx, s.bucket, key, linkTTL, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return link.String(), nil
}

func contentType(name string) string {
	switch {
	case hasSuffixFold(name, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case hasSuffixFold(name, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
