package uploadservice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrUnsupportedType = errors.New("unsupported image type")

// thumbnail uploads share one key prefix so the bucket stays browsable
const keyPrefix = "blog-thumbnails"

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore persists uploaded images in an S3-compatible bucket and hands
// back a public URL. Callers treat the URL as opaque text.
type ImageStore struct {
	client *minio.Client
	bucket string
}

func NewImageStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create object storage client: %w", err)
	}

	return &ImageStore{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload stores the image under a fresh object key and returns its public
// URL. The content type must be one of the supported image types.
func (s *ImageStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("could not store image: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, key), nil
}
