package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"

	"go-cloud-drive/internal/config"
)

// B2Storage implements the Storage interface for Backblaze B2.
type B2Storage struct {
	bucket    *b2.Bucket
	publicURL string
}

// NewB2Storage creates a new Backblaze B2 storage instance
func NewB2Storage(cfg *config.B2Config) (*B2Storage, error) {
	ctx := context.Background()

	client, err := b2.NewClient(ctx, cfg.KeyID, cfg.ApplicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", cfg.BucketName, err)
	}

	return &B2Storage{
		bucket:    bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload streams an object into B2 under the given key.
func (s *B2Storage) Upload(reader io.Reader, key string) error {
	ctx := context.Background()
	writer := s.bucket.Object(key).NewWriter(ctx)

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return fmt.Errorf("failed to upload object to B2: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close B2 writer: %w", err)
	}
	return nil
}

// Download fetches an object from B2.
func (s *B2Storage) Download(key string) (io.ReadCloser, error) {
	return s.bucket.Object(key).NewReader(context.Background()), nil
}

// Delete removes an object from B2.
func (s *B2Storage) Delete(key string) error {
	if err := s.bucket.Object(key).Delete(context.Background()); err != nil {
		return fmt.Errorf("failed to delete object from B2: %w", err)
	}
	return nil
}

// GetPublicURL returns the download URL for an object in B2.
func (s *B2Storage) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

// GetPresignedURL generates a signed download URL for private buckets.
func (s *B2Storage) GetPresignedURL(key string, expiration time.Duration) (string, error) {
	urlObj, err := s.bucket.Object(key).AuthURL(context.Background(), expiration, "GET")
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return urlObj.String(), nil
}
