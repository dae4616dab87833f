package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/linxGnu/goseaweedfs"

	"go-cloud-drive/internal/config"
)

// Provider represents the type of storage being used
type Provider string

const (
	S3        Provider = "s3"
	SeaweedFS Provider = "seaweedfs"
	B2        Provider = "b2"
)

// Storage is the object-store contract the drive layer depends on. Objects
// are addressed by caller-chosen keys; display names never reach this layer.
type Storage interface {
	Upload(reader io.Reader, key string) error
	Download(key string) (io.ReadCloser, error)
	Delete(key string) error
	GetPublicURL(key string) string
	GetPresignedURL(key string, expiration time.Duration) (string, error)
}

// New creates the storage provider named by the configuration.
func New(cfg *config.StorageConfig) (Storage, error) {
	switch Provider(strings.ToLower(cfg.Provider)) {
	case S3:
		return NewS3Storage(&cfg.S3)
	case SeaweedFS:
		return NewSeaweedFSStorage(&cfg.SeaweedFS)
	case B2:
		return NewB2Storage(&cfg.B2)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// S3Storage implements the Storage interface for AWS S3 and compatibles.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage creates a new S3 storage instance
func NewS3Storage(cfg *config.S3Config) (*S3Storage, error) {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		region := cfg.Region
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, _ string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               endpoint,
					SigningRegion:     region,
					HostnameImmutable: true,
				}, nil
			})
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload uploads an object to S3 under the given key.
func (s *S3Storage) Upload(reader io.Reader, key string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read payload: %v", err)
	}
	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object to S3: %v", err)
	}
	return nil
}

// Download fetches an object from S3.
func (s *S3Storage) Download(key string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object from S3: %v", err)
	}
	return result.Body, nil
}

// Delete removes an object from S3.
func (s *S3Storage) Delete(key string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %v", err)
	}
	return nil
}

// GetPublicURL returns the public URL for an object in S3.
func (s *S3Storage) GetPublicURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// GetPresignedURL generates a presigned GET URL for S3.
func (s *S3Storage) GetPresignedURL(key string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return request.URL, nil
}

// SeaweedFSStorage implements the Storage interface for a SeaweedFS filer.
type SeaweedFSStorage struct {
	client    *goseaweedfs.Filer
	publicURL string
}

// NewSeaweedFSStorage creates a new SeaweedFS storage instance
func NewSeaweedFSStorage(cfg *config.SeaweedFSConfig) (*SeaweedFSStorage, error) {
	client, err := goseaweedfs.NewFiler(cfg.MasterURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SeaweedFS client: %v", err)
	}
	return &SeaweedFSStorage{
		client:    client,
		publicURL: fmt.Sprintf("http://localhost:%d", cfg.VolumePort),
	}, nil
}

// Upload stores an object on the filer under the given key.
func (s *SeaweedFSStorage) Upload(reader io.Reader, key string) error {
	// The filer client does not support streaming uploads.
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read payload: %v", err)
	}
	if _, err := s.client.Upload(bytes.NewReader(data), int64(len(data)), key, "default", ""); err != nil {
		return fmt.Errorf("failed to upload to SeaweedFS: %v", err)
	}
	return nil
}

// Download fetches an object from the filer.
func (s *SeaweedFSStorage) Download(key string) (io.ReadCloser, error) {
	data, _, err := s.client.Get(key, url.Values{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download from SeaweedFS: %v", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes an object from the filer.
func (s *SeaweedFSStorage) Delete(key string) error {
	if err := s.client.Delete(key, url.Values{}); err != nil {
		return fmt.Errorf("failed to delete from SeaweedFS: %v", err)
	}
	return nil
}

// GetPublicURL returns the public URL for an object on the filer.
func (s *SeaweedFSStorage) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

// GetPresignedURL returns a volume URL with an expiry token appended.
func (s *SeaweedFSStorage) GetPresignedURL(key string, expiration time.Duration) (string, error) {
	token := fmt.Sprintf("exp=%d", time.Now().Add(expiration).Unix())
	return fmt.Sprintf("%s/%s?%s", s.publicURL, key, token), nil
}
