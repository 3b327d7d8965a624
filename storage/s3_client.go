package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"campusevents/models"
)

// S3Client implements StorageInterface for Amazon S3 and S3-compatible services
type S3Client struct {
	client   *s3.S3
	provider *models.StorageProvider
	bucket   string
	region   string
}

// NewS3Client creates a new S3 client
func NewS3Client(provider *models.StorageProvider) (*S3Client, error) {
	config := &aws.Config{
		Region: aws.String(provider.Region),
	}

	if provider.AccessKey != "" && provider.SecretKey != "" {
		config.Credentials = credentials.NewStaticCredentials(
			provider.AccessKey,
			provider.SecretKey,
			"",
		)
	}

	// S3-compatible services need a custom endpoint
	if provider.Endpoint != "" {
		config.Endpoint = aws.String(provider.Endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Client{
		client:   s3.New(sess),
		provider: provider,
		bucket:   provider.Bucket,
		region:   provider.Region,
	}, nil
}

func (s *S3Client) name() string {
	return s.provider.Type
}

// Upload uploads data to the bucket
func (s *S3Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return NewStorageError(s.name(), CodeUploadFailed, err.Error(), key)
	}
	return nil
}

// Download downloads an object into memory
func (s *S3Client) Download(ctx context.Context, key string) ([]byte, error) {
	body, err := s.DownloadStream(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, NewStorageError(s.name(), CodeDownloadFail, err.Error(), key)
	}
	return data, nil
}

// DownloadStream returns a stream for downloading an object
func (s *S3Client) DownloadStream(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, NewStorageError(s.name(), CodeNotFound, "object not found", key)
		}
		return nil, NewStorageError(s.name(), CodeDownloadFail, err.Error(), key)
	}
	return result.Body, nil
}

// Delete removes an object
func (s *S3Client) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError(s.name(), CodeDeleteFailed, err.Error(), key)
	}
	return nil
}

// Exists checks whether an object exists
func (s *S3Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, NewStorageError(s.name(), CodeHeadFailed, err.Error(), key)
	}
	return true, nil
}

// GetPresignedURL generates a presigned download URL
func (s *S3Client) GetPresignedURL(key string, expiry time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError(s.name(), CodePresignFailed, err.Error(), key)
	}
	return url, nil
}

// GetProviderInfo returns provider information
func (s *S3Client) GetProviderInfo() *ProviderInfo {
	return &ProviderInfo{
		Name:     s.provider.Name,
		Type:     s.provider.Type,
		Region:   s.region,
		Endpoint: s.provider.Endpoint,
		Bucket:   s.bucket,
		Features: []string{"presigned-urls", "server-side-encryption"},
	}
}

// HealthCheck verifies the bucket is reachable
func (s *S3Client) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return NewStorageError(s.name(), CodeHealthFailed, err.Error(), "")
	}
	return nil
}

func isNotFound(err error) bool {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) && reqErr.StatusCode() == http.StatusNotFound {
		return true
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
