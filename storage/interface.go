package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// StorageInterface defines the common interface for all export storage providers
type StorageInterface interface {
	// Object operations
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	DownloadStream(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetPresignedURL returns a time-limited download URL. Providers that cannot
	// sign URLs return a StorageError with code CodeNotSupported.
	GetPresignedURL(key string, expiry time.Duration) (string, error)

	// Provider info
	GetProviderInfo() *ProviderInfo
	HealthCheck(ctx context.Context) error
}

// ProviderInfo contains information about the storage provider
type ProviderInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Region   string   `json:"region,omitempty"`
	Endpoint string   `json:"endpoint,omitempty"`
	Bucket   string   `json:"bucket,omitempty"`
	Features []string `json:"features"`
}

// Storage error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeNotSupported  = "NOT_SUPPORTED"
	CodeUploadFailed  = "UPLOAD_FAILED"
	CodeDownloadFail  = "DOWNLOAD_FAILED"
	CodeDeleteFailed  = "DELETE_FAILED"
	CodeHeadFailed    = "HEAD_FAILED"
	CodePresignFailed = "PRESIGN_FAILED"
	CodeHealthFailed  = "HEALTH_CHECK_FAILED"
	CodeInvalidKey    = "INVALID_KEY"
)

// StorageError represents storage-specific errors
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return e.Provider + ": " + e.Message + " (" + e.Key + ")"
	}
	return e.Provider + ": " + e.Message
}

// NewStorageError creates a new storage error
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}

// IsCode reports whether err is a StorageError carrying code.
func IsCode(err error, code string) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr) && storageErr.Code == code
}
