package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campusevents/models"
)

const defaultLocalPath = "./exports"

// LocalClient stores export files on the local file system
type LocalClient struct {
	basePath string
	provider *models.StorageProvider
}

// NewLocalClient creates a new local storage client
func NewLocalClient(provider *models.StorageProvider) (*LocalClient, error) {
	basePath, _ := provider.Settings["base_path"].(string)
	if basePath == "" {
		basePath = defaultLocalPath
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalClient{
		basePath: basePath,
		provider: provider,
	}, nil
}

// resolve maps a key to a path under basePath, rejecting keys that escape it
func (lc *LocalClient) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(cleaned) || cleaned == "." ||
		cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", NewStorageError("local", CodeInvalidKey, "invalid object key", key)
	}
	return filepath.Join(lc.basePath, cleaned), nil
}

// Upload saves data to the local file system
func (lc *LocalClient) Upload(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := lc.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewStorageError("local", CodeUploadFailed, err.Error(), key)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return NewStorageError("local", CodeUploadFailed, err.Error(), key)
	}
	return nil
}

// Download reads a file into memory
func (lc *LocalClient) Download(ctx context.Context, key string) ([]byte, error) {
	body, err := lc.DownloadStream(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, NewStorageError("local", CodeDownloadFail, err.Error(), key)
	}
	return data, nil
}

// DownloadStream returns a reader for the file
func (lc *LocalClient) DownloadStream(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := lc.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewStorageError("local", CodeNotFound, "object not found", key)
		}
		return nil, NewStorageError("local", CodeDownloadFail, err.Error(), key)
	}
	return file, nil
}

// Delete removes a file. Missing files count as deleted.
func (lc *LocalClient) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := lc.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewStorageError("local", CodeDeleteFailed, err.Error(), key)
	}
	return nil
}

// Exists checks if a file exists
func (lc *LocalClient) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fullPath, err := lc.resolve(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, NewStorageError("local", CodeHeadFailed, err.Error(), key)
	}
	return true, nil
}

// GetPresignedURL is not available for local storage; files are served by the API
func (lc *LocalClient) GetPresignedURL(key string, _ time.Duration) (string, error) {
	return "", NewStorageError("local", CodeNotSupported, "presigned URLs are not supported", key)
}

// GetProviderInfo returns provider information
func (lc *LocalClient) GetProviderInfo() *ProviderInfo {
	return &ProviderInfo{
		Name:     lc.provider.Name,
		Type:     "local",
		Region:   "local",
		Endpoint: lc.basePath,
		Features: []string{"upload", "download", "delete"},
	}
}

// HealthCheck verifies local storage is writable
func (lc *LocalClient) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	testFile := filepath.Join(lc.basePath, ".health_check")

	if err := os.WriteFile(testFile, []byte("health_check"), 0o644); err != nil {
		return NewStorageError("local", CodeHealthFailed, err.Error(), "")
	}
	if _, err := os.ReadFile(testFile); err != nil {
		return NewStorageError("local", CodeHealthFailed, err.Error(), "")
	}

	os.Remove(testFile)
	return nil
}
