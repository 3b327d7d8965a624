package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"campusevents/storage"
)

// StorageManager owns the export storage client
type StorageManager struct {
	config *Config
	client storage.StorageInterface
	logger *logrus.Logger
}

// NewStorageManager creates a new storage manager
func NewStorageManager(cfg *Config, logger *logrus.Logger) *StorageManager {
	return &StorageManager{
		config: cfg,
		logger: logger,
	}
}

// Initialize builds the configured provider client and checks it is reachable
func (sm *StorageManager) Initialize(ctx context.Context) error {
	client, err := storage.NewStorageClient(sm.config.ExportProvider())
	if err != nil {
		return fmt.Errorf("failed to create export storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("export storage health check failed: %w", err)
	}

	sm.client = client

	info := client.GetProviderInfo()
	sm.logger.WithFields(logrus.Fields{
		"provider": info.Type,
		"bucket":   info.Bucket,
		"endpoint": info.Endpoint,
	}).Info("Export storage initialized")
	return nil
}

// Client returns the export storage client. Initialize must have succeeded.
func (sm *StorageManager) Client() storage.StorageInterface {
	return sm.client
}

// HealthCheck checks the export storage provider
func (sm *StorageManager) HealthCheck(ctx context.Context) error {
	if sm.client == nil {
		return fmt.Errorf("export storage not initialized")
	}
	return sm.client.HealthCheck(ctx)
}
