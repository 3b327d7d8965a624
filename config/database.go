package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"campusevents/database"
)

// DatabaseManager handles database initialization and management
type DatabaseManager struct {
	manager *database.Manager
	config  *Config
	logger  *logrus.Logger
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(cfg *Config, logger *logrus.Logger) *DatabaseManager {
	database.SetLogger(logger)
	return &DatabaseManager{
		manager: database.GetManager(),
		config:  cfg,
		logger:  logger,
	}
}

// Initialize opens the MongoDB connection
func (dm *DatabaseManager) Initialize() error {
	dm.logger.WithField("database", dm.config.DBName).Info("Initializing database connection")
	return dm.manager.Initialize(database.DefaultConfig(dm.config.MongoURI, dm.config.DBName))
}

// SetupDatabase creates indexes and runs migrations
func (dm *DatabaseManager) SetupDatabase(ctx context.Context) error {
	if err := database.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	seed := database.AdminSeed{
		Email:    dm.config.AdminDefaultEmail,
		Password: dm.config.AdminDefaultPass,
	}
	if err := database.RunMigrations(ctx, seed); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dm.logger.Info("Database setup completed")
	return nil
}

// HealthCheck performs a database health check
func (dm *DatabaseManager) HealthCheck(ctx context.Context) error {
	return dm.manager.HealthCheck(ctx)
}

// MonitorConnection pings the database every interval until ctx is done
func (dm *DatabaseManager) MonitorConnection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := dm.HealthCheck(ctx); err != nil {
				dm.logger.WithError(err).Warn("Database health check failed")
			} else {
				dm.logger.Debug("Database connection healthy")
			}
		}
	}
}

// Close closes the database connection
func (dm *DatabaseManager) Close(ctx context.Context) error {
	return dm.manager.Close(ctx)
}
