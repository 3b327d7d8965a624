package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Manager owns the shared MongoDB client and a cache of collection handles.
type Manager struct {
	client      *mongo.Client
	database    *mongo.Database
	collections map[string]*mongo.Collection
	mu          sync.RWMutex
	config      *Config
}

type Config struct {
	MongoURI        string
	DatabaseName    string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
	ServerTimeout   time.Duration
	SocketTimeout   time.Duration

	// AppName is reported to the server for connection attribution.
	AppName string
	// SecondaryReads lets snapshot queries run on secondaries when a replica set is available.
	SecondaryReads bool
}

// DefaultConfig returns pool and timeout settings suitable for the dashboard workload
func DefaultConfig(uri, name string) *Config {
	return &Config{
		MongoURI:        uri,
		DatabaseName:    name,
		MaxPoolSize:     50,
		MinPoolSize:     5,
		MaxConnIdleTime: 30 * time.Second,
		ConnectTimeout:  10 * time.Second,
		ServerTimeout:   10 * time.Second,
		SocketTimeout:   30 * time.Second,
		AppName:         "campusevents-analytics",
		SecondaryReads:  true,
	}
}

var (
	instance *Manager
	once     sync.Once

	log = logrus.StandardLogger()
)

// SetLogger replaces the logger used by the database package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// GetManager returns the singleton database manager instance
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{
			collections: make(map[string]*mongo.Collection),
		}
	})
	return instance
}

// Initialize sets up the database connection with proper configuration
func (m *Manager) Initialize(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return fmt.Errorf("database already initialized")
	}

	m.config = config

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions(config))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		m.client = nil
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.database = m.client.Database(config.DatabaseName)

	log.WithField("database", config.DatabaseName).Info("Connected to MongoDB")
	return nil
}

func clientOptions(config *Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(config.MongoURI).
		SetAppName(config.AppName).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetMaxConnIdleTime(config.MaxConnIdleTime).
		SetServerSelectionTimeout(config.ServerTimeout).
		SetSocketTimeout(config.SocketTimeout).
		SetConnectTimeout(config.ConnectTimeout).
		SetRetryReads(true)

	if config.SecondaryReads {
		opts.SetReadPreference(readpref.SecondaryPreferred())
	}
	return opts
}

// GetCollection returns a cached collection instance
func (m *Manager) GetCollection(name string) *mongo.Collection {
	m.mu.RLock()
	if collection, exists := m.collections[name]; exists {
		m.mu.RUnlock()
		return collection
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check pattern
	if collection, exists := m.collections[name]; exists {
		return collection
	}

	collection := m.database.Collection(name)
	m.collections[name] = collection
	return collection
}

// GetDatabase returns the database instance
func (m *Manager) GetDatabase() *mongo.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.database
}

// Close gracefully closes the database connection
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	m.client = nil
	m.database = nil
	m.collections = make(map[string]*mongo.Collection)

	log.Info("Database connection closed")
	return nil
}

// HealthCheck verifies database connectivity
func (m *Manager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("database not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return client.Ping(ctx, readpref.Primary())
}
