package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexPlan lists the indexes each collection needs
func indexPlan() map[string][]mongo.IndexModel {
	createdAt := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}}

	return map[string][]mongo.IndexModel{
		UsersCollection: {
			createdAt,
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		EventsCollection: {
			createdAt,
			{Keys: bson.D{{Key: "event_id", Value: 1}}},
			{Keys: bson.D{{Key: "organizing_dept", Value: 1}}},
		},
		FestsCollection: {
			createdAt,
		},
		RegistrationsCollection: {
			createdAt,
			{Keys: bson.D{{Key: "event_id", Value: 1}}},
		},
		AdminsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		ExportsCollection: {
			{
				Keys:    bson.D{{Key: "export_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			createdAt,
		},
	}
}

// CreateIndexes creates necessary database indexes
func CreateIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := GetManager().GetDatabase()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	for name, indexes := range indexPlan() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	log.Info("Database indexes created")
	return nil
}
