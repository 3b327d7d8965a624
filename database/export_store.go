package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusevents/models"
)

// ExportStore persists export records.
type ExportStore struct {
	collections *Collections
}

func NewExportStore() *ExportStore {
	return &ExportStore{collections: NewCollections()}
}

func (s *ExportStore) Insert(ctx context.Context, record *models.ExportRecord) error {
	result, err := s.collections.Exports().InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

// List returns the newest exports first.
func (s *ExportStore) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collections.Exports().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ExportRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode exports: %w", err)
	}
	return records, nil
}

func (s *ExportStore) FindByExportID(ctx context.Context, exportID string) (*models.ExportRecord, error) {
	var record models.ExportRecord
	err := s.collections.Exports().FindOne(ctx, bson.M{"export_id": exportID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &record, nil
}
