package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campusevents/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// AdminStore persists dashboard admins.
type AdminStore struct {
	collections *Collections
}

func NewAdminStore() *AdminStore {
	return &AdminStore{collections: NewCollections()}
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AdminStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// TouchLastLogin records a successful login.
func (s *AdminStore) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.collections.Admins().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": at, "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (s *AdminStore) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var admin models.Admin
	err := s.collections.Admins().FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}
