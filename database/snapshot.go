package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusevents/analytics"
)

const snapshotTimeout = 30 * time.Second

// SnapshotStore reads the four platform collections into memory for one dashboard
// computation.
type SnapshotStore struct {
	collections *Collections
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{collections: NewCollections()}
}

// Load fetches users, events, fests and registrations. Fields with unexpected
// types are read leniently; only documents that are not valid BSON are skipped.
func (s *SnapshotStore) Load(ctx context.Context) (*analytics.Collections, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	users, err := loadAll(ctx, decodeUser, s.collections.Users())
	if err != nil {
		return nil, err
	}
	events, err := loadAll(ctx, decodeEvent, s.collections.Events())
	if err != nil {
		return nil, err
	}
	fests, err := loadAll(ctx, decodeFest, s.collections.Fests())
	if err != nil {
		return nil, err
	}
	registrations, err := loadAll(ctx, decodeRegistration, s.collections.Registrations())
	if err != nil {
		return nil, err
	}

	return &analytics.Collections{
		Users:         users,
		Events:        events,
		Fests:         fests,
		Registrations: registrations,
	}, nil
}

func loadAll[T any](ctx context.Context, decode func(bson.Raw) T, collection *mongo.Collection) ([]T, error) {
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	skipped := 0
	for cursor.Next(ctx) {
		if err := cursor.Current.Validate(); err != nil {
			skipped++
			continue
		}
		records = append(records, decode(cursor.Current))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection.Name(), err)
	}

	if skipped > 0 {
		log.WithFields(logrus.Fields{
			"collection": collection.Name(),
			"skipped":    skipped,
		}).Warn("Skipped invalid documents")
	}
	return records, nil
}
