package database

import "go.mongodb.org/mongo-driver/mongo"

// Collection names as constants to prevent typos
const (
	UsersCollection         = "users"
	EventsCollection        = "events"
	FestsCollection         = "fests"
	RegistrationsCollection = "registrations"
	AdminsCollection        = "admins"
	ExportsCollection       = "exports"
)

// SnapshotCollections are the platform collections the dashboard reads.
var SnapshotCollections = []string{
	UsersCollection,
	EventsCollection,
	FestsCollection,
	RegistrationsCollection,
}

// Collections provides typed access to all collections
type Collections struct {
	manager *Manager
}

// NewCollections creates a new collections instance
func NewCollections() *Collections {
	return &Collections{
		manager: GetManager(),
	}
}

// Platform collections
func (c *Collections) Users() *mongo.Collection {
	return c.manager.GetCollection(UsersCollection)
}

func (c *Collections) Events() *mongo.Collection {
	return c.manager.GetCollection(EventsCollection)
}

func (c *Collections) Fests() *mongo.Collection {
	return c.manager.GetCollection(FestsCollection)
}

func (c *Collections) Registrations() *mongo.Collection {
	return c.manager.GetCollection(RegistrationsCollection)
}

// Dashboard collections
func (c *Collections) Admins() *mongo.Collection {
	return c.manager.GetCollection(AdminsCollection)
}

func (c *Collections) Exports() *mongo.Collection {
	return c.manager.GetCollection(ExportsCollection)
}
