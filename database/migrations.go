package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/models"
	"campusevents/utils"
)

// AdminSeed carries the credentials of the admin created on first start.
type AdminSeed struct {
	Email    string
	Password string
}

// RunMigrations executes all database migrations
func RunMigrations(ctx context.Context, seed AdminSeed) error {
	log.Info("Running database migrations")

	if err := createDefaultAdmin(ctx, seed); err != nil {
		return fmt.Errorf("default admin: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// createDefaultAdmin creates the default super admin when no admin exists
func createDefaultAdmin(ctx context.Context, seed AdminSeed) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	collection := NewCollections().Admins()

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Debug("Admin users already exist, skipping default admin creation")
		return nil
	}

	hashedPassword, err := utils.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.Admin{
		ID:       primitive.NewObjectID(),
		Email:    seed.Email,
		Name:     "Super Admin",
		Password: hashedPassword,
		Role:     models.RoleSuperAdmin,
		Permissions: []string{
			models.PermissionAnalyticsRead,
			models.PermissionExportsWrite,
			models.PermissionSystemManage,
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err = collection.InsertOne(ctx, admin); err != nil {
		return err
	}

	log.WithField("email", admin.Email).Warn("Created default admin user, change its password")
	return nil
}
