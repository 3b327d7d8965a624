package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/database"
	"campusevents/models"
	"campusevents/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminInactive      = errors.New("account is deactivated")
	ErrAdminNotFound      = errors.New("admin not found")
)

// AdminRepository looks up and updates dashboard admins.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type AuthService struct {
	admins AdminRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuthService(admins AdminRepository, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		admins: admins,
		logger: logger,
		now:    time.Now,
	}
}

// Login authenticates an admin and issues an access token
func (as *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	admin, err := as.admins.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrAdminInactive
	}

	now := as.now()
	if err := as.admins.TouchLastLogin(ctx, admin.ID, now); err != nil {
		as.logger.WithError(err).WithField("admin_id", admin.ID.Hex()).Warn("Failed to record last login")
	} else {
		admin.LastLoginAt = &now
	}

	token, err := utils.GenerateAdminToken(admin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	as.logger.WithField("admin_id", admin.ID.Hex()).Info("Admin logged in")
	return &models.LoginResponse{Admin: admin, Token: token}, nil
}

// GetAdmin loads an admin by id
func (as *AuthService) GetAdmin(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	admin, err := as.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
