package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAnalyst    = "analyst"
)

const (
	PermissionAnalyticsRead = "analytics.read"
	PermissionExportsWrite  = "exports.write"
	PermissionSystemManage  = "system.manage"
)

// Admin is a dashboard operator. Platform users never log in here.
type Admin struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Name        string             `bson:"name" json:"name"`
	Password    string             `bson:"password" json:"-" validate:"required"`
	Role        string             `bson:"role" json:"role"` // super_admin, analyst
	Permissions []string           `bson:"permissions" json:"permissions"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	LastLoginAt *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasPermission reports whether the admin may perform the named action.
// Super admins hold every permission.
func (a *Admin) HasPermission(permission string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
