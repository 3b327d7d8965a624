package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/models"
	"campusevents/utils"
)

// AdminLookup loads the admin behind a validated token.
type AdminLookup interface {
	GetAdmin(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, message string) {
	utils.UnauthorizedResponse(c, message)
	c.Abort()
}

func forbidden(c *gin.Context, message string) {
	utils.ForbiddenResponse(c, message)
	c.Abort()
}

// AdminMiddleware validates the admin JWT and loads the admin into the context.
// Deactivated admins are rejected even while their token is still valid.
func AdminMiddleware(admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := utils.ValidateAdminToken(token)
		if err != nil {
			unauthorized(c, "Invalid or expired admin token")
			return
		}

		admin, err := admins.GetAdmin(c.Request.Context(), claims.AdminID)
		if err != nil {
			unauthorized(c, "Admin not found")
			return
		}
		if !admin.IsActive {
			unauthorized(c, "Admin account is deactivated")
			return
		}

		utils.SetAdminInContext(c, admin)
		c.Set("admin_claims", claims)
		c.Next()
	}
}

// RequirePermission gates a route on one admin permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := utils.GetAdminFromContext(c)
		if !exists {
			forbidden(c, "Admin context not found")
			return
		}
		if !admin.HasPermission(permission) {
			forbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireRole restricts a route to admins holding role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := utils.GetAdminFromContext(c)
		if !exists || admin.Role != role {
			forbidden(c, "Insufficient role")
			return
		}
		c.Next()
	}
}
