package routes

import (
	"github.com/gin-gonic/gin"

	"campusevents/controllers"
	"campusevents/middleware"
)

// Handlers bundles the controllers and lookups the routes are wired to
type Handlers struct {
	Auth      *controllers.AuthController
	Analytics *controllers.AnalyticsController
	Exports   *controllers.ExportController
	Admins    middleware.AdminLookup
}

// SetupRoutes registers the admin API. Global middleware is installed by the caller.
func SetupRoutes(r *gin.Engine, h Handlers) {
	admin := r.Group("/admin")
	{
		// Public routes
		AuthRoutes(admin, h)

		// Protected routes
		api := admin.Group("/api")
		api.Use(middleware.AdminMiddleware(h.Admins))
		{
			api.GET("/me", h.Auth.Me)
			AnalyticsRoutes(api, h)
			ExportRoutes(api, h)
		}
	}
}
