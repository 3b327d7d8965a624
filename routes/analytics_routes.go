package routes

import (
	"github.com/gin-gonic/gin"

	"campusevents/middleware"
	"campusevents/models"
)

func AnalyticsRoutes(rg *gin.RouterGroup, h Handlers) {
	read := middleware.RequirePermission(models.PermissionAnalyticsRead)

	rg.GET("/dashboard", read, h.Analytics.GetDashboard)

	analytics := rg.Group("/analytics")
	analytics.Use(read)
	{
		analytics.GET("/growth", h.Analytics.GetGrowth)
		analytics.GET("/:kind", h.Analytics.GetBreakdown)
	}

	rg.POST("/cache/clear", middleware.RequireRole(models.RoleSuperAdmin), h.Analytics.ClearCache)
}
