package routes

import (
	"github.com/gin-gonic/gin"

	"campusevents/middleware"
	"campusevents/models"
)

func ExportRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.POST("/analytics/export", middleware.RequirePermission(models.PermissionExportsWrite), h.Exports.CreateExport)

	exports := rg.Group("/exports")
	exports.Use(middleware.RequirePermission(models.PermissionAnalyticsRead))
	{
		exports.GET("", h.Exports.ListExports)
		exports.GET("/:id", h.Exports.GetExport)
		exports.GET("/:id/download", h.Exports.DownloadExport)
	}
}
