package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campusevents/analytics"
	"campusevents/models"
	"campusevents/services"
	"campusevents/utils"
)

type AnalyticsController struct {
	analyticsService *services.AnalyticsService
	logger           *logrus.Logger
}

func NewAnalyticsController(analyticsService *services.AnalyticsService, logger *logrus.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// bindDashboardQuery reads and validates range, search and top_n. It writes the
// error response itself and reports whether the handler may continue.
func bindDashboardQuery(c *gin.Context) (analytics.Params, bool) {
	var query models.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationErrorResponse(c, err)
		return analytics.Params{}, false
	}

	if err := utils.ValidateStruct(&query); err != nil {
		utils.ValidationErrorResponse(c, err)
		return analytics.Params{}, false
	}

	return analytics.Params{
		DateRange: analytics.DateRange(query.DateRange),
		Search:    query.Search,
		TopN:      query.TopN,
	}, true
}

// GetDashboard returns every dashboard view-model for the filters
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	params, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	dashboard, err := ac.analyticsService.GetDashboard(c.Request.Context(), params)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to compute dashboard")
		utils.InternalServerErrorResponse(c, "Failed to get dashboard analytics")
		return
	}

	utils.SuccessResponse(c, "Dashboard analytics retrieved successfully", dashboard)
}

// GetGrowth returns period-over-period growth. Data is null for the all-time range.
func (ac *AnalyticsController) GetGrowth(c *gin.Context) {
	params, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	growth, err := ac.analyticsService.GetGrowth(c.Request.Context(), params)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to compute growth")
		utils.InternalServerErrorResponse(c, "Failed to get growth analytics")
		return
	}

	utils.SuccessResponse(c, "Growth analytics retrieved successfully", growth)
}

// GetBreakdown returns a single breakdown such as departments or timeline
func (ac *AnalyticsController) GetBreakdown(c *gin.Context) {
	kind := c.Param("kind")
	if !services.IsBreakdownKind(kind) {
		utils.NotFoundResponse(c, "Unknown analytics breakdown: "+kind)
		return
	}

	params, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	breakdown, err := ac.analyticsService.GetBreakdown(c.Request.Context(), params, kind)
	if err != nil {
		if errors.Is(err, services.ErrUnknownBreakdown) {
			utils.NotFoundResponse(c, "Unknown analytics breakdown: "+kind)
			return
		}
		ac.logger.WithError(err).WithField("kind", kind).Error("Failed to compute breakdown")
		utils.InternalServerErrorResponse(c, "Failed to get analytics breakdown")
		return
	}

	utils.SuccessResponse(c, "Analytics breakdown retrieved successfully", gin.H{
		"kind":  kind,
		"items": breakdown,
	})
}

// ClearCache drops all cached dashboards
func (ac *AnalyticsController) ClearCache(c *gin.Context) {
	cleared := ac.analyticsService.ClearCache()
	utils.SuccessResponse(c, "Analytics cache cleared", gin.H{"cleared": cleared})
}
