package controllers

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campusevents/models"
	"campusevents/services"
	"campusevents/utils"
)

type ExportController struct {
	exportService *services.ExportService
	logger        *logrus.Logger
}

func NewExportController(exportService *services.ExportService, logger *logrus.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		logger:        logger,
	}
}

// CreateExport writes a breakdown to CSV and returns the export record
func (ec *ExportController) CreateExport(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	adminID, _ := utils.GetAdminIDFromContext(c)

	record, err := ec.exportService.Export(c.Request.Context(), &req, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFormat), errors.Is(err, services.ErrUnknownExportType):
			utils.ValidationErrorResponse(c, err)
		default:
			ec.logger.WithError(err).WithField("type", req.Type).Error("Failed to create export")
			utils.InternalServerErrorResponse(c, "Failed to create export")
		}
		return
	}

	utils.CreatedResponse(c, "Export created successfully", record)
}

// ListExports returns recent exports
func (ec *ExportController) ListExports(c *gin.Context) {
	requested := utils.ParseIntDefault(c.Query("limit"), 0)

	records, limit, err := ec.exportService.ListExports(c.Request.Context(), requested)
	if err != nil {
		ec.logger.WithError(err).Error("Failed to list exports")
		utils.InternalServerErrorResponse(c, "Failed to list exports")
		return
	}

	utils.ListResponse(c, "Exports retrieved successfully", records, len(records), limit)
}

// GetExport returns one export record
func (ec *ExportController) GetExport(c *gin.Context) {
	record, ok := ec.lookup(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, "Export retrieved successfully", record)
}

// DownloadExport streams the CSV file
func (ec *ExportController) DownloadExport(c *gin.Context) {
	record, ok := ec.lookup(c)
	if !ok {
		return
	}

	body, err := ec.exportService.Open(c.Request.Context(), record)
	if err != nil {
		if errors.Is(err, services.ErrExportNotFound) {
			utils.NotFoundResponse(c, "Export file not found")
			return
		}
		ec.logger.WithError(err).WithField("export_id", record.ExportID).Error("Failed to open export")
		utils.InternalServerErrorResponse(c, "Failed to download export")
		return
	}
	defer body.Close()

	filename := record.Type + "-" + path.Base(record.Key)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.FormatInt(record.Size, 10))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, body); err != nil {
		ec.logger.WithError(err).WithField("export_id", record.ExportID).Warn("Export download interrupted")
	}
}

func (ec *ExportController) lookup(c *gin.Context) (*models.ExportRecord, bool) {
	record, err := ec.exportService.GetExport(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrExportNotFound) {
			utils.NotFoundResponse(c, "Export not found")
			return nil, false
		}
		ec.logger.WithError(err).Error("Failed to get export")
		utils.InternalServerErrorResponse(c, "Failed to get export")
		return nil, false
	}
	return record, true
}
