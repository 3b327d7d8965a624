package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/models"
)

const (
	adminKey   = "admin"
	adminIDKey = "admin_id"
)

func respond(c *gin.Context, status int, response models.APIResponse) {
	response.RequestID = c.GetString("request_id")
	response.Timestamp = time.Now()
	c.JSON(status, response)
}

// SuccessResponse sends a successful API response
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, models.APIResponse{Success: true, Message: message, Data: data})
}

// CreatedResponse sends a 201 created response
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, models.APIResponse{Success: true, Message: message, Data: data})
}

// ListResponse sends a list with its item count and the limit that was applied
func ListResponse(c *gin.Context, message string, data interface{}, count, limit int) {
	respond(c, http.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    &models.Meta{Count: count, Limit: limit},
	})
}

// ErrorResponse sends an error API response
func ErrorResponse(c *gin.Context, statusCode int, message string, details map[string]interface{}) {
	respond(c, statusCode, models.APIResponse{
		Message: message,
		Error: &models.APIError{
			Code:    http.StatusText(statusCode),
			Message: message,
			Details: details,
		},
	})
}

// ValidationErrorResponse sends a 422. Field errors are reported per field,
// anything else (such as a query binding failure) as a single message.
func ValidationErrorResponse(c *gin.Context, err error) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", map[string]interface{}{
			"fields": fields,
		})
		return
	}
	ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", map[string]interface{}{
		"validation_errors": err.Error(),
	})
}

// UnauthorizedResponse sends an unauthorized response
func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// ForbiddenResponse sends a forbidden response
func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access forbidden"
	}
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

// NotFoundResponse sends a not found response
func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	ErrorResponse(c, http.StatusNotFound, message, nil)
}

func InternalServerErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message, nil)
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

func TooManyRequestsResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Rate limit exceeded"
	}
	ErrorResponse(c, http.StatusTooManyRequests, message, nil)
}

// GetAdminFromContext returns the admin set by the auth middleware
func GetAdminFromContext(c *gin.Context) (*models.Admin, bool) {
	value, exists := c.Get(adminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}

// GetAdminIDFromContext returns the authenticated admin's id
func GetAdminIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(adminIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

func SetAdminInContext(c *gin.Context, admin *models.Admin) {
	c.Set(adminKey, admin)
	c.Set(adminIDKey, admin.ID)
}
