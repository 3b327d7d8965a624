package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campusevents/models"
	"campusevents/services"
	"campusevents/utils"
)

type AuthController struct {
	authService *services.AuthService
	logger      *logrus.Logger
}

func NewAuthController(authService *services.AuthService, logger *logrus.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login exchanges admin credentials for an access token
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, "Invalid credentials")
		case errors.Is(err, services.ErrAdminInactive):
			utils.UnauthorizedResponse(c, "Admin account is deactivated")
		default:
			ac.logger.WithError(err).Error("Admin login failed")
			utils.InternalServerErrorResponse(c, "Login failed")
		}
		return
	}

	utils.SuccessResponse(c, "Login successful", result)
}

// Me returns the authenticated admin
func (ac *AuthController) Me(c *gin.Context) {
	admin, exists := utils.GetAdminFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, "Admin retrieved successfully", admin)
}
