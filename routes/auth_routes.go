package routes

import "github.com/gin-gonic/gin"

func AuthRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.POST("/login", h.Auth.Login)
}
