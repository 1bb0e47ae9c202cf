package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/search", handler.Search)
		v1.GET("/companies/:domain", handler.GetCompany)
		v1.GET("/index/stats", handler.IndexStats)
	}
}
