package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/compare", handler.CompareProperties)
		api.GET("/history", handler.GetHistory)
		api.GET("/health", handler.HealthCheck)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
