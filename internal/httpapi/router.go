package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"astrometers/internal/logging"
)

// RegisterRoutes sets up all API routes (grounded on the teacher's router).
func RegisterRoutes(router *gin.Engine, handler *MeterHandler, logger *logging.Logger) {
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	router.GET("/health", handler.HandleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/meters", handler.HandleAllMeters)
		v1.POST("/meters/trends", handler.HandleTrends)
		v1.POST("/meters/:name", handler.HandleSingleMeter)
	}
}

// loggingMiddleware adds request logging.
func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.RequestLogger().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// corsMiddleware adds CORS headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
