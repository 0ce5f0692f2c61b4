package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes mounts the informational pages.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Building Rights Calculator",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Building Rights Calculator API v1",
				"endpoints": map[string]string{
					"calculate":   "POST /api/v1/calculations",
					"parcel":      "GET /api/v1/parcels",
					"suggest":     "GET /api/v1/neighborhoods/suggest",
					"districts":   "GET /api/v1/districts",
					"reports":     "GET /api/v1/reports",
					"report_by_id": "GET /api/v1/reports/:id",
					"health":      "GET /api/v1/health",
				},
			})
		})
	}
}
