package routes

// Package routes wires every HTTP endpoint of the rights-calculator service.
//
// Layout:
// - api.go: API routes (/api/v1/*)
// - web.go: informational routes (/, /docs)
// - routes.go: top-level setup

import (
	"github.com/gin-gonic/gin"

	"github.com/rights-calculator/app/controllers"
)

// SetupAllRoutes mounts middleware and every route group.
func SetupAllRoutes(router *gin.Engine, calcController *controllers.CalcController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, calcController)
	SetupAPIRoutes(router, calcController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
