package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rights-calculator/app/controllers"
)

// SetupAPIRoutes mounts all API v1 routes.
func SetupAPIRoutes(router *gin.Engine, calcController *controllers.CalcController, adminController *controllers.AdminController) {
	v1 := router.Group("/api/v1")
	{
		// Calculation routes
		calculations := v1.Group("/calculations")
		{
			calculations.POST("", calcController.Calculate)
		}

		// Parcel enrichment
		v1.GET("/parcels", calcController.GetParcel)

		// Neighborhood autocomplete and district tables
		v1.GET("/neighborhoods/suggest", calcController.SuggestNeighborhoods)
		v1.GET("/districts", calcController.ListDistricts)

		// Archived reports
		reports := v1.Group("/reports")
		{
			reports.GET("", calcController.ListReports)
			reports.GET("/:id", calcController.GetReport)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/neighborhoods/seed", adminController.SeedNeighborhoods)
			admin.POST("/indexes/build", adminController.BuildIndexes)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/cache/stats", adminController.GetCacheStats)
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/export", adminController.ExportData)
		}

		v1.GET("/health", calcController.HealthCheck)
	}
}

// SetupHealthRoutes mounts the probe endpoints.
func SetupHealthRoutes(router *gin.Engine, calcController *controllers.CalcController) {
	router.GET("/health", calcController.HealthCheck)
	router.GET("/ready", calcController.HealthCheck)
	router.GET("/live", calcController.HealthCheck)
}
