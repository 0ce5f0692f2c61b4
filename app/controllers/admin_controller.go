package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/requests"
	"github.com/rights-calculator/app/responses"
	"github.com/rights-calculator/app/services"
)

// AdminController exposes the maintenance endpoints. Routes mounting it
// should sit behind auth middleware.
type AdminController struct {
	adminService *services.AdminService
	cacheService services.ICacheService
	logger       *zap.Logger
}

func NewAdminController(adminService *services.AdminService, cacheService services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		cacheService: cacheService,
		logger:       logger,
	}
}

// SeedNeighborhoods handles POST /api/v1/admin/neighborhoods/seed.
func (ac *AdminController) SeedNeighborhoods(c *gin.Context) {
	var req requests.SeedNeighborhoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("invalid request body", err.Error()))
		return
	}

	count, err := ac.adminService.SeedNeighborhoods(c.Request.Context(), req.Data)
	if err != nil {
		ac.logger.Error("gazetteer seeding failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("seeding failed", err.Error()))
		return
	}

	if req.RebuildIndexes {
		if err := ac.adminService.BuildIndexes(); err != nil {
			ac.logger.Warn("index rebuild after seeding failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("gazetteer seeded", gin.H{"count": count}))
}

// BuildIndexes handles POST /api/v1/admin/indexes/build.
func (ac *AdminController) BuildIndexes(c *gin.Context) {
	if err := ac.adminService.BuildIndexes(); err != nil {
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("index build failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, responses.NewSuccessResponse("indexes rebuilt", nil))
}

// InvalidateCache handles POST /api/v1/admin/cache/invalidate. Without a
// rules_version query it clears everything; with one it drops only entries
// written under other versions.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if ac.cacheService == nil {
		c.JSON(http.StatusServiceUnavailable, responses.NewErrorResponse("cache is not configured", ""))
		return
	}

	rulesVersion := c.Query("rules_version")

	var err error
	if rulesVersion == "" {
		err = ac.cacheService.Clear(c.Request.Context())
	} else {
		err = ac.cacheService.InvalidateByRulesVersion(c.Request.Context(), rulesVersion)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("cache invalidation failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("cache invalidated", gin.H{
		"rules_version": rulesVersion,
	}))
}

// GetCacheStats handles GET /api/v1/admin/cache/stats.
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	if ac.cacheService == nil {
		c.JSON(http.StatusServiceUnavailable, responses.NewErrorResponse("cache is not configured", ""))
		return
	}

	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("cache stats unavailable", err.Error()))
		return
	}
	c.JSON(http.StatusOK, responses.NewSuccessResponse("cache stats", stats))
}

// GetStats handles GET /api/v1/admin/stats.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("stats unavailable", err.Error()))
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("system stats", gin.H{
		"system":        stats,
		"rules_version": config.C.RulesVersion,
	}))
}

// ExportData handles GET /api/v1/admin/export.
func (ac *AdminController) ExportData(c *gin.Context) {
	var req requests.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("invalid query parameters", err.Error()))
		return
	}

	docs, err := ac.adminService.ExportData(c.Request.Context(), req.Collection, req.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("export failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("export", gin.H{
		"collection": req.Collection,
		"count":      len(docs),
		"documents":  docs,
	}))
}
