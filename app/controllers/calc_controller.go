package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/requests"
	"github.com/rights-calculator/app/responses"
	"github.com/rights-calculator/app/services"
	"github.com/rights-calculator/internal/rules"
	"github.com/rights-calculator/internal/search"
)

// CalcController exposes the calculation, parcel, and lookup endpoints.
type CalcController struct {
	calcService    *services.CalcService
	geodataService *services.GeodataService
	searcher       *search.GazetteerSearcher
	cacheService   services.ICacheService
	logger         *zap.Logger
}

func NewCalcController(
	calcService *services.CalcService,
	geodataService *services.GeodataService,
	searcher *search.GazetteerSearcher,
	cacheService services.ICacheService,
	logger *zap.Logger,
) *CalcController {
	return &CalcController{
		calcService:    calcService,
		geodataService: geodataService,
		searcher:       searcher,
		cacheService:   cacheService,
		logger:         logger,
	}
}

// Calculate handles POST /api/v1/calculations.
func (cc *CalcController) Calculate(c *gin.Context) {
	start := time.Now()

	var req requests.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("validation failed", err.Error()))
		return
	}

	overrides := services.CalcOverrides{
		ManualDistrictID:     req.Options.ManualDistrictID,
		ManualSubAreaID:      req.Options.ManualSubAreaID,
		EstimatedValuePerSqm: req.Options.EstimatedValuePerSqm,
	}

	report, cacheHit, err := cc.calcService.CalculateForParcel(
		c.Request.Context(),
		req.Longitude, req.Latitude,
		req.Gush, req.Helka,
		req.Building, overrides, req.UseCache())
	if err != nil {
		cc.logger.Error("calculation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.NewErrorResponse("calculation failed", err.Error()))
		return
	}

	resp := responses.CalculateResponse{
		Report:           report,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CacheHit:         cacheHit,
		RulesVersion:     report.RulesVersion,
	}

	if req.Options.Archive {
		id, err := cc.calcService.ArchiveReport(c.Request.Context(), report)
		if err != nil {
			cc.logger.Warn("report archival failed", zap.Error(err))
		} else {
			resp.ReportID = id
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetParcel handles GET /api/v1/parcels: enrichment only, no calculation.
func (cc *CalcController) GetParcel(c *gin.Context) {
	start := time.Now()

	var req requests.ParcelRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("invalid query parameters", err.Error()))
		return
	}

	geo, cacheHit, err := cc.geodataService.GetParcelGeoData(
		c.Request.Context(), req.Longitude, req.Latitude, req.Gush, req.Helka, req.UseCache)
	if err != nil {
		c.JSON(http.StatusBadGateway, responses.NewErrorResponse("parcel enrichment failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, responses.ParcelResponse{
		GeoData:          geo,
		CacheHit:         cacheHit,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// SuggestNeighborhoods handles GET /api/v1/neighborhoods/suggest.
func (cc *CalcController) SuggestNeighborhoods(c *gin.Context) {
	var req requests.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("invalid query parameters", err.Error()))
		return
	}

	if cc.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, responses.NewErrorResponse("search is not configured", ""))
		return
	}

	var suggestions []search.Suggestion
	var err error
	if req.DistrictID > 0 {
		suggestions, err = cc.searcher.SuggestInDistrict(c.Request.Context(), req.Query, req.DistrictID, req.Limit)
	} else {
		suggestions, err = cc.searcher.Suggest(c.Request.Context(), req.Query, req.Limit)
	}
	if err != nil {
		cc.logger.Error("neighborhood suggest failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.NewErrorResponse("search failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, responses.SuggestResponse{
		Query:       req.Query,
		Suggestions: suggestions,
		Count:       len(suggestions),
	})
}

// ListDistricts handles GET /api/v1/districts.
func (cc *CalcController) ListDistricts(c *gin.Context) {
	districts := make([]responses.DistrictInfo, 0, len(rules.Hfp2666Districts))
	for _, d := range rules.Hfp2666Districts {
		info := responses.DistrictInfo{
			ID:           d.ID,
			Name:         d.Name,
			SubAreaCount: len(d.SubAreas),
			Exempt:       rules.SmallBuildingExemptDistricts[d.ID],
		}
		for _, key := range rules.DistrictNameKeys {
			if key.DistrictID == d.ID {
				info.Neighborhoods = append(info.Neighborhoods, key.Key)
			}
		}
		districts = append(districts, info)
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("districts", districts))
}

// GetReport handles GET /api/v1/reports/:id.
func (cc *CalcController) GetReport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("report id is required", ""))
		return
	}

	report, err := cc.calcService.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.NewErrorResponse("report not found", err.Error()))
		return
	}
	c.JSON(http.StatusOK, responses.NewSuccessResponse("report", report))
}

// ListReports handles GET /api/v1/reports.
func (cc *CalcController) ListReports(c *gin.Context) {
	gush, _ := strconv.Atoi(c.Query("gush"))
	helka, _ := strconv.Atoi(c.Query("helka"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if gush <= 0 || helka <= 0 {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("gush and helka are required", ""))
		return
	}

	reports, err := cc.calcService.ListReports(c.Request.Context(), gush, helka, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("listing reports failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, responses.NewSuccessResponse("reports", reports))
}

// HealthCheck handles GET /health.
func (cc *CalcController) HealthCheck(c *gin.Context) {
	svcStatus := make(map[string]string)

	if cc.cacheService != nil {
		if _, err := cc.cacheService.GetStats(c.Request.Context()); err != nil {
			svcStatus["cache"] = "degraded"
		} else {
			svcStatus["cache"] = "up"
		}
	}
	if cc.searcher != nil {
		svcStatus["search"] = "up"
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Uptime:       time.Since(cc.calcService.GetStartTime()).Round(time.Second).String(),
		RulesVersion: config.C.RulesVersion,
		Services:     svcStatus,
	})
}
